package database

import (
	"log"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	labelModel "iqro_backend/internals/features/hafalan/labels/model"
	setoranModel "iqro_backend/internals/features/hafalan/setoran/model"
	notificationModel "iqro_backend/internals/features/home/notifications/model"
	attendanceModel "iqro_backend/internals/features/lembaga/attendance/model"
	organizeModel "iqro_backend/internals/features/lembaga/organizes/model"
	pointModel "iqro_backend/internals/features/progress/points/model"
	quizModel "iqro_backend/internals/features/quiz/quizzes/model"
	bookmarkModel "iqro_backend/internals/features/quran/bookmarks/model"
	authModel "iqro_backend/internals/features/users/auth/model"
	userModel "iqro_backend/internals/features/users/user/model"
)

// Models: urutan mengikuti dependensi (users dulu).
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&userModel.ParentChildModel{},
		&authModel.RefreshToken{},
		&authModel.TokenBlacklist{},
		&organizeModel.OrganizeModel{},
		&setoranModel.SetoranModel{},
		&labelModel.LabelModel{},
		&pointModel.SiswaPoinModel{},
		&pointModel.PointLogModel{},
		&quizModel.QuizModel{},
		&quizModel.QuizAnswerModel{},
		&attendanceModel.AttendanceModel{},
		&notificationModel.NotificationModel{},
		&bookmarkModel.QuranBookmarkModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	log.Println("🛠️ Menjalankan AutoMigrate...")
	if err := db.AutoMigrate(Models()...); err != nil {
		return pkgerrors.Wrap(err, "auto migrate")
	}
	log.Printf("✅ AutoMigrate selesai (%d tabel)", len(Models()))
	return nil
}
