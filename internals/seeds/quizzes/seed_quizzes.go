package quizzes

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"iqro_backend/internals/features/quiz/quizzes/dto"
	"iqro_backend/internals/features/quiz/quizzes/model"
	helper "iqro_backend/internals/helpers"
)

// SeedQuizzesFromJSON: quiz global (organize_id NULL), dilewati kalau pertanyaan sudah ada.
func SeedQuizzesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file quiz:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}
	var inputs []dto.CreateQuizRequest
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	var existing []string
	if err := db.Model(&model.QuizModel{}).Where("organize_id IS NULL").Pluck("question", &existing).Error; err != nil {
		log.Fatalf("❌ Gagal ambil quiz yang sudah ada: %v", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, q := range existing {
		seen[q] = true
	}

	var rows []model.QuizModel
	for _, req := range inputs {
		req.Normalize()
		if seen[req.Question] {
			log.Printf("ℹ️ Quiz '%s' sudah ada, dilewati.", req.Question)
			continue
		}
		if errs := helper.ValidateStruct(&req); errs != nil || !req.CorrectInRange() {
			log.Printf("❌ Quiz '%s' tidak valid, dilewati.", req.Question)
			continue
		}
		q := req.ToModel(nil, uuid.Nil)
		q.CreatedBy = nil
		rows = append(rows, *q)
	}

	if len(rows) == 0 {
		log.Println("ℹ️ Tidak ada quiz baru untuk diinsert.")
		return
	}
	if err := db.Create(&rows).Error; err != nil {
		log.Fatalf("❌ Gagal bulk insert quizzes: %v", err)
	}
	log.Printf("✅ Berhasil insert %d quiz", len(rows))
}
