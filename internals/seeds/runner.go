package seeds

import (
	"log"

	"gorm.io/gorm"

	organizes "iqro_backend/internals/seeds/lembaga/organizes"
	quizzes "iqro_backend/internals/seeds/quizzes"
	users "iqro_backend/internals/seeds/users/auth"
)

func RunAllSeeds(db *gorm.DB) {
	log.Println("🌱 Menjalankan seed...")

	//* User
	users.SeedUsersFromJSON(db, "internals/seeds/users/auth/data_users.json")

	//* Kelas, anggota, tautan ortu
	organizes.SeedOrganizesFromJSON(db, "internals/seeds/lembaga/organizes/data_organizes.json")

	//* Quiz
	quizzes.SeedQuizzesFromJSON(db, "internals/seeds/quizzes/data_quizzes.json")

	log.Println("✅ Seed selesai")
}
