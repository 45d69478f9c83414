package organizes

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/lembaga/organizes/model"
	pointService "iqro_backend/internals/features/progress/points/service"
	userModel "iqro_backend/internals/features/users/user/model"
)

type parentLinkSeed struct {
	ParentEmail string `json:"parent_email"`
	ChildEmail  string `json:"child_email"`
}

type OrganizeSeed struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Code          string           `json:"code"`
	GuruEmail     string           `json:"guru_email"`
	StudentEmails []string         `json:"student_emails"`
	ParentLinks   []parentLinkSeed `json:"parent_links"`
}

func findUser(db *gorm.DB, email string) (*userModel.UserModel, bool) {
	var u userModel.UserModel
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		log.Printf("⚠️ User '%s' tidak ditemukan, dilewati.", email)
		return nil, false
	}
	return &u, true
}

// SeedOrganizesFromJSON: kelas + anggota + tautan ortu. Idempoten berdasarkan kode kelas.
func SeedOrganizesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file kelas:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}
	var inputs []OrganizeSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		guru, ok := findUser(db, data.GuruEmail)
		if !ok {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var org model.OrganizeModel
			if err := tx.Where("code = ?", data.Code).First(&org).Error; err != nil {
				desc := data.Description
				org = model.OrganizeModel{
					Name:        data.Name,
					Description: &desc,
					GuruID:      guru.ID,
					Code:        data.Code,
					IsActive:    true,
				}
				if err := tx.Create(&org).Error; err != nil {
					return err
				}
				log.Printf("✅ Kelas '%s' (%s) dibuat", org.Name, org.Code)
			}

			if err := tx.Model(&userModel.UserModel{}).Where("id = ?", guru.ID).
				Update("organize_id", org.ID).Error; err != nil {
				return err
			}

			for _, email := range data.StudentEmails {
				s, ok := findUser(tx, email)
				if !ok || s.Role != constants.RoleSiswa {
					continue
				}
				if err := tx.Model(&userModel.UserModel{}).Where("id = ?", s.ID).
					Update("organize_id", org.ID).Error; err != nil {
					return err
				}
				if err := pointService.EnsurePoints(tx, s.ID); err != nil {
					return err
				}
			}

			for _, l := range data.ParentLinks {
				parent, ok1 := findUser(tx, l.ParentEmail)
				child, ok2 := findUser(tx, l.ChildEmail)
				if !ok1 || !ok2 {
					continue
				}
				link := userModel.ParentChildModel{ParentID: parent.ID, ChildID: child.ID}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("❌ Gagal seed kelas '%s': %v", data.Code, err)
		}
	}
}
