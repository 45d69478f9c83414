package service

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"iqro_backend/internals/features/users/user/model"
)

// ChildIDsOf: daftar siswa yang ditautkan ke ortu, urut waktu tautan.
func ChildIDsOf(db *gorm.DB, parentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&model.ParentChildModel{}).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Pluck("child_id", &ids).Error
	return ids, errors.Wrap(err, "list child ids")
}

func IsParentOf(db *gorm.DB, parentID, childID uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&model.ParentChildModel{}).
		Where("parent_id = ? AND child_id = ?", parentID, childID).
		Count(&n).Error
	return n > 0, errors.Wrap(err, "check parent link")
}

// ParentsOf dipakai reminder untuk mengirim salinan email ke ortu.
func ParentsOf(db *gorm.DB, childIDs []uuid.UUID) (map[uuid.UUID][]model.UserModel, error) {
	out := map[uuid.UUID][]model.UserModel{}
	if len(childIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		ChildID uuid.UUID
		model.UserModel
	}
	err := db.Table("parent_children pc").
		Select("pc.child_id, u.*").
		Joins("JOIN users u ON u.id = pc.parent_id").
		Where("pc.child_id IN ? AND u.is_active = ?", childIDs, true).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list parents")
	}
	for _, r := range rows {
		out[r.ChildID] = append(out[r.ChildID], r.UserModel)
	}
	return out, nil
}
