package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_student_date" json:"student_id"`
	Date       time.Time  `gorm:"type:date;not null;uniqueIndex:uq_attendance_student_date" json:"date"`
	Status     string     `gorm:"type:varchar(12);not null" json:"status"`
	OrganizeID *uuid.UUID `gorm:"type:uuid;index" json:"organize_id,omitempty"`
	RecordedBy *uuid.UUID `gorm:"type:uuid" json:"recorded_by,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AttendanceModel) TableName() string {
	return "attendance"
}
