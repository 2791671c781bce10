package model

import (
	"time"
)

type Patent struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	UserID     uint64    `gorm:"not null;index" json:"userId"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	PatentNo   string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"patentNo"`
	SemesterID uint64    `gorm:"not null;index" json:"semesterId"`
	CategoryID uint64    `gorm:"not null;index" json:"categoryId"`
	FieldID    uint64    `gorm:"not null;index" json:"fieldId"`
	IsDeleted  bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Patent) TableName() string {
	return "patents"
}
