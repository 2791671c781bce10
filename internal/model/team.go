package model

import (
	"time"
)

type Team struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(128);not null" json:"name"`
	LeaderID   uint64    `gorm:"not null;index" json:"leaderId"`
	SemesterID uint64    `gorm:"not null;index" json:"semesterId"`
	CategoryID uint64    `gorm:"not null;index" json:"categoryId"`
	FieldID    uint64    `gorm:"not null;index" json:"fieldId"`
	IsDeleted  bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Team) TableName() string {
	return "teams"
}

type TeamMember struct {
	TeamID    uint64    `gorm:"primaryKey" json:"teamId"`
	UserID    uint64    `gorm:"primaryKey;index:idx_user_id" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
