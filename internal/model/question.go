package model

import (
	"time"
)

type Question struct {
	ID         uint64 `gorm:"primaryKey" json:"id"`
	UserID     uint64 `gorm:"not null;index" json:"userId"`
	Title      string `gorm:"type:varchar(255);not null" json:"title"`
	Content    string `gorm:"type:text" json:"content"`
	SemesterID uint64 `gorm:"not null;index" json:"semesterId"`
	CategoryID uint64 `gorm:"not null;index" json:"categoryId"`

	LikeCount int `gorm:"not null;default:0" json:"likeCount"`

	IsDeleted bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Fields []SubjectField `gorm:"many2many:question_fields;" json:"fields"`
}

func (Question) TableName() string {
	return "questions"
}

type QuestionField struct {
	QuestionID     uint64 `gorm:"primaryKey"`
	SubjectFieldID uint64 `gorm:"primaryKey;index:idx_field_id"`
}

func (QuestionField) TableName() string {
	return "question_fields"
}

type QuestionComment struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	QuestionID uint64    `gorm:"not null;index" json:"questionId"`
	UserID     uint64    `gorm:"not null;index" json:"userId"`
	Content    string    `gorm:"type:varchar(2048);not null" json:"content"`
	RootID     uint64    `gorm:"not null;default:0;index" json:"rootId"`
	ParentID   uint64    `gorm:"not null;default:0" json:"parentId"`
	LikeCount  int       `gorm:"not null;default:0" json:"likeCount"`
	IsDeleted  bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (QuestionComment) TableName() string {
	return "question_comments"
}
