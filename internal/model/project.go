package model

import (
	"time"
)

const (
	ProjectOriginLocal  int8 = 1
	ProjectOriginGithub int8 = 2
)

type Project struct {
	ID         uint64 `gorm:"primaryKey" json:"id"`
	UserID     uint64 `gorm:"not null;index" json:"userId"`
	Title      string `gorm:"type:varchar(255);not null" json:"title"`
	Brief      string `gorm:"type:varchar(1024)" json:"brief"`
	Origin     int8   `gorm:"not null;default:1" json:"origin"`
	RepoURL    string `gorm:"type:varchar(512)" json:"repoUrl"`
	SemesterID uint64 `gorm:"not null;index" json:"semesterId"`
	CategoryID uint64 `gorm:"not null;index" json:"categoryId"`

	// 冗余计数字段，只允许经互动台账路径修改
	LikeCount        int `gorm:"not null;default:0" json:"likeCount"`
	FoundingRecCount int `gorm:"not null;default:0" json:"foundingRecCount"`
	PatentRecCount   int `gorm:"not null;default:0" json:"patentRecCount"`
	RegisterRecCount int `gorm:"not null;default:0" json:"registerRecCount"`

	IsDeleted bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Fields []SubjectField `gorm:"many2many:project_fields;" json:"fields"`
}

func (Project) TableName() string {
	return "projects"
}

type ProjectField struct {
	ProjectID      uint64 `gorm:"primaryKey"`
	SubjectFieldID uint64 `gorm:"primaryKey;index:idx_field_id"`
}

func (ProjectField) TableName() string {
	return "project_fields"
}

// ProjectComment 项目评论，RootID 为 0 表示顶级评论，否则为楼中楼回复
type ProjectComment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	ProjectID uint64    `gorm:"not null;index" json:"projectId"`
	UserID    uint64    `gorm:"not null;index" json:"userId"`
	Content   string    `gorm:"type:varchar(2048);not null" json:"content"`
	RootID    uint64    `gorm:"not null;default:0;index" json:"rootId"`
	ParentID  uint64    `gorm:"not null;default:0" json:"parentId"`
	LikeCount int       `gorm:"not null;default:0" json:"likeCount"`
	IsDeleted bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ProjectComment) TableName() string {
	return "project_comments"
}
