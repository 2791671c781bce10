package model

import (
	"time"
)

type College struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(128);not null;uniqueIndex" json:"name"`
}

func (College) TableName() string {
	return "colleges"
}

type Department struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(128);not null" json:"name"`
	CollegeID uint64 `gorm:"not null;index" json:"collegeId"`
}

func (Department) TableName() string {
	return "departments"
}

// UserDepartment 用户与系所的多对多归属关系，一个用户可同时挂靠多个系所
type UserDepartment struct {
	UserID       uint64    `gorm:"primaryKey" json:"userId"`
	DepartmentID uint64    `gorm:"primaryKey;index:idx_department_id" json:"departmentId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (UserDepartment) TableName() string {
	return "user_departments"
}
