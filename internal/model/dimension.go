package model

type Semester struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(64);not null;uniqueIndex" json:"name"`
}

func (Semester) TableName() string {
	return "semesters"
}

type SubjectField struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(64);not null;uniqueIndex" json:"name"`
}

func (SubjectField) TableName() string {
	return "subject_fields"
}

type Category struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(64);not null;uniqueIndex" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}
