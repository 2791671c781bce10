package repository

import (
	"ScholarHub/internal/model"
	"context"

	"gorm.io/gorm"
)

// DictRepo 统计维度字典（学期、学科领域、类别）
type DictRepo interface {
	SemesterExists(ctx context.Context, semesterID uint64) (bool, error)
	CategoryExists(ctx context.Context, categoryID uint64) (bool, error)
	CountFields(ctx context.Context, fieldIDs []uint64) (int64, error)

	ListSemesters(ctx context.Context) ([]*model.Semester, error)
	ListFields(ctx context.Context) ([]*model.SubjectField, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
}

type dictRepoImpl struct {
	db *gorm.DB
}

func NewDictRepo(db *gorm.DB) DictRepo {
	return &dictRepoImpl{db: db}
}

func (s *dictRepoImpl) SemesterExists(ctx context.Context, semesterID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Semester{}).
		Where("id = ?", semesterID).
		Count(&count).Error
	return count > 0, err
}

func (s *dictRepoImpl) CategoryExists(ctx context.Context, categoryID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", categoryID).
		Count(&count).Error
	return count > 0, err
}

func (s *dictRepoImpl) CountFields(ctx context.Context, fieldIDs []uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.SubjectField{}).
		Where("id IN ?", fieldIDs).
		Count(&count).Error
	return count, err
}

func (s *dictRepoImpl) ListSemesters(ctx context.Context) ([]*model.Semester, error) {
	semesters := make([]*model.Semester, 0)
	err := s.db.WithContext(ctx).Find(&semesters).Error
	return semesters, err
}

func (s *dictRepoImpl) ListFields(ctx context.Context) ([]*model.SubjectField, error) {
	fields := make([]*model.SubjectField, 0)
	err := s.db.WithContext(ctx).Find(&fields).Error
	return fields, err
}

func (s *dictRepoImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories := make([]*model.Category, 0)
	err := s.db.WithContext(ctx).Find(&categories).Error
	return categories, err
}
