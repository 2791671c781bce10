package repository

import (
	"ScholarHub/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PatentRepo interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	Create(ctx context.Context, tx *gorm.DB, patent *model.Patent) error
	SoftDelete(ctx context.Context, tx *gorm.DB, patentID uint64) error
	GetByID(ctx context.Context, patentID uint64) (*model.Patent, error)
	ListActive(ctx context.Context, lastID uint64, limit int) ([]*model.Patent, error)
}

type patentRepoImpl struct {
	db *gorm.DB
}

func NewPatentRepo(db *gorm.DB) PatentRepo {
	return &patentRepoImpl{db: db}
}

func (s *patentRepoImpl) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *patentRepoImpl) Create(ctx context.Context, tx *gorm.DB, patent *model.Patent) error {
	return tx.WithContext(ctx).Create(patent).Error
}

func (s *patentRepoImpl) SoftDelete(ctx context.Context, tx *gorm.DB, patentID uint64) error {
	return tx.WithContext(ctx).Model(&model.Patent{}).
		Where("id = ? AND is_deleted = ?", patentID, false).
		Update("is_deleted", true).Error
}

func (s *patentRepoImpl) GetByID(ctx context.Context, patentID uint64) (*model.Patent, error) {
	var patent model.Patent
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", patentID, false).
		First(&patent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patent, nil
}

func (s *patentRepoImpl) ListActive(ctx context.Context, lastID uint64, limit int) ([]*model.Patent, error) {
	patents := make([]*model.Patent, 0)
	err := s.db.WithContext(ctx).
		Where("id > ? AND is_deleted = ?", lastID, false).
		Order("id ASC").
		Limit(limit).
		Find(&patents).Error
	return patents, err
}
