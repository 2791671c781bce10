package service

import (
	"ScholarHub/internal/api/dto"
	"ScholarHub/internal/model"
	"ScholarHub/internal/repository"
	"context"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type PatentService interface {
	Create(ctx context.Context, userID uint64, req *dto.PatentCreateReq) (uint64, error)
	Delete(ctx context.Context, userID, patentID uint64) error
	Get(ctx context.Context, patentID uint64) (*dto.PatentDTO, error)
}

type patentServiceImpl struct {
	patentRepo repository.PatentRepo
	dictRepo   repository.DictRepo
	statSvc    StatService
}

func NewPatentService(patentRepo repository.PatentRepo, dictRepo repository.DictRepo, statSvc StatService) PatentService {
	return &patentServiceImpl{
		patentRepo: patentRepo,
		dictRepo:   dictRepo,
		statSvc:    statSvc,
	}
}

func (s *patentServiceImpl) Create(ctx context.Context, userID uint64, req *dto.PatentCreateReq) (uint64, error) {
	fieldIDs := []uint64{req.FieldID}
	if err := validateDimensions(ctx, s.dictRepo, fieldIDs, req.SemesterID, req.CategoryID); err != nil {
		return 0, err
	}

	patent := &model.Patent{
		UserID:     userID,
		Title:      req.Title,
		PatentNo:   req.PatentNo,
		SemesterID: req.SemesterID,
		CategoryID: req.CategoryID,
		FieldID:    req.FieldID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	err := s.patentRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.patentRepo.Create(ctx, tx, patent); err != nil {
			return err
		}
		return s.statSvc.Adjust(ctx, tx, userID, fieldIDs, req.SemesterID, req.CategoryID, model.MetricPatent, 1, true)
	})
	if err != nil {
		return 0, err
	}
	return patent.ID, nil
}

func (s *patentServiceImpl) Delete(ctx context.Context, userID, patentID uint64) error {
	patent, err := s.patentRepo.GetByID(ctx, patentID)
	if err != nil {
		return err
	}
	if patent == nil {
		return ErrPatentNotFound
	}
	if patent.UserID != userID {
		return UnauthorizedError
	}

	return s.patentRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.patentRepo.SoftDelete(ctx, tx, patentID); err != nil {
			return err
		}
		return s.statSvc.Adjust(ctx, tx, patent.UserID, []uint64{patent.FieldID}, patent.SemesterID, patent.CategoryID, model.MetricPatent, 1, false)
	})
}

func (s *patentServiceImpl) Get(ctx context.Context, patentID uint64) (*dto.PatentDTO, error) {
	patent, err := s.patentRepo.GetByID(ctx, patentID)
	if err != nil {
		return nil, err
	}
	if patent == nil {
		return nil, ErrPatentNotFound
	}

	item := &dto.PatentDTO{}
	_ = copier.Copy(item, patent)
	item.CreatedAt = patent.CreatedAt.Format("2006-01-02 15:04:05")
	return item, nil
}
