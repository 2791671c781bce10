package repository

import (
	"ScholarHub/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type QuestionRepo interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	Create(ctx context.Context, tx *gorm.DB, question *model.Question, fieldIDs []uint64) error
	Update(ctx context.Context, tx *gorm.DB, question *model.Question, fieldIDs []uint64) error
	SoftDelete(ctx context.Context, tx *gorm.DB, questionID uint64) error
	GetByID(ctx context.Context, questionID uint64) (*model.Question, error)
	GetFieldIDs(ctx context.Context, questionID uint64) ([]uint64, error)
	ListActive(ctx context.Context, lastID uint64, limit int) ([]*model.Question, error)

	CreateComment(ctx context.Context, comment *model.QuestionComment) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.QuestionComment, error)
	ListCommentThreadIDs(ctx context.Context, tx *gorm.DB, commentID uint64) ([]uint64, error)
	DeleteComment(ctx context.Context, tx *gorm.DB, commentID uint64) error
}

type questionRepoImpl struct {
	db *gorm.DB
}

func NewQuestionRepo(db *gorm.DB) QuestionRepo {
	return &questionRepoImpl{db: db}
}

func (s *questionRepoImpl) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *questionRepoImpl) Create(ctx context.Context, tx *gorm.DB, question *model.Question, fieldIDs []uint64) error {
	if err := tx.WithContext(ctx).Omit("Fields").Create(question).Error; err != nil {
		return err
	}
	return s.replaceFields(ctx, tx, question.ID, fieldIDs)
}

func (s *questionRepoImpl) Update(ctx context.Context, tx *gorm.DB, question *model.Question, fieldIDs []uint64) error {
	err := tx.WithContext(ctx).Model(&model.Question{}).
		Where("id = ? AND is_deleted = ?", question.ID, false).
		Updates(map[string]interface{}{
			"title":       question.Title,
			"content":     question.Content,
			"semester_id": question.SemesterID,
			"category_id": question.CategoryID,
		}).Error
	if err != nil {
		return err
	}
	if err = tx.WithContext(ctx).Where("question_id = ?", question.ID).Delete(&model.QuestionField{}).Error; err != nil {
		return err
	}
	return s.replaceFields(ctx, tx, question.ID, fieldIDs)
}

func (s *questionRepoImpl) replaceFields(ctx context.Context, tx *gorm.DB, questionID uint64, fieldIDs []uint64) error {
	if len(fieldIDs) == 0 {
		return nil
	}
	rows := make([]*model.QuestionField, 0, len(fieldIDs))
	for _, fid := range fieldIDs {
		rows = append(rows, &model.QuestionField{QuestionID: questionID, SubjectFieldID: fid})
	}
	return tx.WithContext(ctx).Create(rows).Error
}

func (s *questionRepoImpl) SoftDelete(ctx context.Context, tx *gorm.DB, questionID uint64) error {
	return tx.WithContext(ctx).Model(&model.Question{}).
		Where("id = ? AND is_deleted = ?", questionID, false).
		Update("is_deleted", true).Error
}

func (s *questionRepoImpl) GetByID(ctx context.Context, questionID uint64) (*model.Question, error) {
	var question model.Question
	err := s.db.WithContext(ctx).Preload("Fields").
		Where("id = ? AND is_deleted = ?", questionID, false).
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (s *questionRepoImpl) GetFieldIDs(ctx context.Context, questionID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.QuestionField{}).
		Where("question_id = ?", questionID).
		Pluck("subject_field_id", &ids).Error
	return ids, err
}

func (s *questionRepoImpl) ListActive(ctx context.Context, lastID uint64, limit int) ([]*model.Question, error) {
	questions := make([]*model.Question, 0)
	err := s.db.WithContext(ctx).Preload("Fields").
		Where("id > ? AND is_deleted = ?", lastID, false).
		Order("id ASC").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

func (s *questionRepoImpl) CreateComment(ctx context.Context, comment *model.QuestionComment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *questionRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.QuestionComment, error) {
	var comment model.QuestionComment
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", commentID, false).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (s *questionRepoImpl) ListCommentThreadIDs(ctx context.Context, tx *gorm.DB, commentID uint64) ([]uint64, error) {
	var ids []uint64
	err := tx.WithContext(ctx).Model(&model.QuestionComment{}).
		Where("(id = ? OR root_id = ?) AND is_deleted = ?", commentID, commentID, false).
		Pluck("id", &ids).Error
	return ids, err
}

func (s *questionRepoImpl) DeleteComment(ctx context.Context, tx *gorm.DB, commentID uint64) error {
	return tx.WithContext(ctx).Model(&model.QuestionComment{}).
		Where("(id = ? OR root_id = ?) AND is_deleted = ?", commentID, commentID, false).
		Update("is_deleted", true).Error
}
