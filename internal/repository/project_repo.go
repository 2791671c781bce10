package repository

import (
	"ScholarHub/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProjectRepo interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	Create(ctx context.Context, tx *gorm.DB, project *model.Project, fieldIDs []uint64) error
	Update(ctx context.Context, tx *gorm.DB, project *model.Project, fieldIDs []uint64) error
	SoftDelete(ctx context.Context, tx *gorm.DB, projectID uint64) error
	GetByID(ctx context.Context, projectID uint64) (*model.Project, error)
	GetFieldIDs(ctx context.Context, projectID uint64) ([]uint64, error)

	// ListActive 按主键分批扫描未删除的项目，重建任务使用
	ListActive(ctx context.Context, lastID uint64, limit int) ([]*model.Project, error)

	CreateComment(ctx context.Context, comment *model.ProjectComment) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.ProjectComment, error)

	// ListCommentThreadIDs 返回评论自身及其整个楼中楼子树的 id
	ListCommentThreadIDs(ctx context.Context, tx *gorm.DB, commentID uint64) ([]uint64, error)
	DeleteComment(ctx context.Context, tx *gorm.DB, commentID uint64) error
}

type projectRepoImpl struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepoImpl{db: db}
}

func (s *projectRepoImpl) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *projectRepoImpl) Create(ctx context.Context, tx *gorm.DB, project *model.Project, fieldIDs []uint64) error {
	if err := tx.WithContext(ctx).Omit("Fields").Create(project).Error; err != nil {
		return err
	}
	return s.replaceFields(ctx, tx, project.ID, fieldIDs)
}

func (s *projectRepoImpl) Update(ctx context.Context, tx *gorm.DB, project *model.Project, fieldIDs []uint64) error {
	err := tx.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND is_deleted = ?", project.ID, false).
		Updates(map[string]interface{}{
			"title":       project.Title,
			"brief":       project.Brief,
			"origin":      project.Origin,
			"repo_url":    project.RepoURL,
			"semester_id": project.SemesterID,
			"category_id": project.CategoryID,
		}).Error
	if err != nil {
		return err
	}
	if err = tx.WithContext(ctx).Where("project_id = ?", project.ID).Delete(&model.ProjectField{}).Error; err != nil {
		return err
	}
	return s.replaceFields(ctx, tx, project.ID, fieldIDs)
}

func (s *projectRepoImpl) replaceFields(ctx context.Context, tx *gorm.DB, projectID uint64, fieldIDs []uint64) error {
	if len(fieldIDs) == 0 {
		return nil
	}
	rows := make([]*model.ProjectField, 0, len(fieldIDs))
	for _, fid := range fieldIDs {
		rows = append(rows, &model.ProjectField{ProjectID: projectID, SubjectFieldID: fid})
	}
	return tx.WithContext(ctx).Create(rows).Error
}

func (s *projectRepoImpl) SoftDelete(ctx context.Context, tx *gorm.DB, projectID uint64) error {
	return tx.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND is_deleted = ?", projectID, false).
		Update("is_deleted", true).Error
}

func (s *projectRepoImpl) GetByID(ctx context.Context, projectID uint64) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).Preload("Fields").
		Where("id = ? AND is_deleted = ?", projectID, false).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (s *projectRepoImpl) GetFieldIDs(ctx context.Context, projectID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.ProjectField{}).
		Where("project_id = ?", projectID).
		Pluck("subject_field_id", &ids).Error
	return ids, err
}

func (s *projectRepoImpl) ListActive(ctx context.Context, lastID uint64, limit int) ([]*model.Project, error) {
	projects := make([]*model.Project, 0)
	err := s.db.WithContext(ctx).Preload("Fields").
		Where("id > ? AND is_deleted = ?", lastID, false).
		Order("id ASC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

func (s *projectRepoImpl) CreateComment(ctx context.Context, comment *model.ProjectComment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *projectRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.ProjectComment, error) {
	var comment model.ProjectComment
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

func (s *projectRepoImpl) ListCommentThreadIDs(ctx context.Context, tx *gorm.DB, commentID uint64) ([]uint64, error) {
	var ids []uint64
	err := tx.WithContext(ctx).Model(&model.ProjectComment{}).
		Where("(id = ? OR root_id = ?) AND is_deleted = ?", commentID, commentID, false).
		Pluck("id", &ids).Error
	return ids, err
}

func (s *projectRepoImpl) DeleteComment(ctx context.Context, tx *gorm.DB, commentID uint64) error {
	return tx.WithContext(ctx).Model(&model.ProjectComment{}).
		Where("(id = ? OR root_id = ?) AND is_deleted = ?", commentID, commentID, false).
		Update("is_deleted", true).Error
}
