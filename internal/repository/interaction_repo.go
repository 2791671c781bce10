package repository

import (
	"ScholarHub/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// targetTable 每种互动类别对应的目标表与冗余计数列
type targetTable struct {
	table   string
	counter string
}

var targetTables = map[model.InteractionKind]targetTable{
	model.KindProjectLike:         {table: "projects", counter: "like_count"},
	model.KindProjectCommentLike:  {table: "project_comments", counter: "like_count"},
	model.KindProjectReplyLike:    {table: "project_comments", counter: "like_count"},
	model.KindQuestionLike:        {table: "questions", counter: "like_count"},
	model.KindQuestionCommentLike: {table: "question_comments", counter: "like_count"},
	model.KindQuestionReplyLike:   {table: "question_comments", counter: "like_count"},
	model.KindFoundingRecommend:   {table: "projects", counter: "founding_rec_count"},
	model.KindPatentRecommend:     {table: "projects", counter: "patent_rec_count"},
	model.KindRegisterRecommend:   {table: "projects", counter: "register_rec_count"},
}

// LockedTarget 行锁持有期间读到的目标快照
type LockedTarget struct {
	ID           uint64
	OwnerID      uint64
	CounterValue int64
}

type InteractionRepo interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	// LockTarget 以 FOR UPDATE NOWAIT 锁定目标行并读取归属与当前计数，
	// 行已被他人持锁时立即返回存储层错误而不是排队等待
	LockTarget(ctx context.Context, tx *gorm.DB, kind model.InteractionKind, targetID uint64) (*LockedTarget, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, targetID uint64, kind model.InteractionKind) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, rec *model.Interaction) error
	Delete(ctx context.Context, tx *gorm.DB, userID, targetID uint64, kind model.InteractionKind) (int64, error)

	// AddCounter 对目标表的冗余计数列累加 delta，负向调整在 SQL 内截断到 0
	AddCounter(ctx context.Context, tx *gorm.DB, kind model.InteractionKind, targetID uint64, delta int) error

	DeleteByTarget(ctx context.Context, tx *gorm.DB, targetID uint64, kinds ...model.InteractionKind) error
	CountByTarget(ctx context.Context, targetID uint64, kind model.InteractionKind) (int64, error)
	CheckExists(ctx context.Context, userID, targetID uint64, kind model.InteractionKind) (bool, error)
}

type interactionRepoImpl struct {
	db *gorm.DB
}

func NewInteractionRepo(db *gorm.DB) InteractionRepo {
	return &interactionRepoImpl{db: db}
}

func (s *interactionRepoImpl) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *interactionRepoImpl) LockTarget(ctx context.Context, tx *gorm.DB, kind model.InteractionKind, targetID uint64) (*LockedTarget, error) {
	t := targetTables[kind]
	var row LockedTarget
	err := tx.WithContext(ctx).Table(t.table).
		Select("id, user_id AS owner_id, "+t.counter+" AS counter_value").
		Where("id = ? AND is_deleted = ?", targetID, false).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "NOWAIT"}).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *interactionRepoImpl) Exists(ctx context.Context, tx *gorm.DB, userID, targetID uint64, kind model.InteractionKind) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Interaction{}).
		Where("user_id = ? AND target_id = ? AND kind = ?", userID, targetID, kind).
		Count(&count).Error
	return count > 0, err
}

func (s *interactionRepoImpl) Create(ctx context.Context, tx *gorm.DB, rec *model.Interaction) error {
	return tx.WithContext(ctx).Create(rec).Error
}

func (s *interactionRepoImpl) Delete(ctx context.Context, tx *gorm.DB, userID, targetID uint64, kind model.InteractionKind) (int64, error) {
	res := tx.WithContext(ctx).
		Where("user_id = ? AND target_id = ? AND kind = ?", userID, targetID, kind).
		Delete(&model.Interaction{})
	return res.RowsAffected, res.Error
}

func (s *interactionRepoImpl) AddCounter(ctx context.Context, tx *gorm.DB, kind model.InteractionKind, targetID uint64, delta int) error {
	t := targetTables[kind]
	var expr *gorm.DB
	if delta >= 0 {
		expr = tx.WithContext(ctx).Table(t.table).Where("id = ?", targetID).
			UpdateColumn(t.counter, gorm.Expr(t.counter+" + ?", delta))
	} else {
		expr = tx.WithContext(ctx).Table(t.table).Where("id = ?", targetID).
			UpdateColumn(t.counter, gorm.Expr("GREATEST("+t.counter+" - ?, 0)", -delta))
	}
	return expr.Error
}

func (s *interactionRepoImpl) DeleteByTarget(ctx context.Context, tx *gorm.DB, targetID uint64, kinds ...model.InteractionKind) error {
	return tx.WithContext(ctx).
		Where("target_id = ? AND kind IN ?", targetID, kinds).
		Delete(&model.Interaction{}).Error
}

func (s *interactionRepoImpl) CountByTarget(ctx context.Context, targetID uint64, kind model.InteractionKind) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Interaction{}).
		Where("target_id = ? AND kind = ?", targetID, kind).
		Count(&count).Error
	return count, err
}

func (s *interactionRepoImpl) CheckExists(ctx context.Context, userID, targetID uint64, kind model.InteractionKind) (bool, error) {
	return s.Exists(ctx, s.db, userID, targetID, kind)
}
