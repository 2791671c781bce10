package repository

import (
	"ScholarHub/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatRepo interface {
	// AddCount 按聚合键 Upsert 一行并对指定计数列累加 delta，
	// 负向调整在 SQL 内用 GREATEST 截断到 0
	AddCount(ctx context.Context, tx *gorm.DB, key model.StatKey, metric model.StatMetric, delta int) error

	GetByKey(ctx context.Context, key model.StatKey) (*model.StatRecord, error)
	ListByScope(ctx context.Context, scope model.StatScope, semesterID uint64) ([]*model.StatRecord, error)
	ListAll(ctx context.Context) ([]*model.StatRecord, error)

	// Truncate 清空全部聚合行，仅全量重建使用
	Truncate(ctx context.Context) error
	CreateInBatches(ctx context.Context, records []*model.StatRecord, batchSize int) error
}

type statRepoImpl struct {
	db *gorm.DB
}

func NewStatRepo(db *gorm.DB) StatRepo {
	return &statRepoImpl{db: db}
}

func (s *statRepoImpl) AddCount(ctx context.Context, tx *gorm.DB, key model.StatKey, metric model.StatMetric, delta int) error {
	col := metric.CounterColumn()
	if col == "" {
		return errors.New("unknown stat metric")
	}

	// 聚合行只在首次正向累加时懒创建；回减只更新已有行，
	// 键不存在时截断后的结果就是 0，等价于没有这行
	if delta < 0 {
		return tx.WithContext(ctx).Model(&model.StatRecord{}).
			Where("scope = ? AND target_id = ? AND semester_id = ? AND field_id = ? AND category_id = ?",
				key.Scope, key.TargetID, key.SemesterID, key.FieldID, key.CategoryID).
			UpdateColumn(col, gorm.Expr("GREATEST("+col+" - ?, 0)", -delta)).Error
	}

	rec := &model.StatRecord{
		Scope:      key.Scope,
		TargetID:   key.TargetID,
		SemesterID: key.SemesterID,
		FieldID:    key.FieldID,
		CategoryID: key.CategoryID,
	}
	rec.AddMetric(metric, delta)

	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "scope"}, {Name: "target_id"},
			{Name: "semester_id"}, {Name: "field_id"}, {Name: "category_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			col: gorm.Expr(col+" + ?", delta),
		}),
	}).Create(rec).Error
}

func (s *statRepoImpl) GetByKey(ctx context.Context, key model.StatKey) (*model.StatRecord, error) {
	var rec model.StatRecord
	err := s.db.WithContext(ctx).
		Where("scope = ? AND target_id = ? AND semester_id = ? AND field_id = ? AND category_id = ?",
			key.Scope, key.TargetID, key.SemesterID, key.FieldID, key.CategoryID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (s *statRepoImpl) ListByScope(ctx context.Context, scope model.StatScope, semesterID uint64) ([]*model.StatRecord, error) {
	records := make([]*model.StatRecord, 0)
	query := s.db.WithContext(ctx).Where("scope = ?", scope)
	if semesterID > 0 {
		query = query.Where("semester_id = ?", semesterID)
	}
	err := query.Order("target_id ASC, field_id ASC").Find(&records).Error
	return records, err
}

func (s *statRepoImpl) ListAll(ctx context.Context) ([]*model.StatRecord, error) {
	records := make([]*model.StatRecord, 0)
	err := s.db.WithContext(ctx).Find(&records).Error
	return records, err
}

func (s *statRepoImpl) Truncate(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec("TRUNCATE TABLE stat_records").Error
}

func (s *statRepoImpl) CreateInBatches(ctx context.Context, records []*model.StatRecord, batchSize int) error {
	if len(records) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(records, batchSize).Error
}
