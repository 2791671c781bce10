package service

import (
	"ScholarHub/internal/model"
	"ScholarHub/internal/repository"
	"context"

	"gorm.io/gorm"
)

type StatService interface {
	// Adjust 在调用方事务内，对一次领域事件触达的全部聚合键累加 weight。
	// 事务回滚时任何调整都不落库。维度 id 缺失属于上游编码错误，这里
	// 不回查外键、直接报错中断事务，绝不跳过部分键
	Adjust(ctx context.Context, tx *gorm.DB, actorID uint64, fieldIDs []uint64, semesterID, categoryID uint64, metric model.StatMetric, weight int, increment bool) error

	// GetByKey 聚合行不存在时返回全零记录而不是报错，供报表方直接消费
	GetByKey(ctx context.Context, key model.StatKey) (*model.StatRecord, error)
	ListByScope(ctx context.Context, scope model.StatScope, semesterID uint64) ([]*model.StatRecord, error)
}

type statServiceImpl struct {
	statRepo repository.StatRepo
	orgRepo  repository.OrgRepo
}

func NewStatService(statRepo repository.StatRepo, orgRepo repository.OrgRepo) StatService {
	return &statServiceImpl{
		statRepo: statRepo,
		orgRepo:  orgRepo,
	}
}

func (s *statServiceImpl) Adjust(ctx context.Context, tx *gorm.DB, actorID uint64, fieldIDs []uint64, semesterID, categoryID uint64, metric model.StatMetric, weight int, increment bool) error {
	if actorID == 0 || len(fieldIDs) == 0 || semesterID == 0 || categoryID == 0 {
		return ErrDimensionNotFound
	}

	departments, err := s.orgRepo.GetUserDepartments(ctx, actorID)
	if err != nil {
		return err
	}

	delta := weight
	if !increment {
		delta = -weight
	}

	for _, key := range ResolveStatKeys(actorID, departments, fieldIDs, semesterID, categoryID) {
		if err = s.statRepo.AddCount(ctx, tx, key, metric, delta); err != nil {
			return err
		}
	}
	return nil
}

func (s *statServiceImpl) GetByKey(ctx context.Context, key model.StatKey) (*model.StatRecord, error) {
	rec, err := s.statRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return &model.StatRecord{
			Scope:      key.Scope,
			TargetID:   key.TargetID,
			SemesterID: key.SemesterID,
			FieldID:    key.FieldID,
			CategoryID: key.CategoryID,
		}, nil
	}
	return rec, nil
}

func (s *statServiceImpl) ListByScope(ctx context.Context, scope model.StatScope, semesterID uint64) ([]*model.StatRecord, error) {
	return s.statRepo.ListByScope(ctx, scope, semesterID)
}

// ResolveStatKeys 展开一次统计事件触达的全部聚合键：每个领域各一组
// TOTAL 键与 USER 键，外加按行为人系所归属展开的 DEPARTMENT 键与
// COLLEGE 键。多系所归属逐一计入，同一学院下多个系所只计一次 COLLEGE。
// 增量路径与全量重建共用此展开，保证两条路径落到同一组键上
func ResolveStatKeys(actorID uint64, departments []*model.Department, fieldIDs []uint64, semesterID, categoryID uint64) []model.StatKey {
	keys := make([]model.StatKey, 0, (2+2*len(departments))*len(fieldIDs))
	for _, fieldID := range fieldIDs {
		keys = append(keys,
			model.StatKey{Scope: model.ScopeTotal, TargetID: 0, SemesterID: semesterID, FieldID: fieldID, CategoryID: categoryID},
			model.StatKey{Scope: model.ScopeUser, TargetID: actorID, SemesterID: semesterID, FieldID: fieldID, CategoryID: categoryID},
		)

		seenColleges := make(map[uint64]struct{}, len(departments))
		for _, dept := range departments {
			keys = append(keys, model.StatKey{
				Scope:      model.ScopeDepartment,
				TargetID:   dept.ID,
				SemesterID: semesterID,
				FieldID:    fieldID,
				CategoryID: categoryID,
			})
			if _, ok := seenColleges[dept.CollegeID]; ok {
				continue
			}
			seenColleges[dept.CollegeID] = struct{}{}
			keys = append(keys, model.StatKey{
				Scope:      model.ScopeCollege,
				TargetID:   dept.CollegeID,
				SemesterID: semesterID,
				FieldID:    fieldID,
				CategoryID: categoryID,
			})
		}
	}
	return keys
}
