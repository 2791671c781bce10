package service

import (
	"ScholarHub/internal/model"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStatRepo struct {
	mu   sync.Mutex
	rows map[model.StatKey]*model.StatRecord
}

func newFakeStatRepo() *fakeStatRepo {
	return &fakeStatRepo{rows: make(map[model.StatKey]*model.StatRecord)}
}

func (s *fakeStatRepo) AddCount(_ context.Context, _ *gorm.DB, key model.StatKey, metric model.StatMetric, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.rows[key]
	if !ok {
		// 行只在首次正向累加时懒创建，回减落空是无操作
		if delta < 0 {
			return nil
		}
		rec = &model.StatRecord{
			Scope:      key.Scope,
			TargetID:   key.TargetID,
			SemesterID: key.SemesterID,
			FieldID:    key.FieldID,
			CategoryID: key.CategoryID,
		}
		s.rows[key] = rec
	}
	rec.AddMetric(metric, delta)
	return nil
}

func (s *fakeStatRepo) GetByKey(_ context.Context, key model.StatKey) (*model.StatRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.rows[key]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (s *fakeStatRepo) ListByScope(_ context.Context, scope model.StatScope, semesterID uint64) ([]*model.StatRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]*model.StatRecord, 0)
	for key, rec := range s.rows {
		if key.Scope != scope {
			continue
		}
		if semesterID > 0 && key.SemesterID != semesterID {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *fakeStatRepo) ListAll(_ context.Context) ([]*model.StatRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]*model.StatRecord, 0, len(s.rows))
	for _, rec := range s.rows {
		records = append(records, rec)
	}
	return records, nil
}

func (s *fakeStatRepo) Truncate(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = make(map[model.StatKey]*model.StatRecord)
	return nil
}

func (s *fakeStatRepo) CreateInBatches(_ context.Context, records []*model.StatRecord, _ int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.rows[rec.Key()] = rec
	}
	return nil
}

type fakeOrgRepo struct {
	departments map[uint64][]*model.Department
}

func (s *fakeOrgRepo) GetUserDepartments(_ context.Context, userID uint64) ([]*model.Department, error) {
	return s.departments[userID], nil
}

func (s *fakeOrgRepo) GetAllUserDepartments(_ context.Context) (map[uint64][]*model.Department, error) {
	return s.departments, nil
}

func (s *fakeOrgRepo) GetCollegeByID(_ context.Context, _ uint64) (*model.College, error) {
	return nil, nil
}

func (s *fakeOrgRepo) ListColleges(_ context.Context) ([]*model.College, error) {
	return nil, nil
}

func (s *fakeOrgRepo) ListDepartments(_ context.Context, _ uint64) ([]*model.Department, error) {
	return nil, nil
}

func TestResolveStatKeys(t *testing.T) {
	tests := []struct {
		name        string
		departments []*model.Department
		fieldIDs    []uint64
		wantKeys    int
	}{
		{
			name:     "no membership yields total and user only",
			fieldIDs: []uint64{10},
			wantKeys: 2,
		},
		{
			name:        "single department adds department and college",
			departments: []*model.Department{{ID: 3, CollegeID: 1}},
			fieldIDs:    []uint64{10},
			wantKeys:    4,
		},
		{
			name: "two departments in same college count college once",
			departments: []*model.Department{
				{ID: 3, CollegeID: 1},
				{ID: 4, CollegeID: 1},
			},
			fieldIDs: []uint64{10},
			wantKeys: 5,
		},
		{
			name: "two departments in different colleges",
			departments: []*model.Department{
				{ID: 3, CollegeID: 1},
				{ID: 4, CollegeID: 2},
			},
			fieldIDs: []uint64{10},
			wantKeys: 6,
		},
		{
			name:        "keys multiply per field",
			departments: []*model.Department{{ID: 3, CollegeID: 1}},
			fieldIDs:    []uint64{10, 11},
			wantKeys:    8,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			keys := ResolveStatKeys(7, tc.departments, tc.fieldIDs, 1, 2)
			require.Len(t, keys, tc.wantKeys)

			seen := make(map[model.StatKey]struct{}, len(keys))
			for _, key := range keys {
				_, dup := seen[key]
				require.False(t, dup, "duplicate key %+v", key)
				seen[key] = struct{}{}
			}
		})
	}
}

func TestResolveStatKeys_ScopeTargets(t *testing.T) {
	departments := []*model.Department{{ID: 3, CollegeID: 9}}
	keys := ResolveStatKeys(7, departments, []uint64{10}, 1, 2)

	byScope := make(map[model.StatScope]model.StatKey)
	for _, key := range keys {
		byScope[key.Scope] = key
	}

	require.EqualValues(t, 0, byScope[model.ScopeTotal].TargetID)
	require.EqualValues(t, 7, byScope[model.ScopeUser].TargetID)
	require.EqualValues(t, 3, byScope[model.ScopeDepartment].TargetID)
	require.EqualValues(t, 9, byScope[model.ScopeCollege].TargetID)
}

func TestStatAdjust_RoundTripNetsZero(t *testing.T) {
	statRepo := newFakeStatRepo()
	orgRepo := &fakeOrgRepo{departments: map[uint64][]*model.Department{
		7: {{ID: 3, CollegeID: 1}, {ID: 4, CollegeID: 2}},
	}}
	svc := NewStatService(statRepo, orgRepo)
	ctx := context.Background()

	require.NoError(t, svc.Adjust(ctx, nil, 7, []uint64{10, 11}, 1, 2, model.MetricQuestion, 1, true))
	require.NoError(t, svc.Adjust(ctx, nil, 7, []uint64{10, 11}, 1, 2, model.MetricQuestion, 1, false))

	records, err := statRepo.ListAll(ctx)
	require.NoError(t, err)
	for _, rec := range records {
		require.Zero(t, rec.QuestionCount, "key %+v", rec.Key())
	}
}

func TestStatAdjust_IncrementTouchesAllScopes(t *testing.T) {
	statRepo := newFakeStatRepo()
	orgRepo := &fakeOrgRepo{departments: map[uint64][]*model.Department{
		7: {{ID: 3, CollegeID: 1}},
	}}
	svc := NewStatService(statRepo, orgRepo)
	ctx := context.Background()

	require.NoError(t, svc.Adjust(ctx, nil, 7, []uint64{10}, 1, 2, model.MetricPatent, 1, true))

	for _, key := range ResolveStatKeys(7, []*model.Department{{ID: 3, CollegeID: 1}}, []uint64{10}, 1, 2) {
		rec, err := svc.GetByKey(ctx, key)
		require.NoError(t, err)
		require.Equal(t, 1, rec.PatentCount, "key %+v", key)
	}
}

func TestStatAdjust_DecrementClampedAtZero(t *testing.T) {
	statRepo := newFakeStatRepo()
	orgRepo := &fakeOrgRepo{departments: map[uint64][]*model.Department{}}
	svc := NewStatService(statRepo, orgRepo)
	ctx := context.Background()

	// 没有任何累加历史时回减，读出来仍是 0，且不会懒创建聚合行
	require.NoError(t, svc.Adjust(ctx, nil, 7, []uint64{10}, 1, 2, model.MetricTeam, 1, false))

	rec, err := svc.GetByKey(ctx, model.StatKey{Scope: model.ScopeTotal, SemesterID: 1, FieldID: 10, CategoryID: 2})
	require.NoError(t, err)
	require.Zero(t, rec.TeamCount)

	records, err := statRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestStatAdjust_MissingDimension(t *testing.T) {
	svc := NewStatService(newFakeStatRepo(), &fakeOrgRepo{})
	ctx := context.Background()

	tests := []struct {
		name       string
		actorID    uint64
		fieldIDs   []uint64
		semesterID uint64
		categoryID uint64
	}{
		{name: "zero actor", actorID: 0, fieldIDs: []uint64{10}, semesterID: 1, categoryID: 2},
		{name: "empty fields", actorID: 7, fieldIDs: nil, semesterID: 1, categoryID: 2},
		{name: "zero semester", actorID: 7, fieldIDs: []uint64{10}, semesterID: 0, categoryID: 2},
		{name: "zero category", actorID: 7, fieldIDs: []uint64{10}, semesterID: 1, categoryID: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Adjust(ctx, nil, tc.actorID, tc.fieldIDs, tc.semesterID, tc.categoryID, model.MetricQuestion, 1, true)
			require.ErrorIs(t, err, ErrDimensionNotFound)
		})
	}
}

func TestStatGetByKey_AbsentReturnsZeroRecord(t *testing.T) {
	svc := NewStatService(newFakeStatRepo(), &fakeOrgRepo{})

	key := model.StatKey{Scope: model.ScopeUser, TargetID: 7, SemesterID: 1, FieldID: 10, CategoryID: 2}
	rec, err := svc.GetByKey(context.Background(), key)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, key, rec.Key())
	require.Zero(t, rec.LocalProjectCount)
	require.Zero(t, rec.QuestionCount)
}
