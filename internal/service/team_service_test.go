package service

import (
	"ScholarHub/internal/api/dto"
	"ScholarHub/internal/model"
	"context"
	"sync"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDictRepo struct {
	semesters  map[uint64]struct{}
	fields     map[uint64]struct{}
	categories map[uint64]struct{}
}

func newFakeDictRepo() *fakeDictRepo {
	return &fakeDictRepo{
		semesters:  map[uint64]struct{}{1: {}},
		fields:     map[uint64]struct{}{10: {}, 11: {}},
		categories: map[uint64]struct{}{2: {}},
	}
}

func (s *fakeDictRepo) SemesterExists(_ context.Context, semesterID uint64) (bool, error) {
	_, ok := s.semesters[semesterID]
	return ok, nil
}

func (s *fakeDictRepo) CategoryExists(_ context.Context, categoryID uint64) (bool, error) {
	_, ok := s.categories[categoryID]
	return ok, nil
}

func (s *fakeDictRepo) CountFields(_ context.Context, fieldIDs []uint64) (int64, error) {
	var count int64
	for _, id := range fieldIDs {
		if _, ok := s.fields[id]; ok {
			count++
		}
	}
	return count, nil
}

func (s *fakeDictRepo) ListSemesters(_ context.Context) ([]*model.Semester, error) {
	return nil, nil
}

func (s *fakeDictRepo) ListFields(_ context.Context) ([]*model.SubjectField, error) {
	return nil, nil
}

func (s *fakeDictRepo) ListCategories(_ context.Context) ([]*model.Category, error) {
	return nil, nil
}

type membershipKey struct {
	teamID uint64
	userID uint64
}

type fakeTeamRepo struct {
	mu      sync.Mutex
	nextID  uint64
	teams   map[uint64]*model.Team
	members map[membershipKey]struct{}
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:   make(map[uint64]*model.Team),
		members: make(map[membershipKey]struct{}),
	}
}

func (s *fakeTeamRepo) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(nil)
}

func (s *fakeTeamRepo) Create(_ context.Context, _ *gorm.DB, team *model.Team) error {
	s.nextID++
	team.ID = s.nextID
	clone := *team
	s.teams[team.ID] = &clone
	return nil
}

func (s *fakeTeamRepo) SoftDelete(_ context.Context, _ *gorm.DB, teamID uint64) error {
	if team, ok := s.teams[teamID]; ok {
		team.IsDeleted = true
	}
	return nil
}

func (s *fakeTeamRepo) GetByID(_ context.Context, teamID uint64) (*model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, ok := s.teams[teamID]
	if !ok || team.IsDeleted {
		return nil, nil
	}
	clone := *team
	return &clone, nil
}

func (s *fakeTeamRepo) ListActive(_ context.Context, lastID uint64, limit int) ([]*model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	teams := make([]*model.Team, 0)
	for id := lastID + 1; id <= s.nextID && len(teams) < limit; id++ {
		if team, ok := s.teams[id]; ok && !team.IsDeleted {
			clone := *team
			teams = append(teams, &clone)
		}
	}
	return teams, nil
}

func (s *fakeTeamRepo) AddMember(_ context.Context, _ *gorm.DB, member *model.TeamMember) error {
	key := membershipKey{member.TeamID, member.UserID}
	if _, ok := s.members[key]; ok {
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	s.members[key] = struct{}{}
	return nil
}

func (s *fakeTeamRepo) RemoveMember(_ context.Context, _ *gorm.DB, teamID, userID uint64) (int64, error) {
	key := membershipKey{teamID, userID}
	if _, ok := s.members[key]; !ok {
		return 0, nil
	}
	delete(s.members, key)
	return 1, nil
}

func (s *fakeTeamRepo) DeleteMembers(_ context.Context, _ *gorm.DB, teamID uint64) error {
	for key := range s.members {
		if key.teamID == teamID {
			delete(s.members, key)
		}
	}
	return nil
}

func (s *fakeTeamRepo) ListMemberIDs(_ context.Context, teamID uint64) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint64, 0)
	for key := range s.members {
		if key.teamID == teamID {
			ids = append(ids, key.userID)
		}
	}
	return ids, nil
}

func (s *fakeTeamRepo) CountMembers(_ context.Context, teamID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for key := range s.members {
		if key.teamID == teamID {
			count++
		}
	}
	return count, nil
}

func (s *fakeTeamRepo) isMember(teamID, userID uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[membershipKey{teamID, userID}]
	return ok
}

func newTeamTestEnv() (*fakeTeamRepo, *fakeStatRepo, TeamService) {
	teamRepo := newFakeTeamRepo()
	statRepo := newFakeStatRepo()
	statSvc := NewStatService(statRepo, &fakeOrgRepo{departments: map[uint64][]*model.Department{}})
	return teamRepo, statRepo, NewTeamService(teamRepo, newFakeDictRepo(), statSvc)
}

func teamTotalCount(t *testing.T, statRepo *fakeStatRepo) int {
	t.Helper()
	rec, err := statRepo.GetByKey(context.Background(), model.StatKey{Scope: model.ScopeTotal, SemesterID: 1, FieldID: 10, CategoryID: 2})
	require.NoError(t, err)
	if rec == nil {
		return 0
	}
	return rec.TeamCount
}

func TestTeamCreate_LeaderEnrolledAndCounted(t *testing.T) {
	teamRepo, statRepo, svc := newTeamTestEnv()
	ctx := context.Background()

	teamID, err := svc.Create(ctx, 1, &dto.TeamCreateReq{Name: "组队", SemesterID: 1, CategoryID: 2, FieldID: 10})
	require.NoError(t, err)
	require.True(t, teamRepo.isMember(teamID, 1))
	require.Equal(t, 1, teamTotalCount(t, statRepo))

	userKey := model.StatKey{Scope: model.ScopeUser, TargetID: 1, SemesterID: 1, FieldID: 10, CategoryID: 2}
	rec, err := statRepo.GetByKey(ctx, userKey)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, 1, rec.TeamCount)
}

func TestTeamJoinLeave_RoundTripNetsZero(t *testing.T) {
	teamRepo, statRepo, svc := newTeamTestEnv()
	ctx := context.Background()

	teamID, err := svc.Create(ctx, 1, &dto.TeamCreateReq{Name: "组队", SemesterID: 1, CategoryID: 2, FieldID: 10})
	require.NoError(t, err)

	require.NoError(t, svc.Join(ctx, 7, teamID))
	require.True(t, teamRepo.isMember(teamID, 7))
	require.Equal(t, 2, teamTotalCount(t, statRepo))

	require.NoError(t, svc.Leave(ctx, 7, teamID))
	require.False(t, teamRepo.isMember(teamID, 7))
	require.Equal(t, 1, teamTotalCount(t, statRepo))

	userKey := model.StatKey{Scope: model.ScopeUser, TargetID: 7, SemesterID: 1, FieldID: 10, CategoryID: 2}
	rec, err := statRepo.GetByKey(ctx, userKey)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Zero(t, rec.TeamCount)
}

func TestTeamJoin_Duplicate(t *testing.T) {
	_, statRepo, svc := newTeamTestEnv()
	ctx := context.Background()

	teamID, err := svc.Create(ctx, 1, &dto.TeamCreateReq{Name: "组队", SemesterID: 1, CategoryID: 2, FieldID: 10})
	require.NoError(t, err)

	require.NoError(t, svc.Join(ctx, 7, teamID))
	require.ErrorIs(t, svc.Join(ctx, 7, teamID), ErrTeamMemberExist)

	// 重复入队不会重复计入
	require.Equal(t, 2, teamTotalCount(t, statRepo))
}

func TestTeamDelete_ClearsMembershipsAndCounts(t *testing.T) {
	teamRepo, statRepo, svc := newTeamTestEnv()
	ctx := context.Background()

	teamID, err := svc.Create(ctx, 1, &dto.TeamCreateReq{Name: "组队", SemesterID: 1, CategoryID: 2, FieldID: 10})
	require.NoError(t, err)
	require.NoError(t, svc.Join(ctx, 7, teamID))
	require.NoError(t, svc.Join(ctx, 8, teamID))

	require.NoError(t, svc.Delete(ctx, 1, teamID))

	for _, uid := range []uint64{1, 7, 8} {
		require.False(t, teamRepo.isMember(teamID, uid))
	}
	require.Zero(t, teamTotalCount(t, statRepo))

	records, err := statRepo.ListAll(ctx)
	require.NoError(t, err)
	for _, rec := range records {
		require.Zero(t, rec.TeamCount, "key %+v", rec.Key())
	}
}

func TestTeamLeave_LeaderRejected(t *testing.T) {
	_, _, svc := newTeamTestEnv()
	ctx := context.Background()

	teamID, err := svc.Create(ctx, 1, &dto.TeamCreateReq{Name: "组队", SemesterID: 1, CategoryID: 2, FieldID: 10})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Leave(ctx, 1, teamID), ErrParamInvalid)
}

func TestTeamLeave_NotMember(t *testing.T) {
	_, _, svc := newTeamTestEnv()
	ctx := context.Background()

	teamID, err := svc.Create(ctx, 1, &dto.TeamCreateReq{Name: "组队", SemesterID: 1, CategoryID: 2, FieldID: 10})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Leave(ctx, 9, teamID), ErrTeamMemberNotFound)
}
