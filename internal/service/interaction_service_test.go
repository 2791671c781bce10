package service

import (
	"ScholarHub/internal/model"
	"ScholarHub/internal/repository"
	"context"
	"sync"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type targetKey struct {
	kind     model.InteractionKind
	targetID uint64
}

type recordKey struct {
	userID   uint64
	targetID uint64
	kind     model.InteractionKind
}

// fakeInteractionRepo 用全局互斥锁模拟行锁事务：Transaction 持锁执行整个
// 闭包，事务内方法不再加锁
type fakeInteractionRepo struct {
	mu       sync.Mutex
	owners   map[targetKey]uint64
	records  map[recordKey]struct{}
	counters map[targetKey]int64

	lockErr    error
	hideExists bool
}

func newFakeInteractionRepo() *fakeInteractionRepo {
	return &fakeInteractionRepo{
		owners:   make(map[targetKey]uint64),
		records:  make(map[recordKey]struct{}),
		counters: make(map[targetKey]int64),
	}
}

func (s *fakeInteractionRepo) seedTarget(kind model.InteractionKind, targetID, ownerID uint64) {
	s.owners[targetKey{kind, targetID}] = ownerID
}

func (s *fakeInteractionRepo) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(nil)
}

func (s *fakeInteractionRepo) LockTarget(_ context.Context, _ *gorm.DB, kind model.InteractionKind, targetID uint64) (*repository.LockedTarget, error) {
	if s.lockErr != nil {
		return nil, s.lockErr
	}
	key := targetKey{kind, targetID}
	owner, ok := s.owners[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &repository.LockedTarget{ID: targetID, OwnerID: owner, CounterValue: s.counters[key]}, nil
}

func (s *fakeInteractionRepo) Exists(_ context.Context, _ *gorm.DB, userID, targetID uint64, kind model.InteractionKind) (bool, error) {
	if s.hideExists {
		return false, nil
	}
	_, ok := s.records[recordKey{userID, targetID, kind}]
	return ok, nil
}

func (s *fakeInteractionRepo) Create(_ context.Context, _ *gorm.DB, rec *model.Interaction) error {
	key := recordKey{rec.UserID, rec.TargetID, rec.Kind}
	if _, ok := s.records[key]; ok {
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	s.records[key] = struct{}{}
	return nil
}

func (s *fakeInteractionRepo) Delete(_ context.Context, _ *gorm.DB, userID, targetID uint64, kind model.InteractionKind) (int64, error) {
	key := recordKey{userID, targetID, kind}
	if _, ok := s.records[key]; !ok {
		return 0, nil
	}
	delete(s.records, key)
	return 1, nil
}

func (s *fakeInteractionRepo) AddCounter(_ context.Context, _ *gorm.DB, kind model.InteractionKind, targetID uint64, delta int) error {
	key := targetKey{kind, targetID}
	next := s.counters[key] + int64(delta)
	if next < 0 {
		next = 0
	}
	s.counters[key] = next
	return nil
}

func (s *fakeInteractionRepo) DeleteByTarget(_ context.Context, _ *gorm.DB, targetID uint64, kinds ...model.InteractionKind) error {
	for key := range s.records {
		if key.targetID != targetID {
			continue
		}
		for _, kind := range kinds {
			if key.kind == kind {
				delete(s.records, key)
				break
			}
		}
	}
	return nil
}

func (s *fakeInteractionRepo) CountByTarget(_ context.Context, targetID uint64, kind model.InteractionKind) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for key := range s.records {
		if key.targetID == targetID && key.kind == kind {
			count++
		}
	}
	return count, nil
}

func (s *fakeInteractionRepo) CheckExists(_ context.Context, userID, targetID uint64, kind model.InteractionKind) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[recordKey{userID, targetID, kind}]
	return ok, nil
}

func (s *fakeInteractionRepo) counter(kind model.InteractionKind, targetID uint64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[targetKey{kind, targetID}]
}

func TestInteractionAdd_Success(t *testing.T) {
	repo := newFakeInteractionRepo()
	repo.seedTarget(model.KindProjectLike, 42, 1)
	svc := NewInteractionService(repo)
	ctx := context.Background()

	msg, err := svc.Add(ctx, 7, 42, model.KindProjectLike)
	require.NoError(t, err)
	require.Equal(t, "点赞成功", msg)
	require.EqualValues(t, 1, repo.counter(model.KindProjectLike, 42))

	liked, err := svc.IsInteracted(ctx, 7, 42, model.KindProjectLike)
	require.NoError(t, err)
	require.True(t, liked)
}

func TestInteractionAdd_RecommendLabel(t *testing.T) {
	repo := newFakeInteractionRepo()
	repo.seedTarget(model.KindFoundingRecommend, 42, 1)
	svc := NewInteractionService(repo)

	msg, err := svc.Add(context.Background(), 7, 42, model.KindFoundingRecommend)
	require.NoError(t, err)
	require.Equal(t, "推荐成功", msg)
}

func TestInteractionAdd_SelfInteraction(t *testing.T) {
	repo := newFakeInteractionRepo()
	repo.seedTarget(model.KindQuestionLike, 42, 7)
	svc := NewInteractionService(repo)

	_, err := svc.Add(context.Background(), 7, 42, model.KindQuestionLike)
	require.ErrorIs(t, err, ErrSelfInteraction)
	require.EqualValues(t, 0, repo.counter(model.KindQuestionLike, 42))
}

func TestInteractionAdd_AlreadyInteracted(t *testing.T) {
	repo := newFakeInteractionRepo()
	repo.seedTarget(model.KindProjectLike, 42, 1)
	svc := NewInteractionService(repo)
	ctx := context.Background()

	_, err := svc.Add(ctx, 7, 42, model.KindProjectLike)
	require.NoError(t, err)

	_, err = svc.Add(ctx, 7, 42, model.KindProjectLike)
	require.ErrorIs(t, err, ErrAlreadyInteracted)
	require.EqualValues(t, 1, repo.counter(model.KindProjectLike, 42))
}

func TestInteractionAdd_DuplicateKeyBackstop(t *testing.T) {
	// 存在性检查被绕过时，唯一键冲突兜底并翻译为同一业务错误
	repo := newFakeInteractionRepo()
	repo.seedTarget(model.KindProjectLike, 42, 1)
	repo.records[recordKey{7, 42, model.KindProjectLike}] = struct{}{}
	repo.hideExists = true
	svc := NewInteractionService(repo)

	_, err := svc.Add(context.Background(), 7, 42, model.KindProjectLike)
	require.ErrorIs(t, err, ErrAlreadyInteracted)
}

func TestInteractionAdd_TargetMissing(t *testing.T) {
	repo := newFakeInteractionRepo()
	svc := NewInteractionService(repo)

	_, err := svc.Add(context.Background(), 7, 404, model.KindProjectLike)
	require.ErrorIs(t, err, ErrTargetNotFound)
}

func TestInteractionAdd_LockDenied(t *testing.T) {
	tests := []struct {
		name  string
		errNo uint16
	}{
		{name: "nowait denied", errNo: 3572},
		{name: "lock wait timeout", errNo: 1205},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeInteractionRepo()
			repo.seedTarget(model.KindProjectLike, 42, 1)
			repo.lockErr = &mysql.MySQLError{Number: tc.errNo}
			svc := NewInteractionService(repo)

			_, err := svc.Add(context.Background(), 7, 42, model.KindProjectLike)
			require.ErrorIs(t, err, ErrTryAgainLater)
		})
	}
}

func TestInteractionRemove_NotInteracted(t *testing.T) {
	repo := newFakeInteractionRepo()
	repo.seedTarget(model.KindProjectLike, 42, 1)
	svc := NewInteractionService(repo)

	_, err := svc.Remove(context.Background(), 7, 42, model.KindProjectLike)
	require.ErrorIs(t, err, ErrNotInteracted)
}

func TestInteractionRemove_RoundTrip(t *testing.T) {
	repo := newFakeInteractionRepo()
	repo.seedTarget(model.KindProjectLike, 42, 1)
	svc := NewInteractionService(repo)
	ctx := context.Background()

	_, err := svc.Add(ctx, 7, 42, model.KindProjectLike)
	require.NoError(t, err)

	msg, err := svc.Remove(ctx, 7, 42, model.KindProjectLike)
	require.NoError(t, err)
	require.Equal(t, "取消点赞成功", msg)
	require.EqualValues(t, 0, repo.counter(model.KindProjectLike, 42))

	liked, err := svc.IsInteracted(ctx, 7, 42, model.KindProjectLike)
	require.NoError(t, err)
	require.False(t, liked)
}

func TestInteractionRemove_CounterClampedAtZero(t *testing.T) {
	// 台账有记录但冗余计数已漂移到 0，回减不得穿透为负数
	repo := newFakeInteractionRepo()
	repo.seedTarget(model.KindProjectLike, 42, 1)
	repo.records[recordKey{7, 42, model.KindProjectLike}] = struct{}{}
	svc := NewInteractionService(repo)

	_, err := svc.Remove(context.Background(), 7, 42, model.KindProjectLike)
	require.NoError(t, err)
	require.EqualValues(t, 0, repo.counter(model.KindProjectLike, 42))
}

func TestInteraction_ConcurrentAddRemove(t *testing.T) {
	const users = 32
	repo := newFakeInteractionRepo()
	repo.seedTarget(model.KindProjectLike, 42, 1)
	svc := NewInteractionService(repo)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(uid uint64) {
			defer wg.Done()
			_, err := svc.Add(ctx, uid, 42, model.KindProjectLike)
			require.NoError(t, err)
		}(uint64(100 + i))
	}
	wg.Wait()
	require.EqualValues(t, users, repo.counter(model.KindProjectLike, 42))

	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(uid uint64) {
			defer wg.Done()
			_, err := svc.Remove(ctx, uid, 42, model.KindProjectLike)
			require.NoError(t, err)
		}(uint64(100 + i))
	}
	wg.Wait()
	require.EqualValues(t, 0, repo.counter(model.KindProjectLike, 42))

	count, err := repo.CountByTarget(ctx, 42, model.KindProjectLike)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestInteractionIsInteracted_AnonymousUser(t *testing.T) {
	svc := NewInteractionService(newFakeInteractionRepo())

	liked, err := svc.IsInteracted(context.Background(), 0, 42, model.KindProjectLike)
	require.NoError(t, err)
	require.False(t, liked)
}
