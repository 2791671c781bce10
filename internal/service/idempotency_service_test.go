package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTokenStore struct {
	mu     sync.Mutex
	now    time.Time
	expiry map[string]time.Time
	keys   []string
	err    error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		now:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		expiry: make(map[string]time.Time),
	}
}

func (s *fakeTokenStore) setNX(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	s.keys = append(s.keys, key)
	if exp, ok := s.expiry[key]; ok && s.now.Before(exp) {
		return false, nil
	}
	s.expiry[key] = s.now.Add(ttl)
	return true, nil
}

func (s *fakeTokenStore) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func newTestIdempotencyService(store *fakeTokenStore, ttl time.Duration) IdempotencyService {
	return &idempotencyServiceImpl{ttl: ttl, setNX: store.setNX}
}

func TestIdempotencyCheck_RejectsReplayWithinWindow(t *testing.T) {
	store := newFakeTokenStore()
	svc := newTestIdempotencyService(store, 10*time.Second)
	ctx := context.Background()

	require.NoError(t, svc.Check(ctx, "interaction", "project_like", "7", "42", "1"))
	require.ErrorIs(t, svc.Check(ctx, "interaction", "project_like", "7", "42", "1"), ErrDuplicateRequest)
}

func TestIdempotencyCheck_DistinctFingerprintsIndependent(t *testing.T) {
	store := newFakeTokenStore()
	svc := newTestIdempotencyService(store, 10*time.Second)
	ctx := context.Background()

	require.NoError(t, svc.Check(ctx, "interaction", "project_like", "7", "42", "1"))

	tests := []struct {
		name  string
		parts []string
	}{
		{name: "different action", parts: []string{"interaction", "project_like", "7", "42", "0"}},
		{name: "different target", parts: []string{"interaction", "project_like", "7", "43", "1"}},
		{name: "different user", parts: []string{"interaction", "project_like", "8", "42", "1"}},
		{name: "different kind", parts: []string{"interaction", "question_like", "7", "42", "1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, svc.Check(ctx, tc.parts...))
		})
	}
}

func TestIdempotencyCheck_AllowsRetryAfterExpiry(t *testing.T) {
	store := newFakeTokenStore()
	svc := newTestIdempotencyService(store, 10*time.Second)
	ctx := context.Background()

	require.NoError(t, svc.Check(ctx, "team:create", "7", "组队"))
	require.ErrorIs(t, svc.Check(ctx, "team:create", "7", "组队"), ErrDuplicateRequest)

	store.advance(11 * time.Second)
	require.NoError(t, svc.Check(ctx, "team:create", "7", "组队"))
}

func TestIdempotencyCheck_PropagatesStoreError(t *testing.T) {
	store := newFakeTokenStore()
	store.err = errors.New("redis: connection refused")
	svc := newTestIdempotencyService(store, 10*time.Second)

	err := svc.Check(context.Background(), "patent:create", "7", "CN123")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrDuplicateRequest)
}

func TestIdempotencyCheck_KeyCarriesAllParts(t *testing.T) {
	store := newFakeTokenStore()
	svc := newTestIdempotencyService(store, 10*time.Second)

	require.NoError(t, svc.Check(context.Background(), "interaction", "project_like", "7", "42", "1"))
	require.Len(t, store.keys, 1)
	require.Contains(t, store.keys[0], "interaction:project_like:7:42:1")
}
