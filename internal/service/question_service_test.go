package service

import (
	"ScholarHub/internal/model"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeQuestionRepo struct {
	mu       sync.Mutex
	comments map[uint64]*model.QuestionComment
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{comments: make(map[uint64]*model.QuestionComment)}
}

func (s *fakeQuestionRepo) seedComment(id, userID, rootID uint64) {
	s.comments[id] = &model.QuestionComment{ID: id, QuestionID: 1, UserID: userID, RootID: rootID}
}

func (s *fakeQuestionRepo) commentDeleted(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[id]
	return ok && comment.IsDeleted
}

func (s *fakeQuestionRepo) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(nil)
}

func (s *fakeQuestionRepo) Create(_ context.Context, _ *gorm.DB, _ *model.Question, _ []uint64) error {
	return nil
}

func (s *fakeQuestionRepo) Update(_ context.Context, _ *gorm.DB, _ *model.Question, _ []uint64) error {
	return nil
}

func (s *fakeQuestionRepo) SoftDelete(_ context.Context, _ *gorm.DB, _ uint64) error {
	return nil
}

func (s *fakeQuestionRepo) GetByID(_ context.Context, _ uint64) (*model.Question, error) {
	return nil, nil
}

func (s *fakeQuestionRepo) GetFieldIDs(_ context.Context, _ uint64) ([]uint64, error) {
	return nil, nil
}

func (s *fakeQuestionRepo) ListActive(_ context.Context, _ uint64, _ int) ([]*model.Question, error) {
	return nil, nil
}

func (s *fakeQuestionRepo) CreateComment(_ context.Context, comment *model.QuestionComment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.ID] = comment
	return nil
}

func (s *fakeQuestionRepo) GetCommentByID(_ context.Context, commentID uint64) (*model.QuestionComment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[commentID]
	if !ok || comment.IsDeleted {
		return nil, nil
	}
	clone := *comment
	return &clone, nil
}

func (s *fakeQuestionRepo) ListCommentThreadIDs(_ context.Context, _ *gorm.DB, commentID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	for id, comment := range s.comments {
		if comment.IsDeleted {
			continue
		}
		if id == commentID || comment.RootID == commentID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *fakeQuestionRepo) DeleteComment(_ context.Context, _ *gorm.DB, commentID uint64) error {
	for id, comment := range s.comments {
		if id == commentID || comment.RootID == commentID {
			comment.IsDeleted = true
		}
	}
	return nil
}

func TestQuestionDeleteComment_CascadesThreadLikes(t *testing.T) {
	questionRepo := newFakeQuestionRepo()
	interactionRepo := newFakeInteractionRepo()
	statSvc := NewStatService(newFakeStatRepo(), &fakeOrgRepo{})
	svc := NewQuestionService(questionRepo, interactionRepo, newFakeDictRepo(), statSvc)
	ctx := context.Background()

	questionRepo.seedComment(10, 5, 0)
	questionRepo.seedComment(11, 6, 10)
	questionRepo.seedComment(20, 5, 0)

	interactionRepo.records[recordKey{7, 10, model.KindQuestionCommentLike}] = struct{}{}
	interactionRepo.records[recordKey{7, 11, model.KindQuestionReplyLike}] = struct{}{}
	interactionRepo.records[recordKey{7, 20, model.KindQuestionCommentLike}] = struct{}{}

	require.NoError(t, svc.DeleteComment(ctx, 5, 10))

	require.True(t, questionRepo.commentDeleted(10))
	require.True(t, questionRepo.commentDeleted(11))
	require.False(t, questionRepo.commentDeleted(20))

	count, err := interactionRepo.CountByTarget(ctx, 10, model.KindQuestionCommentLike)
	require.NoError(t, err)
	require.Zero(t, count)
	count, err = interactionRepo.CountByTarget(ctx, 11, model.KindQuestionReplyLike)
	require.NoError(t, err)
	require.Zero(t, count)

	liked, err := interactionRepo.CheckExists(ctx, 7, 20, model.KindQuestionCommentLike)
	require.NoError(t, err)
	require.True(t, liked)
}
