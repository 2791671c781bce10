package service

import (
	"ScholarHub/internal/api/dto"
	"ScholarHub/internal/model"
	"ScholarHub/internal/repository"
	"context"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type QuestionService interface {
	Create(ctx context.Context, userID uint64, req *dto.QuestionCreateReq) (uint64, error)
	Update(ctx context.Context, userID, questionID uint64, req *dto.QuestionUpdateReq) error
	Delete(ctx context.Context, userID, questionID uint64) error
	Get(ctx context.Context, questionID uint64) (*dto.QuestionDTO, error)

	CreateComment(ctx context.Context, userID uint64, req *dto.QuestionCommentCreateReq) error
	DeleteComment(ctx context.Context, userID, commentID uint64) error
}

type questionServiceImpl struct {
	questionRepo    repository.QuestionRepo
	interactionRepo repository.InteractionRepo
	dictRepo        repository.DictRepo
	statSvc         StatService
}

func NewQuestionService(questionRepo repository.QuestionRepo, interactionRepo repository.InteractionRepo, dictRepo repository.DictRepo, statSvc StatService) QuestionService {
	return &questionServiceImpl{
		questionRepo:    questionRepo,
		interactionRepo: interactionRepo,
		dictRepo:        dictRepo,
		statSvc:         statSvc,
	}
}

func (s *questionServiceImpl) Create(ctx context.Context, userID uint64, req *dto.QuestionCreateReq) (uint64, error) {
	fieldIDs := dedupeIDs(req.FieldIDs)
	if err := validateDimensions(ctx, s.dictRepo, fieldIDs, req.SemesterID, req.CategoryID); err != nil {
		return 0, err
	}

	question := &model.Question{
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		SemesterID: req.SemesterID,
		CategoryID: req.CategoryID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	err := s.questionRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.questionRepo.Create(ctx, tx, question, fieldIDs); err != nil {
			return err
		}
		return s.statSvc.Adjust(ctx, tx, userID, fieldIDs, req.SemesterID, req.CategoryID, model.MetricQuestion, 1, true)
	})
	if err != nil {
		return 0, err
	}
	return question.ID, nil
}

func (s *questionServiceImpl) Update(ctx context.Context, userID, questionID uint64, req *dto.QuestionUpdateReq) error {
	old, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return err
	}
	if old == nil {
		return ErrQuestionNotFound
	}
	if old.UserID != userID {
		return UnauthorizedError
	}

	newFieldIDs := dedupeIDs(req.FieldIDs)
	if err = validateDimensions(ctx, s.dictRepo, newFieldIDs, req.SemesterID, req.CategoryID); err != nil {
		return err
	}

	oldFieldIDs := make([]uint64, 0, len(old.Fields))
	for _, f := range old.Fields {
		oldFieldIDs = append(oldFieldIDs, f.ID)
	}

	return s.questionRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.statSvc.Adjust(ctx, tx, old.UserID, oldFieldIDs, old.SemesterID, old.CategoryID, model.MetricQuestion, 1, false); err != nil {
			return err
		}

		updated := &model.Question{
			ID:         questionID,
			Title:      req.Title,
			Content:    req.Content,
			SemesterID: req.SemesterID,
			CategoryID: req.CategoryID,
		}
		if err := s.questionRepo.Update(ctx, tx, updated, newFieldIDs); err != nil {
			return err
		}

		return s.statSvc.Adjust(ctx, tx, old.UserID, newFieldIDs, req.SemesterID, req.CategoryID, model.MetricQuestion, 1, true)
	})
}

func (s *questionServiceImpl) Delete(ctx context.Context, userID, questionID uint64) error {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return err
	}
	if question == nil {
		return ErrQuestionNotFound
	}
	if question.UserID != userID {
		return UnauthorizedError
	}

	fieldIDs := make([]uint64, 0, len(question.Fields))
	for _, f := range question.Fields {
		fieldIDs = append(fieldIDs, f.ID)
	}

	return s.questionRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.questionRepo.SoftDelete(ctx, tx, questionID); err != nil {
			return err
		}
		if err := s.interactionRepo.DeleteByTarget(ctx, tx, questionID, model.KindQuestionLike); err != nil {
			return err
		}
		return s.statSvc.Adjust(ctx, tx, question.UserID, fieldIDs, question.SemesterID, question.CategoryID, model.MetricQuestion, 1, false)
	})
}

func (s *questionServiceImpl) Get(ctx context.Context, questionID uint64) (*dto.QuestionDTO, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	item := &dto.QuestionDTO{}
	_ = copier.Copy(item, question)
	item.FieldNames = make([]string, 0, len(question.Fields))
	for _, f := range question.Fields {
		item.FieldNames = append(item.FieldNames, f.Name)
	}
	item.CreatedAt = question.CreatedAt.Format("2006-01-02 15:04:05")
	return item, nil
}

func (s *questionServiceImpl) CreateComment(ctx context.Context, userID uint64, req *dto.QuestionCommentCreateReq) error {
	question, err := s.questionRepo.GetByID(ctx, req.QuestionID)
	if err != nil || question == nil {
		return ErrQuestionNotFound
	}

	var rootID, parentID uint64
	if req.ParentID > 0 {
		parent, err := s.questionRepo.GetCommentByID(ctx, req.ParentID)
		if err != nil || parent == nil || parent.QuestionID != req.QuestionID {
			return ErrCommentNotFound
		}
		parentID = parent.ID
		if parent.RootID == 0 {
			rootID = parent.ID
		} else {
			rootID = parent.RootID
		}
	}

	return s.questionRepo.CreateComment(ctx, &model.QuestionComment{
		QuestionID: req.QuestionID,
		UserID:     userID,
		Content:    req.Content,
		RootID:     rootID,
		ParentID:   parentID,
		CreatedAt:  time.Now(),
	})
}

// DeleteComment 连同楼中楼子树一起删除，并级联清掉子树上全部点赞台账
func (s *questionServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.questionRepo.GetCommentByID(ctx, commentID)
	if err != nil || comment == nil {
		return ErrCommentNotFound
	}
	if comment.UserID != userID {
		return UnauthorizedError
	}

	return s.questionRepo.Transaction(ctx, func(tx *gorm.DB) error {
		threadIDs, err := s.questionRepo.ListCommentThreadIDs(ctx, tx, commentID)
		if err != nil {
			return err
		}
		if err = s.questionRepo.DeleteComment(ctx, tx, commentID); err != nil {
			return err
		}
		for _, id := range threadIDs {
			if err = s.interactionRepo.DeleteByTarget(ctx, tx, id, model.KindQuestionCommentLike, model.KindQuestionReplyLike); err != nil {
				return err
			}
		}
		return nil
	})
}
