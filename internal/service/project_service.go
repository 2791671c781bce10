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

// projectCascadeKinds 项目被删除时需要级联清除的互动台账类别
var projectCascadeKinds = []model.InteractionKind{
	model.KindProjectLike,
	model.KindFoundingRecommend,
	model.KindPatentRecommend,
	model.KindRegisterRecommend,
}

type ProjectService interface {
	Create(ctx context.Context, userID uint64, req *dto.ProjectCreateReq) (uint64, error)

	// Update 改动维度集合时按"先按旧值全量回减、再按新值全量累加"的
	// 配对方式迁移聚合，不存在单独的 move 原语
	Update(ctx context.Context, userID, projectID uint64, req *dto.ProjectUpdateReq) error
	Delete(ctx context.Context, userID, projectID uint64) error
	Get(ctx context.Context, projectID uint64) (*dto.ProjectDTO, error)

	CreateComment(ctx context.Context, userID uint64, req *dto.ProjectCommentCreateReq) error
	DeleteComment(ctx context.Context, userID, commentID uint64) error
}

type projectServiceImpl struct {
	projectRepo     repository.ProjectRepo
	interactionRepo repository.InteractionRepo
	dictRepo        repository.DictRepo
	statSvc         StatService
}

func NewProjectService(projectRepo repository.ProjectRepo, interactionRepo repository.InteractionRepo, dictRepo repository.DictRepo, statSvc StatService) ProjectService {
	return &projectServiceImpl{
		projectRepo:     projectRepo,
		interactionRepo: interactionRepo,
		dictRepo:        dictRepo,
		statSvc:         statSvc,
	}
}

func projectMetric(origin int8) model.StatMetric {
	if origin == model.ProjectOriginGithub {
		return model.MetricGithubProject
	}
	return model.MetricLocalProject
}

func (s *projectServiceImpl) Create(ctx context.Context, userID uint64, req *dto.ProjectCreateReq) (uint64, error) {
	fieldIDs := dedupeIDs(req.FieldIDs)
	if err := validateDimensions(ctx, s.dictRepo, fieldIDs, req.SemesterID, req.CategoryID); err != nil {
		return 0, err
	}

	project := &model.Project{
		UserID:     userID,
		Title:      req.Title,
		Brief:      req.Brief,
		Origin:     req.Origin,
		RepoURL:    req.RepoURL,
		SemesterID: req.SemesterID,
		CategoryID: req.CategoryID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	// 聚合调整与领域写入同事务提交，回滚时不留下半截计数
	err := s.projectRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.projectRepo.Create(ctx, tx, project, fieldIDs); err != nil {
			return err
		}
		return s.statSvc.Adjust(ctx, tx, userID, fieldIDs, req.SemesterID, req.CategoryID, projectMetric(req.Origin), 1, true)
	})
	if err != nil {
		return 0, err
	}
	return project.ID, nil
}

func (s *projectServiceImpl) Update(ctx context.Context, userID, projectID uint64, req *dto.ProjectUpdateReq) error {
	old, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if old == nil {
		return ErrProjectNotFound
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

	return s.projectRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.statSvc.Adjust(ctx, tx, old.UserID, oldFieldIDs, old.SemesterID, old.CategoryID, projectMetric(old.Origin), 1, false); err != nil {
			return err
		}

		updated := &model.Project{
			ID:         projectID,
			Title:      req.Title,
			Brief:      req.Brief,
			Origin:     req.Origin,
			RepoURL:    req.RepoURL,
			SemesterID: req.SemesterID,
			CategoryID: req.CategoryID,
		}
		if err := s.projectRepo.Update(ctx, tx, updated, newFieldIDs); err != nil {
			return err
		}

		return s.statSvc.Adjust(ctx, tx, old.UserID, newFieldIDs, req.SemesterID, req.CategoryID, projectMetric(req.Origin), 1, true)
	})
}

func (s *projectServiceImpl) Delete(ctx context.Context, userID, projectID uint64) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}
	if project.UserID != userID {
		return UnauthorizedError
	}

	fieldIDs := make([]uint64, 0, len(project.Fields))
	for _, f := range project.Fields {
		fieldIDs = append(fieldIDs, f.ID)
	}

	return s.projectRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.projectRepo.SoftDelete(ctx, tx, projectID); err != nil {
			return err
		}
		if err := s.interactionRepo.DeleteByTarget(ctx, tx, projectID, projectCascadeKinds...); err != nil {
			return err
		}
		return s.statSvc.Adjust(ctx, tx, project.UserID, fieldIDs, project.SemesterID, project.CategoryID, projectMetric(project.Origin), 1, false)
	})
}

func (s *projectServiceImpl) Get(ctx context.Context, projectID uint64) (*dto.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	item := &dto.ProjectDTO{}
	_ = copier.Copy(item, project)
	item.FieldNames = make([]string, 0, len(project.Fields))
	for _, f := range project.Fields {
		item.FieldNames = append(item.FieldNames, f.Name)
	}
	item.CreatedAt = project.CreatedAt.Format("2006-01-02 15:04:05")
	return item, nil
}

func (s *projectServiceImpl) CreateComment(ctx context.Context, userID uint64, req *dto.ProjectCommentCreateReq) error {
	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil || project == nil {
		return ErrProjectNotFound
	}

	var rootID, parentID uint64
	if req.ParentID > 0 {
		parent, err := s.projectRepo.GetCommentByID(ctx, req.ParentID)
		if err != nil || parent == nil || parent.ProjectID != req.ProjectID {
			return ErrCommentNotFound
		}
		parentID = parent.ID
		if parent.RootID == 0 {
			rootID = parent.ID
		} else {
			rootID = parent.RootID
		}
	}

	return s.projectRepo.CreateComment(ctx, &model.ProjectComment{
		ProjectID: req.ProjectID,
		UserID:    userID,
		Content:   req.Content,
		RootID:    rootID,
		ParentID:  parentID,
		CreatedAt: time.Now(),
	})
}

// DeleteComment 连同楼中楼子树一起删除，并级联清掉子树上全部点赞台账
func (s *projectServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.projectRepo.GetCommentByID(ctx, commentID)
	if err != nil || comment == nil {
		return ErrCommentNotFound
	}
	if comment.UserID != userID {
		return UnauthorizedError
	}

	return s.projectRepo.Transaction(ctx, func(tx *gorm.DB) error {
		threadIDs, err := s.projectRepo.ListCommentThreadIDs(ctx, tx, commentID)
		if err != nil {
			return err
		}
		if err = s.projectRepo.DeleteComment(ctx, tx, commentID); err != nil {
			return err
		}
		for _, id := range threadIDs {
			if err = s.interactionRepo.DeleteByTarget(ctx, tx, id, model.KindProjectCommentLike, model.KindProjectReplyLike); err != nil {
				return err
			}
		}
		return nil
	})
}
