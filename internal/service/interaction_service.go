package service

import (
	"ScholarHub/internal/model"
	"ScholarHub/internal/pkg/consts"
	"ScholarHub/internal/pkg/redis"
	"ScholarHub/internal/repository"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const countCacheExpiration = 7 * 24 * time.Hour

type InteractionService interface {
	// Add 记录一次点赞/推荐并加一目标冗余计数。整个检查-写入-计数流程
	// 持有目标行锁执行，同一目标上的并发互动被串行化
	Add(ctx context.Context, userID, targetID uint64, kind model.InteractionKind) (string, error)
	Remove(ctx context.Context, userID, targetID uint64, kind model.InteractionKind) (string, error)
	IsInteracted(ctx context.Context, userID, targetID uint64, kind model.InteractionKind) (bool, error)
	GetCount(ctx context.Context, targetID uint64, kind model.InteractionKind) (int64, error)
}

type interactionServiceImpl struct {
	repo repository.InteractionRepo
}

func NewInteractionService(repo repository.InteractionRepo) InteractionService {
	return &interactionServiceImpl{repo: repo}
}

func (s *interactionServiceImpl) Add(ctx context.Context, userID, targetID uint64, kind model.InteractionKind) (string, error) {
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		target, err := s.repo.LockTarget(ctx, tx, kind, targetID)
		if err != nil {
			return translateLockError(err)
		}
		if target.OwnerID == userID {
			return ErrSelfInteraction
		}

		exists, err := s.repo.Exists(ctx, tx, userID, targetID, kind)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyInteracted
		}

		err = s.repo.Create(ctx, tx, &model.Interaction{
			UserID:    userID,
			TargetID:  targetID,
			Kind:      kind,
			CreatedAt: time.Now(),
		})
		if err != nil {
			// 弱隔离级别下行锁没有完全关死的竞态窗口，由唯一键兜底，
			// 这里把底层冲突翻译回业务错误
			if isDuplicateError(err) {
				return ErrAlreadyInteracted
			}
			return err
		}

		return s.repo.AddCounter(ctx, tx, kind, targetID, 1)
	})
	if err != nil {
		return "", err
	}
	return actionLabel(kind) + "成功", nil
}

func (s *interactionServiceImpl) Remove(ctx context.Context, userID, targetID uint64, kind model.InteractionKind) (string, error) {
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		target, err := s.repo.LockTarget(ctx, tx, kind, targetID)
		if err != nil {
			return translateLockError(err)
		}
		if target.OwnerID == userID {
			return ErrSelfInteraction
		}

		affected, err := s.repo.Delete(ctx, tx, userID, targetID, kind)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotInteracted
		}

		return s.repo.AddCounter(ctx, tx, kind, targetID, -1)
	})
	if err != nil {
		return "", err
	}
	return "取消" + actionLabel(kind) + "成功", nil
}

func (s *interactionServiceImpl) IsInteracted(ctx context.Context, userID, targetID uint64, kind model.InteractionKind) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.repo.CheckExists(ctx, userID, targetID, kind)
}

func (s *interactionServiceImpl) GetCount(ctx context.Context, targetID uint64, kind model.InteractionKind) (int64, error) {
	key := consts.InteractionCountKey + kind.String() + ":" + strconv.FormatUint(targetID, 10)
	count, ok, err := redis.GetInt64(ctx, key)
	if err == nil && ok {
		return count, nil
	}
	realCount, err := s.repo.CountByTarget(ctx, targetID, kind)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, countCacheExpiration)
	return realCount, nil
}

func actionLabel(kind model.InteractionKind) string {
	switch kind {
	case model.KindFoundingRecommend, model.KindPatentRecommend, model.KindRegisterRecommend:
		return "推荐"
	}
	return "点赞"
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}

// translateLockError 把 NOWAIT 拿不到锁和锁等待超时翻译成可重试的业务错误
func translateLockError(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 3572, 1205:
			return ErrTryAgainLater
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTargetNotFound
	}
	return err
}
