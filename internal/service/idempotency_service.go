package service

import (
	"ScholarHub/internal/pkg/consts"
	"ScholarHub/internal/pkg/redis"
	"context"
	"strings"
	"time"
)

// idempotencyTokenTTL 过期后同一指纹允许再次提交，支持动作窗口过后的正常重试
const idempotencyTokenTTL = 10 * time.Second

type IdempotencyService interface {
	// Check 按参数顺序拼接命令指纹，TTL 窗口内重复出现返回 ErrDuplicateRequest。
	// 调用方必须把所有决定"两次调用是同一条命令"的字段按固定顺序传入：
	// 少传会误杀不同命令，多传无关字段会漏判重复
	Check(ctx context.Context, parts ...string) error
}

type idempotencyServiceImpl struct {
	ttl   time.Duration
	setNX func(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

func NewIdempotencyService() IdempotencyService {
	return &idempotencyServiceImpl{
		ttl: idempotencyTokenTTL,
		setNX: func(ctx context.Context, key string, ttl time.Duration) (bool, error) {
			return redis.TryLock(ctx, key, "1", ttl, 1)
		},
	}
}

func (s *idempotencyServiceImpl) Check(ctx context.Context, parts ...string) error {
	key := consts.IdempotentKey + strings.Join(parts, ":")
	ok, err := s.setNX(ctx, key, s.ttl)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicateRequest
	}
	return nil
}
