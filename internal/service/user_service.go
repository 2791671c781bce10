package service

import (
	"ScholarHub/internal/api/dto"
	"ScholarHub/internal/model"
	"ScholarHub/internal/pkg/consts"
	"ScholarHub/internal/pkg/redis"
	"ScholarHub/internal/pkg/security"
	"ScholarHub/internal/repository"
	"context"
	"time"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterReq) (uint64, error)
	Login(ctx context.Context, req *dto.LoginReq) (*dto.LoginDTO, error)

	// Logout 将 Token 签名拉黑至其自然过期
	Logout(ctx context.Context, tokenString string) error
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterReq) (uint64, error) {
	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrUserExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	user := &model.User{
		Username:  req.Username,
		Password:  hashed,
		Nickname:  req.Nickname,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err = s.userRepo.Create(ctx, user); err != nil {
		if isDuplicateError(err) {
			return 0, ErrUserExist
		}
		return 0, err
	}
	return user.ID, nil
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.LoginReq) (*dto.LoginDTO, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsBanned {
		return nil, ErrPasswordIncorrect
	}

	if err = security.CheckPasswordHash(req.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID, []string{consts.RoleUser})
	if err != nil {
		return nil, err
	}

	return &dto.LoginDTO{
		UserID:   user.ID,
		Nickname: user.Nickname,
		Token:    token,
	}, nil
}

func (s *userServiceImpl) Logout(ctx context.Context, tokenString string) error {
	signature, err := security.ExtractSignature(tokenString)
	if err != nil {
		return ErrParamInvalid
	}
	return redis.SetWithExpiration(ctx, signature, "revoked", security.JWTExpirationTime)
}
