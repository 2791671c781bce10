package repository

import (
	"ScholarHub/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type TeamRepo interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	Create(ctx context.Context, tx *gorm.DB, team *model.Team) error
	SoftDelete(ctx context.Context, tx *gorm.DB, teamID uint64) error
	GetByID(ctx context.Context, teamID uint64) (*model.Team, error)
	ListActive(ctx context.Context, lastID uint64, limit int) ([]*model.Team, error)

	AddMember(ctx context.Context, tx *gorm.DB, member *model.TeamMember) error
	RemoveMember(ctx context.Context, tx *gorm.DB, teamID, userID uint64) (int64, error)

	// DeleteMembers 清空一个团队的全部成员行，团队解散时使用
	DeleteMembers(ctx context.Context, tx *gorm.DB, teamID uint64) error
	ListMemberIDs(ctx context.Context, teamID uint64) ([]uint64, error)
	CountMembers(ctx context.Context, teamID uint64) (int64, error)
}

type teamRepoImpl struct {
	db *gorm.DB
}

func NewTeamRepo(db *gorm.DB) TeamRepo {
	return &teamRepoImpl{db: db}
}

func (s *teamRepoImpl) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *teamRepoImpl) Create(ctx context.Context, tx *gorm.DB, team *model.Team) error {
	return tx.WithContext(ctx).Create(team).Error
}

func (s *teamRepoImpl) SoftDelete(ctx context.Context, tx *gorm.DB, teamID uint64) error {
	return tx.WithContext(ctx).Model(&model.Team{}).
		Where("id = ? AND is_deleted = ?", teamID, false).
		Update("is_deleted", true).Error
}

func (s *teamRepoImpl) GetByID(ctx context.Context, teamID uint64) (*model.Team, error) {
	var team model.Team
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", teamID, false).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (s *teamRepoImpl) ListActive(ctx context.Context, lastID uint64, limit int) ([]*model.Team, error) {
	teams := make([]*model.Team, 0)
	err := s.db.WithContext(ctx).
		Where("id > ? AND is_deleted = ?", lastID, false).
		Order("id ASC").
		Limit(limit).
		Find(&teams).Error
	return teams, err
}

func (s *teamRepoImpl) AddMember(ctx context.Context, tx *gorm.DB, member *model.TeamMember) error {
	return tx.WithContext(ctx).Create(member).Error
}

func (s *teamRepoImpl) RemoveMember(ctx context.Context, tx *gorm.DB, teamID, userID uint64) (int64, error) {
	res := tx.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&model.TeamMember{})
	return res.RowsAffected, res.Error
}

func (s *teamRepoImpl) DeleteMembers(ctx context.Context, tx *gorm.DB, teamID uint64) error {
	return tx.WithContext(ctx).
		Where("team_id = ?", teamID).
		Delete(&model.TeamMember{}).Error
}

func (s *teamRepoImpl) ListMemberIDs(ctx context.Context, teamID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.TeamMember{}).
		Where("team_id = ?", teamID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (s *teamRepoImpl) CountMembers(ctx context.Context, teamID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.TeamMember{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}
