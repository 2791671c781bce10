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

// 团队指标按成员资格计数：入队 +1、退队 -1，行为人是成员本人，
// 维度取团队的学期/领域/类别。建队时队长随建队事务入队并计入第一笔。
type TeamService interface {
	Create(ctx context.Context, leaderID uint64, req *dto.TeamCreateReq) (uint64, error)
	Delete(ctx context.Context, userID, teamID uint64) error
	Get(ctx context.Context, teamID uint64) (*dto.TeamDTO, error)

	Join(ctx context.Context, userID, teamID uint64) error
	Leave(ctx context.Context, userID, teamID uint64) error
}

type teamServiceImpl struct {
	teamRepo repository.TeamRepo
	dictRepo repository.DictRepo
	statSvc  StatService
}

func NewTeamService(teamRepo repository.TeamRepo, dictRepo repository.DictRepo, statSvc StatService) TeamService {
	return &teamServiceImpl{
		teamRepo: teamRepo,
		dictRepo: dictRepo,
		statSvc:  statSvc,
	}
}

func (s *teamServiceImpl) Create(ctx context.Context, leaderID uint64, req *dto.TeamCreateReq) (uint64, error) {
	fieldIDs := []uint64{req.FieldID}
	if err := validateDimensions(ctx, s.dictRepo, fieldIDs, req.SemesterID, req.CategoryID); err != nil {
		return 0, err
	}

	team := &model.Team{
		Name:       req.Name,
		LeaderID:   leaderID,
		SemesterID: req.SemesterID,
		CategoryID: req.CategoryID,
		FieldID:    req.FieldID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	err := s.teamRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.teamRepo.Create(ctx, tx, team); err != nil {
			return err
		}
		if err := s.teamRepo.AddMember(ctx, tx, &model.TeamMember{TeamID: team.ID, UserID: leaderID, CreatedAt: time.Now()}); err != nil {
			return err
		}
		return s.statSvc.Adjust(ctx, tx, leaderID, fieldIDs, req.SemesterID, req.CategoryID, model.MetricTeam, 1, true)
	})
	if err != nil {
		return 0, err
	}
	return team.ID, nil
}

func (s *teamServiceImpl) Delete(ctx context.Context, userID, teamID uint64) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrTeamNotFound
	}
	if team.LeaderID != userID {
		return UnauthorizedError
	}

	memberIDs, err := s.teamRepo.ListMemberIDs(ctx, teamID)
	if err != nil {
		return err
	}

	return s.teamRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.teamRepo.SoftDelete(ctx, tx, teamID); err != nil {
			return err
		}
		if err := s.teamRepo.DeleteMembers(ctx, tx, teamID); err != nil {
			return err
		}
		for _, memberID := range memberIDs {
			if err := s.statSvc.Adjust(ctx, tx, memberID, []uint64{team.FieldID}, team.SemesterID, team.CategoryID, model.MetricTeam, 1, false); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *teamServiceImpl) Get(ctx context.Context, teamID uint64) (*dto.TeamDTO, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	item := &dto.TeamDTO{}
	_ = copier.Copy(item, team)
	item.MemberCount, _ = s.teamRepo.CountMembers(ctx, teamID)
	item.CreatedAt = team.CreatedAt.Format("2006-01-02 15:04:05")
	return item, nil
}

func (s *teamServiceImpl) Join(ctx context.Context, userID, teamID uint64) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil || team == nil {
		return ErrTeamNotFound
	}

	err = s.teamRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.teamRepo.AddMember(ctx, tx, &model.TeamMember{TeamID: teamID, UserID: userID, CreatedAt: time.Now()}); err != nil {
			return err
		}
		return s.statSvc.Adjust(ctx, tx, userID, []uint64{team.FieldID}, team.SemesterID, team.CategoryID, model.MetricTeam, 1, true)
	})
	if err != nil {
		if isDuplicateError(err) {
			return ErrTeamMemberExist
		}
		return err
	}
	return nil
}

func (s *teamServiceImpl) Leave(ctx context.Context, userID, teamID uint64) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil || team == nil {
		return ErrTeamNotFound
	}
	if team.LeaderID == userID {
		return ErrParamInvalid
	}

	return s.teamRepo.Transaction(ctx, func(tx *gorm.DB) error {
		affected, err := s.teamRepo.RemoveMember(ctx, tx, teamID, userID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrTeamMemberNotFound
		}
		return s.statSvc.Adjust(ctx, tx, userID, []uint64{team.FieldID}, team.SemesterID, team.CategoryID, model.MetricTeam, 1, false)
	})
}
