package handler

import (
	"ScholarHub/internal/api/dto"
	"ScholarHub/internal/pkg/response"
	"ScholarHub/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamSvc service.TeamService
	idemSvc service.IdempotencyService
}

func NewTeamHandler(teamSvc service.TeamService, idemSvc service.IdempotencyService) *TeamHandler {
	return &TeamHandler{
		teamSvc: teamSvc,
		idemSvc: idemSvc,
	}
}

// Create 创建团队
func (s *TeamHandler) Create(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.TeamCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := s.idemSvc.Check(ctx, "team:create", strconv.FormatUint(userID, 10), req.Name); err != nil {
		response.Error(c, err)
		return
	}

	teamID, err := s.teamSvc.Create(ctx, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"team_id": teamID})
}

// Delete 解散团队
func (s *TeamHandler) Delete(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 64)
	if err != nil || teamID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.teamSvc.Delete(c.Request.Context(), userID, teamID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Get 团队详情
func (s *TeamHandler) Get(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 64)
	if err != nil || teamID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	item, err := s.teamSvc.Get(c.Request.Context(), teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// Join 加入团队
func (s *TeamHandler) Join(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 64)
	if err != nil || teamID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.teamSvc.Join(c.Request.Context(), userID, teamID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Leave 退出团队
func (s *TeamHandler) Leave(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 64)
	if err != nil || teamID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.teamSvc.Leave(c.Request.Context(), userID, teamID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
