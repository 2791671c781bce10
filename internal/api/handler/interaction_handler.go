package handler

import (
	"ScholarHub/internal/api/dto"
	"ScholarHub/internal/model"
	"ScholarHub/internal/pkg/response"
	"ScholarHub/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// interactionKinds 路由段到互动类别的映射
var interactionKinds = map[string]model.InteractionKind{
	"project-like":          model.KindProjectLike,
	"project-comment-like":  model.KindProjectCommentLike,
	"project-reply-like":    model.KindProjectReplyLike,
	"question-like":         model.KindQuestionLike,
	"question-comment-like": model.KindQuestionCommentLike,
	"question-reply-like":   model.KindQuestionReplyLike,
	"founding-recommend":    model.KindFoundingRecommend,
	"patent-recommend":      model.KindPatentRecommend,
	"register-recommend":    model.KindRegisterRecommend,
}

type InteractionHandler struct {
	interactionSvc service.InteractionService
	idemSvc        service.IdempotencyService
}

func NewInteractionHandler(interactionSvc service.InteractionService, idemSvc service.IdempotencyService) *InteractionHandler {
	return &InteractionHandler{
		interactionSvc: interactionSvc,
		idemSvc:        idemSvc,
	}
}

// Interact 点赞/推荐或取消。同一 (用户, 目标, 类别, 动作) 在幂等窗口内
// 重复提交会被直接拒绝
func (s *InteractionHandler) Interact(c *gin.Context) {
	kind, targetID, ok := s.parseTarget(c)
	if !ok {
		return
	}
	userID := c.GetUint64("user_id")

	var req dto.InteractionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	ctx := c.Request.Context()
	err := s.idemSvc.Check(ctx,
		"interaction",
		kind.String(),
		strconv.FormatUint(userID, 10),
		strconv.FormatUint(targetID, 10),
		strconv.Itoa(int(*req.Action)),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	var msg string
	if *req.Action == 1 {
		msg, err = s.interactionSvc.Add(ctx, userID, targetID, kind)
	} else {
		msg, err = s.interactionSvc.Remove(ctx, userID, targetID, kind)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": msg})
}

// GetState 获取目标的互动计数与当前用户的互动状态
func (s *InteractionHandler) GetState(c *gin.Context) {
	kind, targetID, ok := s.parseTarget(c)
	if !ok {
		return
	}
	userID := c.GetUint64("user_id")

	ctx := c.Request.Context()
	state := &dto.InteractionStateDTO{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		state.Count, _ = s.interactionSvc.GetCount(gCtx, targetID, kind)
		return nil
	})
	g.Go(func() error {
		state.IsInteracted, _ = s.interactionSvc.IsInteracted(gCtx, userID, targetID, kind)
		return nil
	})

	_ = g.Wait()
	response.Success(c, state)
}

func (s *InteractionHandler) parseTarget(c *gin.Context) (model.InteractionKind, uint64, bool) {
	kind, ok := interactionKinds[c.Param("kind")]
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return 0, 0, false
	}
	targetID, err := strconv.ParseUint(c.Param("target_id"), 10, 64)
	if err != nil || targetID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return 0, 0, false
	}
	return kind, targetID, true
}
