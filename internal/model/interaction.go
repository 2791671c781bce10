package model

import (
	"time"
)

// InteractionKind 互动类别，同一 (user, target, kind) 至多存在一条记录
type InteractionKind int8

const (
	KindProjectLike InteractionKind = iota + 1
	KindProjectCommentLike
	KindProjectReplyLike
	KindQuestionLike
	KindQuestionCommentLike
	KindQuestionReplyLike
	KindFoundingRecommend
	KindPatentRecommend
	KindRegisterRecommend
)

func (k InteractionKind) String() string {
	switch k {
	case KindProjectLike:
		return "project_like"
	case KindProjectCommentLike:
		return "project_comment_like"
	case KindProjectReplyLike:
		return "project_reply_like"
	case KindQuestionLike:
		return "question_like"
	case KindQuestionCommentLike:
		return "question_comment_like"
	case KindQuestionReplyLike:
		return "question_reply_like"
	case KindFoundingRecommend:
		return "founding_recommend"
	case KindPatentRecommend:
		return "patent_recommend"
	case KindRegisterRecommend:
		return "register_recommend"
	}
	return "unknown"
}

type Interaction struct {
	UserID    uint64          `gorm:"primaryKey" json:"userId"`
	TargetID  uint64          `gorm:"primaryKey;index:idx_target" json:"targetId"`
	Kind      InteractionKind `gorm:"primaryKey;index:idx_target" json:"kind"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (Interaction) TableName() string {
	return "interactions"
}
