package dto

// InteractionReq Action 为 1 表示点赞/推荐，0 表示取消
type InteractionReq struct {
	Action *int8 `json:"action" binding:"required,oneof=0 1"`
}

type InteractionStateDTO struct {
	Count        int64 `json:"count"`
	IsInteracted bool  `json:"isInteracted"`
}
