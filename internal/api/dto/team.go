package dto

type TeamCreateReq struct {
	Name       string `json:"name" binding:"required,max=128"`
	SemesterID uint64 `json:"semester_id" binding:"required"`
	CategoryID uint64 `json:"category_id" binding:"required"`
	FieldID    uint64 `json:"field_id" binding:"required"`
}

type TeamDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	LeaderID    uint64 `json:"leaderId"`
	SemesterID  uint64 `json:"semesterId"`
	CategoryID  uint64 `json:"categoryId"`
	FieldID     uint64 `json:"fieldId"`
	MemberCount int64  `json:"memberCount"`
	CreatedAt   string `json:"createdAt"`
}
