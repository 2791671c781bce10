package dto

type PatentCreateReq struct {
	Title      string `json:"title" binding:"required,max=255"`
	PatentNo   string `json:"patent_no" binding:"required,max=64"`
	SemesterID uint64 `json:"semester_id" binding:"required"`
	CategoryID uint64 `json:"category_id" binding:"required"`
	FieldID    uint64 `json:"field_id" binding:"required"`
}

type PatentDTO struct {
	ID         uint64 `json:"id"`
	UserID     uint64 `json:"userId"`
	Title      string `json:"title"`
	PatentNo   string `json:"patentNo"`
	SemesterID uint64 `json:"semesterId"`
	CategoryID uint64 `json:"categoryId"`
	FieldID    uint64 `json:"fieldId"`
	CreatedAt  string `json:"createdAt"`
}
