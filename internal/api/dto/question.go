package dto

type QuestionCreateReq struct {
	Title      string   `json:"title" binding:"required,max=255"`
	Content    string   `json:"content" binding:"required"`
	SemesterID uint64   `json:"semester_id" binding:"required"`
	CategoryID uint64   `json:"category_id" binding:"required"`
	FieldIDs   []uint64 `json:"field_ids" binding:"required,min=1,dive,required"`
}

type QuestionUpdateReq struct {
	Title      string   `json:"title" binding:"required,max=255"`
	Content    string   `json:"content" binding:"required"`
	SemesterID uint64   `json:"semester_id" binding:"required"`
	CategoryID uint64   `json:"category_id" binding:"required"`
	FieldIDs   []uint64 `json:"field_ids" binding:"required,min=1,dive,required"`
}

type QuestionDTO struct {
	ID         uint64   `json:"id"`
	UserID     uint64   `json:"userId"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	SemesterID uint64   `json:"semesterId"`
	CategoryID uint64   `json:"categoryId"`
	FieldNames []string `json:"fieldNames"`
	LikeCount  int      `json:"likeCount"`
	CreatedAt  string   `json:"createdAt"`
}

type QuestionCommentCreateReq struct {
	QuestionID uint64 `json:"question_id" binding:"required"`
	Content    string `json:"content" binding:"required,max=2048"`
	ParentID   uint64 `json:"parent_id"`
}
