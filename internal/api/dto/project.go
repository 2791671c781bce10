package dto

type ProjectCreateReq struct {
	Title      string   `json:"title" binding:"required,max=255"`
	Brief      string   `json:"brief" binding:"max=1024"`
	Origin     int8     `json:"origin" binding:"required,oneof=1 2"`
	RepoURL    string   `json:"repo_url" binding:"max=512"`
	SemesterID uint64   `json:"semester_id" binding:"required"`
	CategoryID uint64   `json:"category_id" binding:"required"`
	FieldIDs   []uint64 `json:"field_ids" binding:"required,min=1,dive,required"`
}

type ProjectUpdateReq struct {
	Title      string   `json:"title" binding:"required,max=255"`
	Brief      string   `json:"brief" binding:"max=1024"`
	Origin     int8     `json:"origin" binding:"required,oneof=1 2"`
	RepoURL    string   `json:"repo_url" binding:"max=512"`
	SemesterID uint64   `json:"semester_id" binding:"required"`
	CategoryID uint64   `json:"category_id" binding:"required"`
	FieldIDs   []uint64 `json:"field_ids" binding:"required,min=1,dive,required"`
}

type ProjectDTO struct {
	ID               uint64   `json:"id"`
	UserID           uint64   `json:"userId"`
	Title            string   `json:"title"`
	Brief            string   `json:"brief"`
	Origin           int8     `json:"origin"`
	RepoURL          string   `json:"repoUrl"`
	SemesterID       uint64   `json:"semesterId"`
	CategoryID       uint64   `json:"categoryId"`
	FieldNames       []string `json:"fieldNames"`
	LikeCount        int      `json:"likeCount"`
	FoundingRecCount int      `json:"foundingRecCount"`
	PatentRecCount   int      `json:"patentRecCount"`
	RegisterRecCount int      `json:"registerRecCount"`
	CreatedAt        string   `json:"createdAt"`
}

type ProjectCommentCreateReq struct {
	ProjectID uint64 `json:"project_id" binding:"required"`
	Content   string `json:"content" binding:"required,max=2048"`
	ParentID  uint64 `json:"parent_id"`
}
