package repository

import (
	"ScholarHub/internal/model"
	"context"

	"gorm.io/gorm"
)

type OrgRepo interface {
	GetUserDepartments(ctx context.Context, userID uint64) ([]*model.Department, error)

	// GetAllUserDepartments 一次性拉全量归属关系，重建任务按 owner 查找时避免逐行回表
	GetAllUserDepartments(ctx context.Context) (map[uint64][]*model.Department, error)

	GetCollegeByID(ctx context.Context, collegeID uint64) (*model.College, error)
	ListColleges(ctx context.Context) ([]*model.College, error)
	ListDepartments(ctx context.Context, collegeID uint64) ([]*model.Department, error)
}

type orgRepoImpl struct {
	db *gorm.DB
}

func NewOrgRepo(db *gorm.DB) OrgRepo {
	return &orgRepoImpl{db: db}
}

func (s *orgRepoImpl) GetUserDepartments(ctx context.Context, userID uint64) ([]*model.Department, error) {
	departments := make([]*model.Department, 0)
	err := s.db.WithContext(ctx).Model(&model.Department{}).
		Joins("JOIN user_departments ON user_departments.department_id = departments.id").
		Where("user_departments.user_id = ?", userID).
		Find(&departments).Error
	return departments, err
}

func (s *orgRepoImpl) GetAllUserDepartments(ctx context.Context) (map[uint64][]*model.Department, error) {
	type membershipRow struct {
		UserID    uint64
		ID        uint64
		Name      string
		CollegeID uint64
	}
	rows := make([]*membershipRow, 0)
	err := s.db.WithContext(ctx).Model(&model.UserDepartment{}).
		Select("user_departments.user_id, departments.id, departments.name, departments.college_id").
		Joins("JOIN departments ON departments.id = user_departments.department_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	res := make(map[uint64][]*model.Department)
	for _, row := range rows {
		res[row.UserID] = append(res[row.UserID], &model.Department{
			ID:        row.ID,
			Name:      row.Name,
			CollegeID: row.CollegeID,
		})
	}
	return res, nil
}

func (s *orgRepoImpl) GetCollegeByID(ctx context.Context, collegeID uint64) (*model.College, error) {
	var college model.College
	err := s.db.WithContext(ctx).Where("id = ?", collegeID).First(&college).Error
	return &college, err
}

func (s *orgRepoImpl) ListColleges(ctx context.Context) ([]*model.College, error) {
	colleges := make([]*model.College, 0)
	err := s.db.WithContext(ctx).Find(&colleges).Error
	return colleges, err
}

func (s *orgRepoImpl) ListDepartments(ctx context.Context, collegeID uint64) ([]*model.Department, error) {
	departments := make([]*model.Department, 0)
	err := s.db.WithContext(ctx).Where("college_id = ?", collegeID).Find(&departments).Error
	return departments, err
}
