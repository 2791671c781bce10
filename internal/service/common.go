package service

import (
	"ScholarHub/internal/repository"
	"context"
)

// validateDimensions 生命周期入口统一校验维度 id，聚合器本身信任入参
func validateDimensions(ctx context.Context, dictRepo repository.DictRepo, fieldIDs []uint64, semesterID, categoryID uint64) error {
	if len(fieldIDs) == 0 || semesterID == 0 || categoryID == 0 {
		return ErrParamInvalid
	}

	ok, err := dictRepo.SemesterExists(ctx, semesterID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDimensionNotFound
	}

	ok, err = dictRepo.CategoryExists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDimensionNotFound
	}

	count, err := dictRepo.CountFields(ctx, fieldIDs)
	if err != nil {
		return err
	}
	if count != int64(len(fieldIDs)) {
		return ErrDimensionNotFound
	}
	return nil
}

func dedupeIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	res := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}
