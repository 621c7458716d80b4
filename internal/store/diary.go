package store

import (
	"context"

	"github.com/Aiionteam/app.aiion.site/internal/models"
)

func (s *Store) GetDiaryByID(ctx context.Context, id uint) (*models.Diary, error) {
	var diary models.Diary
	if err := s.db.WithContext(ctx).First(&diary, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &diary, nil
}

func (s *Store) ListDiaries(
	ctx context.Context,
	params PaginationParams,
) ([]models.Diary, PaginationResult, error) {
	query := s.db.WithContext(ctx).Model(&models.Diary{})
	if params.Search != "" {
		query = query.Where("title LIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	var diaries []models.Diary
	q := query.Order("diary_date DESC, id DESC")
	if params.Paged() {
		q = q.Offset(params.Offset()).Limit(params.PageSize)
	}
	if err := q.Find(&diaries).Error; err != nil {
		return nil, PaginationResult{}, err
	}
	return diaries, CalculatePagination(total, params.Page, params.PageSize), nil
}

// ListDiariesByUserID returns a user's entries, newest date first.
func (s *Store) ListDiariesByUserID(ctx context.Context, userID uint) ([]models.Diary, error) {
	var diaries []models.Diary
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("diary_date DESC, id DESC").
		Find(&diaries).Error
	return diaries, err
}

func (s *Store) CreateDiary(ctx context.Context, diary *models.Diary) error {
	return s.db.WithContext(ctx).Create(diary).Error
}

func (s *Store) UpdateDiary(ctx context.Context, diary *models.Diary) error {
	return s.db.WithContext(ctx).Save(diary).Error
}

func (s *Store) DeleteDiary(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Diary{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *Store) CountDiaries() (int64, error) {
	var count int64
	err := s.db.Model(&models.Diary{}).Count(&count).Error
	return count, err
}
