package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aiionteam/app.aiion.site/internal/models"

	"gorm.io/gorm"
)

func (s *Store) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

// GetUserByEmailAndProvider is the plain, non-transactional lookup used on
// the fast path of login.
func (s *Store) GetUserByEmailAndProvider(
	ctx context.Context,
	email, provider string,
) (*models.User, error) {
	return findUserByEmailAndProvider(s.db.WithContext(ctx), email, provider)
}

// GetUserByEmailAndProviderInNewTx runs the lookup in its own transaction.
// It never joins a caller's transaction, so it is safe to use after a
// failed insert has poisoned one.
func (s *Store) GetUserByEmailAndProviderInNewTx(
	ctx context.Context,
	email, provider string,
) (*models.User, error) {
	var user *models.User
	err := s.db.WithContext(ctx).
		Session(&gorm.Session{NewDB: true}).
		Transaction(func(tx *gorm.DB) error {
			found, err := findUserByEmailAndProvider(tx, email, provider)
			if err != nil {
				return err
			}
			user = found
			return nil
		})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func findUserByEmailAndProvider(db *gorm.DB, email, provider string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ? AND provider = ?", email, provider).First(&user).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

// CreateUser inserts user inside a transaction scoped to this call. A
// collision on (email, provider) returns ErrDuplicateUser.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateUser, err)
	}
	return err
}

// CreateUsers inserts all users atomically.
func (s *Store) CreateUsers(ctx context.Context, users []*models.User) error {
	if len(users) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range users {
			if err := tx.Create(u).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateUser, err)
	}
	return err
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Save(user).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateUser, err)
	}
	return err
}

func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ListUsers returns users ordered by id. Unpaged params return every row.
func (s *Store) ListUsers(
	ctx context.Context,
	params PaginationParams,
) ([]models.User, PaginationResult, error) {
	query := s.db.WithContext(ctx).Model(&models.User{})
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR nickname LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	var users []models.User
	q := query.Order("id ASC")
	if params.Paged() {
		q = q.Offset(params.Offset()).Limit(params.PageSize)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	return users, CalculatePagination(total, params.Page, params.PageSize), nil
}

func (s *Store) CountUsers() (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// IsNotFound reports whether err is a store miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}
