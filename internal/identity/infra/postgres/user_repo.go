package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/storelane/shopcore/internal/identity/app"
	"github.com/storelane/shopcore/internal/identity/domain"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if err == nil {
		return nil
	}
	if mapped := mapUniqueViolation(err); mapped != nil {
		return mapped
	}
	return err
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, app.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *UserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// mapUniqueViolation picks the taken-field error from the violated
// constraint's name; postgres puts it in the message (idx_users_email
// vs idx_users_username). A duplicate email can reach the constraint
// when two registrations race past the EmailTaken pre-check. Returns
// nil for anything that is not a unique violation.
func mapUniqueViolation(err error) error {
	if !isUniqueViolation(err) {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "email") {
		return app.ErrEmailTaken
	}
	return app.ErrUsernameTaken
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
