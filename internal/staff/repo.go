package staff

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/sobnin/sobnin-backend/pkg/db/models"
)

// Repository exposes staff account lookups.
type Repository interface {
	FindActiveByEmail(ctx context.Context, email string) (*models.StaffUser, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a staff repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindActiveByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	var user models.StaffUser
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(email)), true).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
