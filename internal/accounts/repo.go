package accounts

import (
	"context"
	"time"

	"github.com/teltechdev/teltech-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists admin accounts.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.AdminAccount, error) {
	var account models.AdminAccount
	if err := r.db.WithContext(ctx).First(&account, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *Repository) Create(ctx context.Context, account *models.AdminAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *Repository) TouchLastLogin(ctx context.Context, email string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.AdminAccount{}).
		Where("email = ?", email).
		UpdateColumn("last_login_at", at).Error
}
