package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/safenest/trustpipe/pkg/domain/trust"
)

type TrustProfileRepository struct {
	db *gorm.DB
}

func NewTrustProfileRepository(db *gorm.DB) trust.Repository {
	return &TrustProfileRepository{
		db: db,
	}
}

func (r *TrustProfileRepository) Get(ctx context.Context, userID string) (*trust.TrustProfile, error) {
	var profile trust.TrustProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *TrustProfileRepository) GetOrCreate(ctx context.Context, userID string) (*trust.TrustProfile, error) {
	profile := trust.TrustProfile{UserID: userID}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetTx loads the profile with a row lock so concurrent strike transactions
// for the same user serialize instead of both reading a stale count.
func (r *TrustProfileRepository) GetTx(tx *gorm.DB, userID string) (*trust.TrustProfile, error) {
	profile := trust.TrustProfile{UserID: userID}
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		FirstOrCreate(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *TrustProfileRepository) Update(ctx context.Context, profile *trust.TrustProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *TrustProfileRepository) UpdateTx(tx *gorm.DB, profile *trust.TrustProfile) error {
	return tx.Save(profile).Error
}

func (r *TrustProfileRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}
