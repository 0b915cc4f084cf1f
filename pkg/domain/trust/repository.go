package trust

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter

type Repository interface {
	Get(ctx context.Context, userID string) (*TrustProfile, error)
	GetOrCreate(ctx context.Context, userID string) (*TrustProfile, error)
	GetTx(tx *gorm.DB, userID string) (*TrustProfile, error)
	Update(ctx context.Context, profile *TrustProfile) error
	UpdateTx(tx *gorm.DB, profile *TrustProfile) error
	// Transaction runs fn inside a single database transaction; the strike
	// ledger uses it to make "record event, recount, flip state" atomic.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
