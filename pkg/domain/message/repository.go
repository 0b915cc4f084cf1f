package message

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter

type Repository interface {
	Save(ctx context.Context, m *Message) error
	Get(ctx context.Context, id uuid.UUID) (*Message, error)
	// MarkBlocked retroactively flags an already-persisted message.
	MarkBlocked(ctx context.Context, id uuid.UUID, reason string) error
	// StampChecked records that async verification passed.
	StampChecked(ctx context.Context, id uuid.UUID) error
}
