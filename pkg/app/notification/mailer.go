package notification

import (
	"context"

	"github.com/safenest/trustpipe/pkg/domain/notification"
)

//go:generate mockery --name=Mailer --dir=. --output=./mocks --filename=mailer_mock.go --case=underscore --with-expecter

// Mailer delivers a queued notification to the guardian's channel.
type Mailer interface {
	Send(ctx context.Context, n *notification.TutorNotification) error
}
