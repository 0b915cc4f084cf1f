package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/safenest/trustpipe/pkg/domain/notification"
	notificationMocks "github.com/safenest/trustpipe/pkg/domain/notification/mocks"
)

func TestQueue_List_ClampsLimit(t *testing.T) {
	repo := new(notificationMocks.Repository)
	q := NewQueue(repo)

	repo.On("List", mock.Anything, "user-1", notification.StatusQueued, 50, 0).
		Return([]*notification.TutorNotification{}, nil).Times(3)

	for _, limit := range []int{0, -5, 500} {
		_, err := q.List(context.Background(), "user-1", notification.StatusQueued, limit, 0)
		require.NoError(t, err)
	}
	repo.AssertExpectations(t)
}

func TestQueue_List_PassesValidLimit(t *testing.T) {
	repo := new(notificationMocks.Repository)
	q := NewQueue(repo)

	repo.On("List", mock.Anything, "", notification.Status(""), 25, 10).
		Return([]*notification.TutorNotification{}, nil)

	_, err := q.List(context.Background(), "", "", 25, 10)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestQueue_Dismiss(t *testing.T) {
	repo := new(notificationMocks.Repository)
	q := NewQueue(repo)

	id := uuid.New()
	repo.On("Get", mock.Anything, id).Return(&notification.TutorNotification{ID: id}, nil)
	repo.On("Dismiss", mock.Anything, id).Return(nil)

	require.NoError(t, q.Dismiss(context.Background(), id))
	repo.AssertExpectations(t)
}

func TestQueue_Dismiss_UnknownNotification(t *testing.T) {
	repo := new(notificationMocks.Repository)
	q := NewQueue(repo)

	id := uuid.New()
	repo.On("Get", mock.Anything, id).Return(nil, errors.New("record not found"))

	err := q.Dismiss(context.Background(), id)

	assert.ErrorContains(t, err, "notification not found")
	repo.AssertNotCalled(t, "Dismiss", mock.Anything, mock.Anything)
}
