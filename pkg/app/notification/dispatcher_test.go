package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	appMocks "github.com/safenest/trustpipe/pkg/app/notification/mocks"
	"github.com/safenest/trustpipe/pkg/domain/notification"
	notificationMocks "github.com/safenest/trustpipe/pkg/domain/notification/mocks"
)

func setupDispatcher(repo *notificationMocks.Repository, mailer *appMocks.Mailer) *Dispatcher {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewDispatcher(logger, repo, mailer, time.Minute)
}

func queuedNotification(userID string) *notification.TutorNotification {
	until := time.Now().UTC().Add(24 * time.Hour)
	return notification.New(
		notification.TypeSuspension,
		notification.SuspensionEventKey(userID, until),
		"tutor@example.com",
		userID,
		notification.Payload{Nick: "pepito", StrikeCount: 3, SuspendedUntil: &until},
	)
}

func TestDispatchBatch_DeliversAndMarksSent(t *testing.T) {
	repo := new(notificationMocks.Repository)
	mailer := new(appMocks.Mailer)
	d := setupDispatcher(repo, mailer)

	n := queuedNotification("user-1")
	repo.On("ListDeliverable", mock.Anything, dispatchBatchSize).
		Return([]*notification.TutorNotification{n}, nil)
	mailer.On("Send", mock.Anything, n).Return(nil)
	repo.On("MarkSent", mock.Anything, n.ID).Return(nil)

	d.DispatchBatch(context.Background())

	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestDispatchBatch_FailureIsRecordedNotFatal(t *testing.T) {
	repo := new(notificationMocks.Repository)
	mailer := new(appMocks.Mailer)
	d := setupDispatcher(repo, mailer)

	failing := queuedNotification("user-1")
	ok := queuedNotification("user-2")
	repo.On("ListDeliverable", mock.Anything, dispatchBatchSize).
		Return([]*notification.TutorNotification{failing, ok}, nil)
	mailer.On("Send", mock.Anything, failing).Return(errors.New("smtp relay unavailable"))
	repo.On("MarkFailed", mock.Anything, failing.ID, "smtp relay unavailable").Return(nil)
	mailer.On("Send", mock.Anything, ok).Return(nil)
	repo.On("MarkSent", mock.Anything, ok.ID).Return(nil)

	d.DispatchBatch(context.Background())

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "MarkSent", mock.Anything, failing.ID)
}

func TestDispatchBatch_EmptyQueue(t *testing.T) {
	repo := new(notificationMocks.Repository)
	mailer := new(appMocks.Mailer)
	d := setupDispatcher(repo, mailer)

	repo.On("ListDeliverable", mock.Anything, dispatchBatchSize).
		Return([]*notification.TutorNotification{}, nil)

	d.DispatchBatch(context.Background())

	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatchBatch_ListErrorAbortsTick(t *testing.T) {
	repo := new(notificationMocks.Repository)
	mailer := new(appMocks.Mailer)
	d := setupDispatcher(repo, mailer)

	repo.On("ListDeliverable", mock.Anything, dispatchBatchSize).
		Return(nil, errors.New("connection refused"))

	d.DispatchBatch(context.Background())

	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	repo := new(notificationMocks.Repository)
	mailer := new(appMocks.Mailer)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	d := NewDispatcher(logger, repo, mailer, 10*time.Millisecond)

	repo.On("ListDeliverable", mock.Anything, dispatchBatchSize).
		Return([]*notification.TutorNotification{}, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after cancellation")
	}
}
