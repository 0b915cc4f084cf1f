package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/safenest/trustpipe/pkg/app/pipeline"
	"github.com/safenest/trustpipe/pkg/app/trust"
	"github.com/safenest/trustpipe/pkg/config"
	"github.com/safenest/trustpipe/pkg/domain/message"
	"github.com/safenest/trustpipe/pkg/domain/moderation"
	"github.com/safenest/trustpipe/pkg/infra/cache"
	"github.com/safenest/trustpipe/pkg/infra/metrics"
)

// verifyTimeout bounds the detached verification so a hung classifier call
// cannot leak goroutines.
const verifyTimeout = 30 * time.Second

// SuspendedError is returned when the sender is gated before the write.
type SuspendedError struct {
	Until time.Time
}

func (e *SuspendedError) Error() string {
	return trust.RemainingText(e.Until)
}

// SendInput is one chat send request.
type SendInput struct {
	ConversationID string
	SenderID       string
	RecipientID    string
	Text           string
}

//go:generate mockery --name=Coordinator --dir=. --output=./mocks --filename=coordinator_mock.go --case=underscore --with-expecter

type Coordinator interface {
	SendThenVerify(ctx context.Context, input SendInput) (*message.Message, error)
	Drain(ctx context.Context) error
}

// coordinator decouples the chat write from its moderation: the message is
// persisted and acknowledged first, then verified in a supervised background
// task that may retroactively mark it blocked. A client reading between the
// two steps sees the message as allowed; that window is the accepted
// trade-off for instantaneous delivery.
type coordinator struct {
	messages  message.Repository
	evaluator pipeline.Evaluator
	gate      trust.Gate
	cache     *cache.Cache
	cfg       config.ModerationConfig
	logger    *logrus.Logger
	inflight  sync.WaitGroup
}

func NewCoordinator(
	logger *logrus.Logger,
	messages message.Repository,
	evaluator pipeline.Evaluator,
	gate trust.Gate,
	c *cache.Cache,
	cfg config.ModerationConfig,
) Coordinator {
	return &coordinator{
		messages:  messages,
		evaluator: evaluator,
		gate:      gate,
		cache:     c,
		cfg:       cfg,
		logger:    logger,
	}
}

// SendThenVerify persists the message with status sent, kicks off detached
// verification and returns immediately. Only the suspension gate and the
// message write itself can fail the send.
func (c *coordinator) SendThenVerify(ctx context.Context, input SendInput) (*message.Message, error) {
	until, err := c.gate.IsSuspended(ctx, input.SenderID)
	if err != nil {
		return nil, err
	}
	if until != nil {
		return nil, &SuspendedError{Until: *until}
	}

	msg := message.New(input.ConversationID, input.SenderID, input.RecipientID, input.Text)
	if err := c.messages.Save(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to persist message: %w", err)
	}

	// Snapshot the window before this message joins it so verification sees
	// only prior context.
	window, err := c.cache.GetContextWindow(ctx, input.ConversationID, c.cfg.ContextWindowSize)
	if err != nil {
		c.logger.WithError(err).WithField("conversation_id", input.ConversationID).
			Warn("failed to snapshot conversation context")
		window = nil
	}
	if err := c.cache.PushContextMessage(ctx, input.ConversationID, input.Text, c.cfg.ContextWindowSize); err != nil {
		c.logger.WithError(err).WithField("conversation_id", input.ConversationID).
			Warn("failed to append message to conversation context")
	}

	c.inflight.Add(1)
	go c.verify(msg, window)

	return msg, nil
}

// verify runs detached from the triggering request with its own error
// boundary: every failure is swallowed after logging and the message stays
// sent. fail-open, same policy as the classifier layer.
func (c *coordinator) verify(msg *message.Message, window []string) {
	defer c.inflight.Done()
	defer func() {
		if r := recover(); r != nil {
			metrics.AsyncVerifyFailuresTotal.Inc()
			c.logger.WithField("message_id", msg.ID).Errorf("panic in async verification: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	result, err := c.evaluator.Evaluate(ctx, pipeline.EvaluateInput{
		UserID:         msg.SenderID,
		TargetUserID:   msg.RecipientID,
		Surface:        moderation.SurfaceChat,
		Text:           msg.Text,
		ConversationID: msg.ConversationID,
		Context:        window,
	})
	if err != nil {
		metrics.AsyncVerifyFailuresTotal.Inc()
		c.logger.WithError(err).WithField("message_id", msg.ID).
			Error("async verification failed, message remains sent")
		return
	}

	if result.Allowed {
		if err := c.messages.StampChecked(ctx, msg.ID); err != nil {
			metrics.AsyncVerifyFailuresTotal.Inc()
			c.logger.WithError(err).WithField("message_id", msg.ID).Error("failed to stamp verified message")
		}
		return
	}

	if err := c.messages.MarkBlocked(ctx, msg.ID, result.Reason); err != nil {
		metrics.AsyncVerifyFailuresTotal.Inc()
		c.logger.WithError(err).WithField("message_id", msg.ID).Error("failed to mark message blocked")
		return
	}
	c.logger.WithFields(logrus.Fields{
		"message_id": msg.ID,
		"categories": result.Categories,
		"severity":   result.Severity,
	}).Info("message retroactively blocked")
}

// Drain waits for in-flight verifications during shutdown.
func (c *coordinator) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
