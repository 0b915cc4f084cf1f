package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/safenest/trustpipe/pkg/app/trust"
	trustAppMocks "github.com/safenest/trustpipe/pkg/app/trust/mocks"
	"github.com/safenest/trustpipe/pkg/config"
	"github.com/safenest/trustpipe/pkg/domain/moderation"
	moderationMocks "github.com/safenest/trustpipe/pkg/domain/moderation/mocks"
	"github.com/safenest/trustpipe/pkg/infra/audit"
	"github.com/safenest/trustpipe/pkg/infra/cache"
	"github.com/safenest/trustpipe/pkg/infra/providers"
	providerMocks "github.com/safenest/trustpipe/pkg/infra/providers/mocks"
	"github.com/safenest/trustpipe/pkg/moderation/classifier"
	"github.com/safenest/trustpipe/pkg/moderation/detector"
	"github.com/safenest/trustpipe/pkg/moderation/patternfilter"
)

type evaluatorFixture struct {
	gate      *trustAppMocks.Gate
	ledger    *trustAppMocks.Ledger
	provider  *providerMocks.Client
	events    *moderationMocks.EventRepository
	redisMock redismock.ClientMock
	evaluator Evaluator
}

func setupEvaluator(t *testing.T) *evaluatorFixture {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	cfg := config.ModerationConfig{
		StrikeThreshold:    3,
		StrikeWindow:       24 * time.Hour,
		SuspensionDuration: 24 * time.Hour,
		PatternLookback:    7 * 24 * time.Hour,
		PatternThreshold:   3,
		ContextWindowSize:  5,
		SnippetLimit:       120,
	}

	f := &evaluatorFixture{
		gate:     new(trustAppMocks.Gate),
		ledger:   new(trustAppMocks.Ledger),
		provider: new(providerMocks.Client),
		events:   new(moderationMocks.EventRepository),
	}
	client, redisMock := redismock.NewClientMock()
	f.redisMock = redisMock

	cls := classifier.NewClassifier(logger, "openai", f.provider, config.ClassifierConfig{
		Model:   "gpt-4o-mini",
		Timeout: time.Second,
	})
	f.evaluator = NewEvaluator(
		logger,
		f.gate,
		patternfilter.NewFilter(),
		cls,
		detector.NewDetector(logger, f.events, cfg),
		f.ledger,
		cache.NewCacheWithClient(client),
		audit.NewNoopExporter(),
		cfg,
	)
	return f
}

func TestEvaluate_PatternBlockSkipsClassifier(t *testing.T) {
	f := setupEvaluator(t)

	f.gate.On("IsSuspended", mock.Anything, "user-1").Return(nil, nil)
	f.ledger.On("RecordStrike", mock.Anything, mock.MatchedBy(func(e *moderation.ModerationEvent) bool {
		return !e.Allowed && e.Surface == moderation.SurfacePost
	})).Return(&trust.StrikeResult{Strikes: 1}, nil)

	result, err := f.evaluator.Evaluate(context.Background(), EvaluateInput{
		UserID:  "user-1",
		Surface: moderation.SurfacePost,
		Text:    "te voy a matar",
	})

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, []string{moderation.CategoryViolence}, result.Categories)
	assert.Equal(t, 1, result.Strikes)
	f.provider.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluate_CleanTextAllowed(t *testing.T) {
	f := setupEvaluator(t)

	f.gate.On("IsSuspended", mock.Anything, "user-1").Return(nil, nil)
	f.provider.On("Classify", mock.Anything, mock.Anything, mock.Anything).Return(&providers.Response{
		Response: `{"allowed": true, "categories": [], "severity": "none", "reason": ""}`,
	}, nil)
	f.ledger.On("RecordAllowed", mock.Anything, mock.MatchedBy(func(e *moderation.ModerationEvent) bool {
		return e.Allowed && !e.Fallback
	})).Return(nil)

	result, err := f.evaluator.Evaluate(context.Background(), EvaluateInput{
		UserID:  "user-1",
		Surface: moderation.SurfacePost,
		Text:    "me ha encantado el partido de hoy",
	})

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	f.ledger.AssertExpectations(t)
}

func TestEvaluate_SuspendedShortCircuit(t *testing.T) {
	f := setupEvaluator(t)

	until := time.Now().UTC().Add(3 * time.Hour)
	f.gate.On("IsSuspended", mock.Anything, "user-1").Return(&until, nil)

	result, err := f.evaluator.Evaluate(context.Background(), EvaluateInput{
		UserID:  "user-1",
		Surface: moderation.SurfaceChat,
		Text:    "hola",
	})

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.True(t, result.Suspended)
	assert.Equal(t, &until, result.SuspendedUntil)
	// No event is written for a gated attempt.
	f.ledger.AssertNotCalled(t, "RecordAllowed", mock.Anything, mock.Anything)
	f.ledger.AssertNotCalled(t, "RecordStrike", mock.Anything, mock.Anything)
	f.provider.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluate_ClassifierOutageFailsOpen(t *testing.T) {
	f := setupEvaluator(t)

	f.gate.On("IsSuspended", mock.Anything, "user-1").Return(nil, nil)
	f.provider.On("Classify", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("upstream timeout"))
	f.ledger.On("RecordAllowed", mock.Anything, mock.MatchedBy(func(e *moderation.ModerationEvent) bool {
		return e.Allowed && e.Fallback
	})).Return(nil)

	result, err := f.evaluator.Evaluate(context.Background(), EvaluateInput{
		UserID:  "user-1",
		Surface: moderation.SurfacePost,
		Text:    "un texto cualquiera",
	})

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	f.ledger.AssertExpectations(t)
}

func TestEvaluate_BehavioralPatternOverridesPassingLayers(t *testing.T) {
	f := setupEvaluator(t)

	f.gate.On("IsSuspended", mock.Anything, "sender-1").Return(nil, nil)
	f.provider.On("Classify", mock.Anything, mock.Anything, mock.Anything).Return(&providers.Response{
		Response: `{"allowed": true, "categories": [], "severity": "none", "reason": ""}`,
	}, nil)
	f.events.On("CountBlockedByCategories", mock.Anything, "sender-1", "target-1", mock.Anything, mock.Anything).
		Return(int64(3), nil)
	f.ledger.On("RecordStrike", mock.Anything, mock.MatchedBy(func(e *moderation.ModerationEvent) bool {
		return !e.Allowed && e.TargetUserID == "target-1"
	})).Return(&trust.StrikeResult{Strikes: 1}, nil)

	result, err := f.evaluator.Evaluate(context.Background(), EvaluateInput{
		UserID:       "sender-1",
		TargetUserID: "target-1",
		Surface:      moderation.SurfaceChat,
		Text:         "ya veras esta tarde",
		Context:      []string{"previous message"},
	})

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, []string{moderation.CategoryBullying}, result.Categories)
	assert.Equal(t, moderation.SeverityHigh, result.Severity)
}

func TestEvaluate_StrikeThresholdSuspensionPropagates(t *testing.T) {
	f := setupEvaluator(t)

	until := time.Now().UTC().Add(24 * time.Hour)
	f.gate.On("IsSuspended", mock.Anything, "user-1").Return(nil, nil)
	f.ledger.On("RecordStrike", mock.Anything, mock.Anything).
		Return(&trust.StrikeResult{Strikes: 3, Suspended: true, SuspendedUntil: &until}, nil)

	result, err := f.evaluator.Evaluate(context.Background(), EvaluateInput{
		UserID:  "user-1",
		Surface: moderation.SurfaceComment,
		Text:    "hijo de puta",
	})

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.True(t, result.Suspended)
	assert.Equal(t, 3, result.Strikes)
	assert.Equal(t, &until, result.SuspendedUntil)
}

func TestEvaluate_ChatLoadsConversationWindow(t *testing.T) {
	f := setupEvaluator(t)

	f.gate.On("IsSuspended", mock.Anything, "user-1").Return(nil, nil)
	f.redisMock.ExpectLRange("conversation:conv-9:window", 0, 4).
		SetVal([]string{"second", "first"})
	f.provider.On("Classify", mock.Anything, mock.Anything, mock.MatchedBy(func(input providers.Input) bool {
		// window comes back oldest first
		return len(input.Context) == 2 && input.Context[0] == "first"
	})).Return(&providers.Response{
		Response: `{"allowed": true, "categories": [], "severity": "none", "reason": ""}`,
	}, nil)
	f.ledger.On("RecordAllowed", mock.Anything, mock.Anything).Return(nil)

	_, err := f.evaluator.Evaluate(context.Background(), EvaluateInput{
		UserID:         "user-1",
		Surface:        moderation.SurfaceChat,
		Text:           "vale, nos vemos en clase",
		ConversationID: "conv-9",
	})

	require.NoError(t, err)
	f.provider.AssertExpectations(t)
	assert.NoError(t, f.redisMock.ExpectationsWereMet())
}

func TestEvaluate_GateErrorFailsEvaluation(t *testing.T) {
	f := setupEvaluator(t)

	f.gate.On("IsSuspended", mock.Anything, "user-1").Return(nil, errors.New("profile store down"))

	result, err := f.evaluator.Evaluate(context.Background(), EvaluateInput{
		UserID:  "user-1",
		Surface: moderation.SurfacePost,
		Text:    "hola",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
}
