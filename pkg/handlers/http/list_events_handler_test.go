package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/safenest/trustpipe/pkg/domain/moderation"
	moderationMocks "github.com/safenest/trustpipe/pkg/domain/moderation/mocks"
)

func setupListEventsApp(repo *moderationMocks.EventRepository) *fiber.App {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	handler := NewListEventsHandler(ListEventsHandlerDeps{Logger: logger, Repo: repo})
	app := fiber.New()
	app.Get("/api/v1/admin/events", handler.Handle)
	return app
}

func TestListEventsHandler_FiltersFromQuery(t *testing.T) {
	repo := new(moderationMocks.EventRepository)
	app := setupListEventsApp(repo)

	event := moderation.NewEvent("user-1", "", moderation.SurfacePost, "hijo de puta",
		moderation.Block(moderation.CategoryProfanity, moderation.SeverityMedium, "matched"), 120)

	repo.On("List", mock.Anything, mock.MatchedBy(func(f moderation.ListFilter) bool {
		return f.UserID == "user-1" &&
			f.Category == moderation.CategoryProfanity &&
			f.Allowed != nil && !*f.Allowed &&
			f.Limit == 10
	})).Return([]*moderation.ModerationEvent{event}, nil)

	req := httptest.NewRequest("GET",
		"/api/v1/admin/events?user_id=user-1&category=profanity&allowed=false&limit=10", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Events []*moderation.ModerationEvent `json:"events"`
		Count  int                           `json:"count"`
	}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, event.ID, out.Events[0].ID)
}

func TestListEventsHandler_TimeRange(t *testing.T) {
	repo := new(moderationMocks.EventRepository)
	app := setupListEventsApp(repo)

	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	repo.On("List", mock.Anything, mock.MatchedBy(func(f moderation.ListFilter) bool {
		return f.From.Equal(from)
	})).Return([]*moderation.ModerationEvent{}, nil)

	req := httptest.NewRequest("GET", "/api/v1/admin/events?from=2025-09-01T00:00:00Z", nil)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	repo.AssertExpectations(t)
}

func TestListEventsHandler_BadTimestamp(t *testing.T) {
	repo := new(moderationMocks.EventRepository)
	app := setupListEventsApp(repo)

	req := httptest.NewRequest("GET", "/api/v1/admin/events?from=yesterday", nil)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListEventsHandler_RepositoryError(t *testing.T) {
	repo := new(moderationMocks.EventRepository)
	app := setupListEventsApp(repo)

	repo.On("List", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	req := httptest.NewRequest("GET", "/api/v1/admin/events", nil)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
