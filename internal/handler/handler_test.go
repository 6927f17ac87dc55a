package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"annonsplats/internal/domain"
	"annonsplats/internal/handler"
	"annonsplats/internal/middleware"
	"annonsplats/internal/mocks"
	"annonsplats/internal/service/auth"
)

const validToken = "valid-token"

type testApp struct {
	app   *fiber.App
	auth  *mocks.AuthService
	ads   *mocks.AdService
	apps  *mocks.ApplicationService
	notif *mocks.NotificationService
	user  *domain.User
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	ta := &testApp{
		auth:  new(mocks.AuthService),
		ads:   new(mocks.AdService),
		apps:  new(mocks.ApplicationService),
		notif: new(mocks.NotificationService),
		user:  &domain.User{ID: uuid.New(), EmailName: "erik"},
	}

	ta.auth.On("ValidateAccessToken", validToken).Return(&auth.Claims{UserID: ta.user.ID}, nil).Maybe()
	ta.auth.On("ValidateAccessToken", mock.Anything).Return(nil, auth.ErrInvalidToken).Maybe()
	ta.auth.On("GetUserByID", mock.Anything, ta.user.ID).Return(ta.user, nil).Maybe()

	h := &handler.Handlers{
		Auth:         handler.NewAuthHandler(ta.auth),
		Ad:           handler.NewAdHandler(ta.ads),
		Application:  handler.NewApplicationHandler(ta.apps),
		Notification: handler.NewNotificationHandler(ta.notif),
		Realtime:     handler.NewRealtimeHandler(nil, ta.notif, nil, zap.NewNop()),
	}

	ta.app = fiber.New(fiber.Config{ErrorHandler: middleware.NewErrorHandler(zap.NewNop())})
	handler.RegisterRoutes(ta.app, h, ta.auth)
	return ta
}

func (ta *testApp) do(t *testing.T, method, target, body string, authed bool) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+validToken)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

func TestAdHandler_Search(t *testing.T) {
	t.Run("AnonymousPreview", func(t *testing.T) {
		ta := newTestApp(t)
		ta.ads.On("Preview", mock.Anything).Return(domain.CatalogPreview{
			Data:    []domain.Ad{{ID: uuid.New(), Title: "Hundvakt"}},
			HasMore: true,
		}, nil).Once()

		resp, body := ta.do(t, http.MethodGet, "/api/v1/ads", "", false)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["has_more"])
		ta.ads.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AnonymousFilteredRequiresSignIn", func(t *testing.T) {
		ta := newTestApp(t)

		resp, body := ta.do(t, http.MethodGet, "/api/v1/ads?q="+url.QueryEscape("städ"), "", false)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", body["code"])
	})

	t.Run("AnonymousShowMoreRequiresSignIn", func(t *testing.T) {
		ta := newTestApp(t)

		resp, _ := ta.do(t, http.MethodGet, "/api/v1/ads?page=2", "", false)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("AuthenticatedSearch", func(t *testing.T) {
		ta := newTestApp(t)
		params := domain.AdSearchParams{Query: "städ", Region: "Skåne"}
		page := domain.PaginationParams{Page: 2, PageSize: 10}
		ta.ads.On("Search", mock.Anything, params, page).
			Return(domain.NewPaginatedResponse([]domain.Ad{}, 2, 10, 11), nil).Once()

		resp, body := ta.do(t, http.MethodGet,
			"/api/v1/ads?q="+url.QueryEscape("städ")+"&region="+url.QueryEscape("Skåne")+"&page=2&page_size=10", "", true)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(11), body["total_items"])
		ta.ads.AssertExpectations(t)
	})

	t.Run("InvalidPosterCategory", func(t *testing.T) {
		ta := newTestApp(t)

		resp, body := ta.do(t, http.MethodGet, "/api/v1/ads?poster_category=agency", "", true)

		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
	})
}

func TestAdHandler_Create(t *testing.T) {
	t.Run("RequiresAuth", func(t *testing.T) {
		ta := newTestApp(t)

		resp, _ := ta.do(t, http.MethodPost, "/api/v1/ads", `{"title":"Hjälp"}`, false)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("UnknownLocation", func(t *testing.T) {
		ta := newTestApp(t)
		ta.ads.On("Create", mock.Anything, ta.user.ID, mock.Anything).Return(nil, domain.ErrInvalidLocation).Once()

		resp, body := ta.do(t, http.MethodPost, "/api/v1/ads",
			`{"title":"Trädgårdshjälp","description":"Ogräs","region":"Atlantis"}`, true)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, domain.ErrInvalidLocation.Error(), body["message"])
	})
}

func TestApplicationHandler_Decide(t *testing.T) {
	appID := uuid.New()
	target := "/api/v1/applications/" + appID.String() + "/status"

	t.Run("Success", func(t *testing.T) {
		ta := newTestApp(t)
		ta.apps.On("Decide", mock.Anything, ta.user.ID, appID, domain.ApplicationAccepted).
			Return(&domain.Application{ID: appID, Status: domain.ApplicationAccepted}, nil).Once()

		resp, body := ta.do(t, http.MethodPatch, target, `{"status":"accepted"}`, true)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "accepted", body["status"])
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		ta := newTestApp(t)

		resp, body := ta.do(t, http.MethodPatch, target, `{"status":"rejected_read"}`, true)

		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.NotEmpty(t, body["fields"])
		ta.apps.AssertNotCalled(t, "Decide", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AlreadyDecided", func(t *testing.T) {
		ta := newTestApp(t)
		ta.apps.On("Decide", mock.Anything, ta.user.ID, appID, domain.ApplicationRejected).
			Return(nil, domain.ErrInvalidTransition).Once()

		resp, body := ta.do(t, http.MethodPatch, target, `{"status":"rejected"}`, true)

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", body["code"])
		assert.NotEmpty(t, body["trace_id"])
	})
}

func TestApplicationHandler_Apply(t *testing.T) {
	adID := uuid.New()

	t.Run("OwnAd", func(t *testing.T) {
		ta := newTestApp(t)
		ta.apps.On("Apply", mock.Anything, ta.user.ID, adID, domain.ApplyInput{Message: "Hej"}).
			Return(nil, domain.ErrOwnAd).Once()

		resp, _ := ta.do(t, http.MethodPost, "/api/v1/ads/"+adID.String()+"/applications", `{"message":"Hej"}`, true)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("InvalidAdID", func(t *testing.T) {
		ta := newTestApp(t)

		resp, _ := ta.do(t, http.MethodPost, "/api/v1/ads/not-a-uuid/applications", `{"message":"Hej"}`, true)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestNotificationHandler_GetCount(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ta := newTestApp(t)
		ta.notif.On("Refresh", mock.Anything, ta.user.ID).
			Return(domain.Badge{UserID: ta.user.ID, Count: 3, PendingApplications: 1, UnreadMessages: 2}, nil).Once()

		resp, body := ta.do(t, http.MethodGet, "/api/v1/notifications/count", "", true)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(3), body["count"])
	})

	t.Run("InvalidToken", func(t *testing.T) {
		ta := newTestApp(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/count", nil)
		req.Header.Set("Authorization", "Bearer expired")

		resp, err := ta.app.Test(req, -1)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRealtimeHandler_RequiresUpgrade(t *testing.T) {
	ta := newTestApp(t)

	resp, _ := ta.do(t, http.MethodGet, "/ws/notifications", "", true)

	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
