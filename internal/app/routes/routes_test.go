package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/controllers"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories/memory"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/services"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/middleware"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/auth"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/ratelimit"
)

type testAPI struct {
	router *gin.Engine
	jwt    *auth.JWTService
	store  *memory.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	svc := services.NewServices(services.Dependencies{Store: store, Logger: zerolog.Nop()})
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenIssuer: "test"})

	router := gin.New()
	SetupRouter(router,
		Controllers{
			Conversation: controllers.NewConversationController(svc.Conversation, svc.Thread),
			Message:      controllers.NewMessageController(svc.Messaging, svc.Thread),
			Publication:  controllers.NewPublicationController(svc.Engagement),
			User:         controllers.NewUserController(svc.Moderation, svc.Social),
			Club:         controllers.NewClubController(svc.Club, svc.Social),
			Notification: controllers.NewNotificationController(svc.Notification),
		},
		middleware.NewAuthMiddleware(jwtService, store.Repos().UserRepository),
		RateLimits{
			Limiter: ratelimit.NewLimiter(nil, zerolog.Nop()),
			Message: ratelimit.NewRule(ratelimit.KeyMessage, 20, 0),
			Report:  ratelimit.NewRule(ratelimit.KeyReport, 5, 0),
		},
		Options{MetricsEnabled: true},
	)
	return &testAPI{router: router, jwt: jwtService, store: store}
}

func (a *testAPI) user(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", IsActive: true}
	require.NoError(t, a.store.Repos().UserRepository.Create(context.Background(), u))
	token, err := a.jwt.GenerateToken(u)
	require.NoError(t, err)
	return u, token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestPublicEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticatedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/conversations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/conversations", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSendMessageThenListConversations(t *testing.T) {
	api := newTestAPI(t)
	alice, aliceToken := api.user(t, "alice")
	bob, bobToken := api.user(t, "bob")

	w := api.do(t, http.MethodPost, "/api/v1/messages", aliceToken, dto.SendMessageRequest{RecipientID: bob.ID, Content: "hi bob"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/v1/conversations", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data dto.ConversationListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Conversations, 1)
	conv := resp.Data.Conversations[0]
	assert.Equal(t, "user", conv.Type)
	assert.Equal(t, alice.ID, conv.CounterpartID)
	assert.Equal(t, "hi bob", conv.LastMessagePreview)
	assert.Equal(t, int64(1), conv.UnreadCount)

	// Opening the thread marks it read
	w = api.do(t, http.MethodGet, "/api/v1/conversations/users/"+strconv.FormatInt(alice.ID, 10), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/v1/conversations", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Conversations, 1)
	assert.Zero(t, resp.Data.Conversations[0].UnreadCount)
}

func TestSelfMessageIsForbidden(t *testing.T) {
	api := newTestAPI(t)
	alice, token := api.user(t, "alice")

	w := api.do(t, http.MethodPost, "/api/v1/messages", token, dto.SendMessageRequest{RecipientID: alice.ID, Content: "me"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNotificationRoutes(t *testing.T) {
	api := newTestAPI(t)
	alice, aliceToken := api.user(t, "alice")
	_, bobToken := api.user(t, "bob")

	w := api.do(t, http.MethodPost, "/api/v1/users/"+strconv.FormatInt(alice.ID, 10)+"/follow", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/v1/notifications?unread=true", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "bob started following you")

	w = api.do(t, http.MethodPatch, "/api/v1/notifications/read-all", aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
