package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"feedbackme/internal/microservices/http-api/dto"
	"feedbackme/internal/microservices/http-api/models"
	"feedbackme/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockProjectService mocks the ProjectService interface
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, userID string, req dto.CreateProjectRequest) (*models.Project, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) ListByOwner(ctx context.Context, userID string) ([]models.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, userID string, projectID int64) (*models.Project, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, userID string, projectID int64, req dto.UpdateProjectRequest) (*models.Project, error) {
	args := m.Called(ctx, userID, projectID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Stats(ctx context.Context, userID string, projectID int64) (*dto.ProjectStatsResponse, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProjectStatsResponse), args.Error(1)
}

func (m *MockProjectService) ResolveAPIKey(ctx context.Context, apiKey string) (*models.Project, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

// MockFeedbackService mocks the FeedbackService interface
type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) Create(ctx context.Context, userID string, req dto.CreateFeedbackRequest) (*models.FeedbackItem, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeedbackItem), args.Error(1)
}

func (m *MockFeedbackService) List(ctx context.Context, query dto.FeedbackQuery) (*dto.FeedbackListResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FeedbackListResponse), args.Error(1)
}

func (m *MockFeedbackService) UpdateStatus(ctx context.Context, userID string, feedbackID int64, status string) (*dto.StatusResponse, error) {
	args := m.Called(ctx, userID, feedbackID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StatusResponse), args.Error(1)
}

// MockVoteService mocks the VoteService interface
type MockVoteService struct {
	mock.Mock
}

func (m *MockVoteService) Vote(ctx context.Context, userID string, feedbackID int64, voteType string) (*dto.VoteResponse, error) {
	args := m.Called(ctx, userID, feedbackID, voteType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VoteResponse), args.Error(1)
}

func (m *MockVoteService) GetVote(ctx context.Context, userID string, feedbackID int64) (*dto.VoteStatusResponse, error) {
	args := m.Called(ctx, userID, feedbackID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VoteStatusResponse), args.Error(1)
}

// MockCommentService mocks the CommentService interface
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) List(ctx context.Context, query dto.CommentQuery) (*dto.CommentListResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentListResponse), args.Error(1)
}

func (m *MockCommentService) Create(ctx context.Context, actor *service.Actor, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, userID string, commentID int64, req dto.UpdateCommentRequest) (*dto.UpdateCommentResponse, error) {
	args := m.Called(ctx, userID, commentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UpdateCommentResponse), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, userID string, commentID int64) (*dto.DeleteCommentResponse, error) {
	args := m.Called(ctx, userID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DeleteCommentResponse), args.Error(1)
}

// MockWaitlistService mocks the WaitlistService interface
type MockWaitlistService struct {
	mock.Mock
}

func (m *MockWaitlistService) Join(ctx context.Context, req dto.WaitlistRequest) (*dto.WaitlistResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WaitlistResponse), args.Error(1)
}

func (m *MockWaitlistService) Stats(ctx context.Context) (*dto.WaitlistStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WaitlistStats), args.Error(1)
}

// MockNotificationService mocks the NotificationService interface
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) NotifyNewFeedback(ctx context.Context, project *models.Project, item *models.FeedbackItem, actorID string) {
	m.Called(ctx, project, item, actorID)
}

func (m *MockNotificationService) NotifyNewComment(ctx context.Context, project *models.Project, comment *models.Comment, actorID string) {
	m.Called(ctx, project, comment, actorID)
}

func (m *MockNotificationService) GetUnread(ctx context.Context, userID string) (*dto.NotificationListResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NotificationListResponse), args.Error(1)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID string, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// testApp bundles the router with its mocked services.
type testApp struct {
	router        *gin.Engine
	auth          *MockAuthService
	projects      *MockProjectService
	feedback      *MockFeedbackService
	votes         *MockVoteService
	comments      *MockCommentService
	waitlist      *MockWaitlistService
	notifications *MockNotificationService
	dbErr         error
}

const (
	ownerToken = "owner-token"
	userToken  = "user-token"
)

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithOptions(t, RouterOptions{})
}

// newTestAppWithOptions builds the app with extra router options; Database is always the app's pinger.
func newTestAppWithOptions(t *testing.T, opts RouterOptions) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := &testApp{
		auth:          new(MockAuthService),
		projects:      new(MockProjectService),
		feedback:      new(MockFeedbackService),
		votes:         new(MockVoteService),
		comments:      new(MockCommentService),
		waitlist:      new(MockWaitlistService),
		notifications: new(MockNotificationService),
	}
	app.auth.On("ValidateToken", ownerToken).Return(&service.Claims{UserID: "owner-1", Email: "owner@example.com", Name: "Owner"}, nil).Maybe()
	app.auth.On("ValidateToken", userToken).Return(&service.Claims{UserID: "user-1", Email: "user@example.com", Name: "User"}, nil).Maybe()
	app.auth.On("ValidateToken", mock.Anything).Return(nil, service.ErrInvalidToken).Maybe()

	opts.Database = PingFunc(func(context.Context) error { return app.dbErr })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app.router = NewRouter(Services{
		Auth:          app.auth,
		Projects:      app.projects,
		Feedback:      app.feedback,
		Votes:         app.votes,
		Comments:      app.comments,
		Waitlist:      app.waitlist,
		Notifications: app.notifications,
	}, opts, logger)
	return app
}

// do sends a request; body is JSON-encoded when non-nil and token is sent as a bearer token.
func (a *testApp) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewBuffer(raw)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Error   string           `json:"error"`
	Details []dto.FieldError `json:"details"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, target any) envelope {
	t.Helper()
	env := decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, target))
	return env
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func httptestRecorder(a *testApp, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}
