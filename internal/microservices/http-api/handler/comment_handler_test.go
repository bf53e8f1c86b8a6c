package handler

import (
	"net/http"
	"testing"

	"feedbackme/internal/microservices/http-api/dto"
	"feedbackme/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateComment_AuthenticatedAndGuest(t *testing.T) {
	app := newTestApp(t)
	zero := int64(0)

	app.comments.On("Create", mock.Anything, &service.Actor{UserID: "user-1", Email: "user@example.com", Name: "User"}, mock.Anything).
		Return(&dto.CommentResponse{ID: 1, Content: "Great idea!", ReplyCount: &zero}, nil).Once()
	app.comments.On("Create", mock.Anything, (*service.Actor)(nil), mock.MatchedBy(func(r dto.CreateCommentRequest) bool {
		return r.UserName != nil && *r.UserName == "Guest"
	})).Return(&dto.CommentResponse{ID: 2, Content: "Me too please", ReplyCount: &zero}, nil).Once()

	w := app.do(http.MethodPost, "/api/comments", dto.CreateCommentRequest{Content: "Great idea!", FeedbackItemID: 1}, userToken)
	require.Equal(t, http.StatusOK, w.Code)
	var created dto.CommentResponse
	decodeData(t, w, &created)
	require.NotNil(t, created.ReplyCount)
	assert.Equal(t, int64(0), *created.ReplyCount)

	w = app.do(http.MethodPost, "/api/comments", dto.CreateCommentRequest{
		Content:        "Me too please",
		FeedbackItemID: 1,
		UserName:       strPtr("Guest"),
		UserEmail:      strPtr("guest@example.com"),
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	app.comments.AssertExpectations(t)
}

func TestCreateComment_Validation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/api/comments", dto.CreateCommentRequest{Content: "hey", FeedbackItemID: 1}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	require.Len(t, env.Details, 1)
	assert.Equal(t, "content", env.Details[0].Field)
	assert.Equal(t, "content must be at least 5 characters", env.Details[0].Message)

	app.comments.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, service.ErrParentCommentNotFound)
	w = app.do(http.MethodPost, "/api/comments", dto.CreateCommentRequest{Content: "a reply", FeedbackItemID: 1, ParentCommentID: int64Ptr(3)}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListComments_ReplyCountGrows(t *testing.T) {
	app := newTestApp(t)
	before, after := int64(0), int64(1)
	query := dto.CommentQuery{FeedbackItemID: 1}

	app.comments.On("List", mock.Anything, query).
		Return(&dto.CommentListResponse{Comments: []dto.CommentResponse{{ID: 10, ReplyCount: &before}}, Total: 1, FeedbackItemID: 1}, nil).Once()
	app.comments.On("List", mock.Anything, query).
		Return(&dto.CommentListResponse{Comments: []dto.CommentResponse{{ID: 10, ReplyCount: &after}}, Total: 1, FeedbackItemID: 1}, nil).Once()

	var resp dto.CommentListResponse
	decodeData(t, app.do(http.MethodGet, "/api/comments?feedbackItemId=1", nil, ""), &resp)
	assert.Equal(t, int64(0), *resp.Comments[0].ReplyCount)

	decodeData(t, app.do(http.MethodGet, "/api/comments?feedbackItemId=1", nil, ""), &resp)
	assert.Equal(t, int64(1), *resp.Comments[0].ReplyCount)
}

func TestListComments_RequiresItem(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/api/comments", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "feedbackItemId", decode(t, w).Details[0].Field)
}

func TestUpdateComment_StatusOrder(t *testing.T) {
	app := newTestApp(t)
	edit := dto.UpdateCommentRequest{Content: strPtr("edited content")}

	app.comments.On("Update", mock.Anything, "user-1", int64(404), edit).Return(nil, service.ErrCommentNotFound)
	app.comments.On("Update", mock.Anything, "user-1", int64(403), edit).Return(nil, service.ErrNotCommentOwner)
	app.comments.On("Update", mock.Anything, "user-1", int64(410), edit).Return(nil, service.ErrCommentDeleted)
	app.comments.On("Update", mock.Anything, "user-1", int64(200), edit).
		Return(&dto.UpdateCommentResponse{Comment: dto.UpdatedComment{ID: 200, Content: "edited content"}, PreviousContent: strPtr("old content")}, nil)

	tests := []struct {
		name       string
		path       string
		body       any
		token      string
		wantStatus int
	}{
		{"no token", "/api/comments/404", edit, "", http.StatusUnauthorized},
		{"too short", "/api/comments/404", dto.UpdateCommentRequest{Content: strPtr("abc")}, userToken, http.StatusBadRequest},
		{"missing", "/api/comments/404", edit, userToken, http.StatusNotFound},
		{"not author", "/api/comments/403", edit, userToken, http.StatusForbidden},
		{"deleted", "/api/comments/410", edit, userToken, http.StatusGone},
		{"ok", "/api/comments/200", edit, userToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(http.MethodPatch, tt.path, tt.body, tt.token)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestDeleteComment(t *testing.T) {
	app := newTestApp(t)
	app.comments.On("Delete", mock.Anything, "owner-1", int64(7)).
		Return(&dto.DeleteCommentResponse{Comment: dto.DeletedComment{ID: 7, IsDeleted: true}, DeletedBy: "project_owner"}, nil).Once()
	app.comments.On("Delete", mock.Anything, "owner-1", int64(7)).Return(nil, service.ErrCommentAlreadyDeleted).Once()
	app.comments.On("Delete", mock.Anything, "user-1", int64(8)).Return(nil, service.ErrDeleteForbidden)

	w := app.do(http.MethodDelete, "/api/comments/7", nil, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.DeleteCommentResponse
	decodeData(t, w, &resp)
	assert.True(t, resp.Comment.IsDeleted)
	assert.Equal(t, "project_owner", resp.DeletedBy)

	w = app.do(http.MethodDelete, "/api/comments/7", nil, ownerToken)
	assert.Equal(t, http.StatusGone, w.Code)
	assert.Equal(t, "Comment already deleted", decode(t, w).Error)

	w = app.do(http.MethodDelete, "/api/comments/8", nil, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodDelete, "/api/comments/8", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
