package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devshowcase/backend/models"
)

// fakeComments adapts fakeShowcase to the commentStore interface.
type fakeComments struct {
	*fakeShowcase
}

func (f fakeComments) Add(comment *models.Comment) error {
	return f.AddComment(comment)
}

func (f fakeComments) DeleteOwned(id int64, userID string) error {
	return f.DeleteComment(id, userID)
}

func TestAddComment_RequiresText(t *testing.T) {
	h := newCommentHandler(fakeComments{newFakeShowcase()})

	req := withViewer(
		withURLParam(httptest.NewRequest(http.MethodPost, "/api/comments/1",
			jsonBody(t, map[string]any{"text": ""})), "projectID", "1"),
		models.Authenticated("user-1"),
	)
	rec := httptest.NewRecorder()
	h.addComment()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddComment_RequiresAuth(t *testing.T) {
	h := newCommentHandler(fakeComments{newFakeShowcase()})

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/comments/1",
		jsonBody(t, map[string]any{"text": "hello"})), "projectID", "1")
	rec := httptest.NewRecorder()
	h.addComment()(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddComment_ReturnsCreatedRow(t *testing.T) {
	fake := fakeComments{newFakeShowcase()}
	h := newCommentHandler(fake)

	req := withViewer(
		withURLParam(httptest.NewRequest(http.MethodPost, "/api/comments/7",
			jsonBody(t, map[string]any{"text": "great project"})), "projectID", "7"),
		models.Authenticated("user-1"),
	)
	rec := httptest.NewRecorder()
	h.addComment()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeBody[models.Comment](t, rec)
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(7), created.ProjectID)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, "great project", created.Text)
}

func TestGetComments_IncludesAuthorName(t *testing.T) {
	fake := fakeComments{newFakeShowcase()}
	fake.authors["user-1"] = "Ada"
	require.NoError(t, fake.Add(&models.Comment{ProjectID: 1, UserID: "user-1", Text: "first"}))
	require.NoError(t, fake.Add(&models.Comment{ProjectID: 1, UserID: "ghost", Text: "second"}))
	h := newCommentHandler(fake)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/comments/1", nil), "projectID", "1")
	rec := httptest.NewRecorder()
	h.getComments()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	rows := decodeBody[[]models.CommentWithAuthor](t, rec)
	require.Len(t, rows, 2)

	namesByText := map[string]*string{}
	for i := range rows {
		namesByText[rows[i].Text] = rows[i].UserName
	}
	require.NotNil(t, namesByText["first"])
	assert.Equal(t, "Ada", *namesByText["first"])
	assert.Nil(t, namesByText["second"], "missing author record yields a null name")
}

func TestDeleteComment_OnlyAuthor(t *testing.T) {
	fake := fakeComments{newFakeShowcase()}
	require.NoError(t, fake.Add(&models.Comment{ProjectID: 1, UserID: "author", Text: "mine"}))
	h := newCommentHandler(fake)

	req := withViewer(
		withURLParam(httptest.NewRequest(http.MethodDelete, "/api/comments/1", nil), "commentID", "1"),
		models.Authenticated("intruder"),
	)
	rec := httptest.NewRecorder()
	h.deleteComment()(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = withViewer(
		withURLParam(httptest.NewRequest(http.MethodDelete, "/api/comments/1", nil), "commentID", "1"),
		models.Authenticated("author"),
	)
	rec = httptest.NewRecorder()
	h.deleteComment()(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rows, err := fake.FindForProject(1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
