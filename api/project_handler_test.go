package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devshowcase/backend/errs"
	"github.com/devshowcase/backend/models"
)

// fakeShowcase is an in-memory stand-in for the project, vote and comment
// repositories, sharing state so cascades and idempotency are observable.
type fakeShowcase struct {
	nextProjectID int64
	projects      map[int64]*models.Project
	votes         map[int64]map[string]bool
	nextCommentID int64
	comments      map[int64]*models.Comment
	authors       map[string]string // user id -> display name
}

func newFakeShowcase() *fakeShowcase {
	return &fakeShowcase{
		projects: map[int64]*models.Project{},
		votes:    map[int64]map[string]bool{},
		comments: map[int64]*models.Comment{},
		authors:  map[string]string{},
	}
}

func (f *fakeShowcase) Add(project *models.Project) error {
	f.nextProjectID++
	project.ID = f.nextProjectID
	copied := *project
	f.projects[project.ID] = &copied
	return nil
}

func (f *fakeShowcase) FindByID(id int64) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	copied := *project
	return &copied, nil
}

func (f *fakeShowcase) annotate(project models.Project, viewer models.Viewer) models.ProjectWithStats {
	stats, _ := f.StatsFor(project.ID, viewer)
	var commentCount int64
	for _, c := range f.comments {
		if c.ProjectID == project.ID {
			commentCount++
		}
	}
	return models.ProjectWithStats{
		Project:       project,
		Likes:         stats.Likes,
		CommentsCount: commentCount,
		Liked:         stats.Liked,
	}
}

func (f *fakeShowcase) FindAllAnnotated(viewer models.Viewer) ([]models.ProjectWithStats, error) {
	annotated := []models.ProjectWithStats{}
	for _, project := range f.projects {
		annotated = append(annotated, f.annotate(*project, viewer))
	}
	return annotated, nil
}

func (f *fakeShowcase) FindOwnedAnnotated(owner string) ([]models.ProjectWithStats, error) {
	annotated := []models.ProjectWithStats{}
	for _, project := range f.projects {
		if project.UserID == owner {
			annotated = append(annotated, f.annotate(*project, models.Authenticated(owner)))
		}
	}
	return annotated, nil
}

func (f *fakeShowcase) FindByIDAnnotated(id int64, viewer models.Viewer) (*models.ProjectWithStats, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	annotated := f.annotate(*project, viewer)
	return &annotated, nil
}

func (f *fakeShowcase) UpdateOwned(project *models.Project) (*models.Project, error) {
	existing, ok := f.projects[project.ID]
	if !ok || existing.UserID != project.UserID {
		return nil, errs.ErrForbidden
	}
	existing.Title = project.Title
	existing.ShortDesc = project.ShortDesc
	existing.FullDesc = project.FullDesc
	existing.Image = project.Image
	existing.Github = project.Github
	existing.Live = project.Live
	existing.Tags = project.Tags
	copied := *existing
	return &copied, nil
}

func (f *fakeShowcase) DeleteOwned(id int64, owner string) error {
	existing, ok := f.projects[id]
	if !ok || existing.UserID != owner {
		return errs.ErrForbidden
	}
	delete(f.projects, id)
	delete(f.votes, id)
	for commentID, comment := range f.comments {
		if comment.ProjectID == id {
			delete(f.comments, commentID)
		}
	}
	return nil
}

func (f *fakeShowcase) Like(userID string, projectID int64) error {
	if f.votes[projectID] == nil {
		f.votes[projectID] = map[string]bool{}
	}
	f.votes[projectID][userID] = true
	return nil
}

func (f *fakeShowcase) Unlike(userID string, projectID int64) error {
	delete(f.votes[projectID], userID)
	return nil
}

func (f *fakeShowcase) StatsFor(projectID int64, viewer models.Viewer) (models.ProjectStats, error) {
	stats := models.ProjectStats{Likes: int64(len(f.votes[projectID]))}
	if viewerID, ok := viewer.UserID(); ok {
		stats.Liked = f.votes[projectID][viewerID]
	}
	return stats, nil
}

func (f *fakeShowcase) AddComment(comment *models.Comment) error {
	f.nextCommentID++
	comment.ID = f.nextCommentID
	copied := *comment
	f.comments[comment.ID] = &copied
	return nil
}

func (f *fakeShowcase) FindForProject(projectID int64) ([]models.CommentWithAuthor, error) {
	rows := []models.CommentWithAuthor{}
	for _, comment := range f.comments {
		if comment.ProjectID != projectID {
			continue
		}
		row := models.CommentWithAuthor{Comment: *comment}
		if name, ok := f.authors[comment.UserID]; ok {
			row.UserName = &name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (f *fakeShowcase) DeleteComment(id int64, userID string) error {
	comment, ok := f.comments[id]
	if !ok || comment.UserID != userID {
		return errs.ErrForbidden
	}
	delete(f.comments, id)
	return nil
}

// request helpers

func withViewer(req *http.Request, viewer models.Viewer) *http.Request {
	return req.WithContext(ctxWithViewer(req.Context(), viewer))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestCreateProject_RequiresAuth(t *testing.T) {
	h := newProjectHandler(newFakeShowcase(), newFakeShowcase())

	req := httptest.NewRequest(http.MethodPost, "/api/projects", jsonBody(t, map[string]any{"title": "X"}))
	rec := httptest.NewRecorder()
	h.createProject()(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateProject_RequiresTitle(t *testing.T) {
	h := newProjectHandler(newFakeShowcase(), newFakeShowcase())

	req := withViewer(
		httptest.NewRequest(http.MethodPost, "/api/projects", jsonBody(t, map[string]any{"short_desc": "d"})),
		models.Authenticated("user-1"),
	)
	rec := httptest.NewRecorder()
	h.createProject()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProject_StampsOwnerAndDefaultsTags(t *testing.T) {
	fake := newFakeShowcase()
	h := newProjectHandler(fake, fake)

	req := withViewer(
		httptest.NewRequest(http.MethodPost, "/api/projects", jsonBody(t, map[string]any{"title": "X"})),
		models.Authenticated("user-1"),
	)
	rec := httptest.NewRecorder()
	h.createProject()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeBody[models.Project](t, rec)
	assert.Equal(t, "user-1", created.UserID)
	assert.NotZero(t, created.ID)
	assert.Equal(t, []string{}, []string(created.Tags))
}

func TestCreateThenGet_ZeroStats(t *testing.T) {
	fake := newFakeShowcase()
	h := newProjectHandler(fake, fake)

	req := withViewer(
		httptest.NewRequest(http.MethodPost, "/api/projects", jsonBody(t, map[string]any{"title": "X"})),
		models.Authenticated("user-1"),
	)
	rec := httptest.NewRecorder()
	h.createProject()(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeBody[models.Project](t, rec)

	getReq := withURLParam(httptest.NewRequest(http.MethodGet, "/api/projects/1", nil), "projectID", "1")
	getRec := httptest.NewRecorder()
	h.getProject()(getRec, getReq)

	require.Equal(t, http.StatusOK, getRec.Code)
	got := decodeBody[models.ProjectWithStats](t, getRec)
	assert.Equal(t, created.ID, got.ID)
	assert.Zero(t, got.Likes)
	assert.Zero(t, got.CommentsCount)
	assert.False(t, got.Liked)
}

func TestGetProject_NotFound(t *testing.T) {
	fake := newFakeShowcase()
	h := newProjectHandler(fake, fake)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/projects/99", nil), "projectID", "99")
	rec := httptest.NewRecorder()
	h.getProject()(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLikeProject_Idempotent(t *testing.T) {
	fake := newFakeShowcase()
	h := newProjectHandler(fake, fake)
	require.NoError(t, fake.Add(&models.Project{Title: "X", UserID: "owner"}))

	for i := 0; i < 2; i++ {
		req := withViewer(
			withURLParam(httptest.NewRequest(http.MethodPost, "/api/projects/1/like", nil), "projectID", "1"),
			models.Authenticated("user-1"),
		)
		rec := httptest.NewRecorder()
		h.likeProject()(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		stats := decodeBody[models.ProjectStats](t, rec)
		assert.Equal(t, int64(1), stats.Likes)
		assert.True(t, stats.Liked)
	}
}

func TestUnlikeProject_NoOpWhenNotLiked(t *testing.T) {
	fake := newFakeShowcase()
	h := newProjectHandler(fake, fake)
	require.NoError(t, fake.Add(&models.Project{Title: "X", UserID: "owner"}))
	require.NoError(t, fake.Like("other", 1))

	req := withViewer(
		withURLParam(httptest.NewRequest(http.MethodDelete, "/api/projects/1/like", nil), "projectID", "1"),
		models.Authenticated("user-1"),
	)
	rec := httptest.NewRecorder()
	h.unlikeProject()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody[models.ProjectStats](t, rec)
	assert.Equal(t, int64(1), stats.Likes, "someone else's like survives")
	assert.False(t, stats.Liked)
}

func TestListProjects_LikedStatePerViewer(t *testing.T) {
	fake := newFakeShowcase()
	h := newProjectHandler(fake, fake)
	require.NoError(t, fake.Add(&models.Project{Title: "P", UserID: "owner"}))
	require.NoError(t, fake.Add(&models.Project{Title: "Q", UserID: "owner"}))
	require.NoError(t, fake.Like("viewer-a", 1))

	req := withViewer(httptest.NewRequest(http.MethodGet, "/api/projects", nil), models.Authenticated("viewer-a"))
	rec := httptest.NewRecorder()
	h.getAllProjects()(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	likedByID := map[int64]bool{}
	for _, row := range decodeBody[[]models.ProjectWithStats](t, rec) {
		likedByID[row.ID] = row.Liked
	}
	assert.True(t, likedByID[1])
	assert.False(t, likedByID[2])

	anonReq := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	anonRec := httptest.NewRecorder()
	h.getAllProjects()(anonRec, anonReq)
	require.Equal(t, http.StatusOK, anonRec.Code)

	for _, row := range decodeBody[[]models.ProjectWithStats](t, anonRec) {
		assert.False(t, row.Liked, "anonymous viewers never see liked=true")
	}
}

func TestUpdateProject_Validation(t *testing.T) {
	fake := newFakeShowcase()
	h := newProjectHandler(fake, fake)
	require.NoError(t, fake.Add(&models.Project{Title: "X", ShortDesc: "d", UserID: "user-1"}))

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "blank title", body: map[string]any{"title": "   ", "short_desc": "d"}},
		{name: "blank short_desc", body: map[string]any{"title": "X", "short_desc": "\t"}},
		{name: "missing short_desc", body: map[string]any{"title": "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withViewer(
				withURLParam(httptest.NewRequest(http.MethodPatch, "/api/projects/1", jsonBody(t, tt.body)), "projectID", "1"),
				models.Authenticated("user-1"),
			)
			rec := httptest.NewRecorder()
			h.updateProject()(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUpdateProject_CoercesNonListTags(t *testing.T) {
	fake := newFakeShowcase()
	h := newProjectHandler(fake, fake)
	require.NoError(t, fake.Add(&models.Project{Title: "X", ShortDesc: "d", UserID: "user-1"}))

	req := withViewer(
		withURLParam(httptest.NewRequest(http.MethodPatch, "/api/projects/1",
			jsonBody(t, map[string]any{"title": "X", "short_desc": "d", "tags": "not-a-list"})), "projectID", "1"),
		models.Authenticated("user-1"),
	)
	rec := httptest.NewRecorder()
	h.updateProject()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[models.Project](t, rec)
	assert.Equal(t, []string{}, []string(updated.Tags))
}

func TestUpdateProject_NonOwnerForbidden(t *testing.T) {
	fake := newFakeShowcase()
	h := newProjectHandler(fake, fake)
	require.NoError(t, fake.Add(&models.Project{Title: "X", ShortDesc: "d", UserID: "owner"}))

	for _, id := range []string{"1", "99"} { // foreign and missing look the same
		req := withViewer(
			withURLParam(httptest.NewRequest(http.MethodPatch, "/api/projects/"+id,
				jsonBody(t, map[string]any{"title": "X", "short_desc": "d"})), "projectID", id),
			models.Authenticated("intruder"),
		)
		rec := httptest.NewRecorder()
		h.updateProject()(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	}
}

func TestDeleteProject_NonOwnerForbidden(t *testing.T) {
	fake := newFakeShowcase()
	h := newProjectHandler(fake, fake)
	require.NoError(t, fake.Add(&models.Project{Title: "X", UserID: "owner"}))

	req := withViewer(
		withURLParam(httptest.NewRequest(http.MethodDelete, "/api/projects/1", nil), "projectID", "1"),
		models.Authenticated("intruder"),
	)
	rec := httptest.NewRecorder()
	h.deleteProject()(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	_, err := fake.FindByID(1)
	assert.NoError(t, err, "project must survive a forbidden delete")
}

func TestDeleteProject_CascadesVotesAndComments(t *testing.T) {
	fake := newFakeShowcase()
	h := newProjectHandler(fake, fake)
	require.NoError(t, fake.Add(&models.Project{Title: "X", UserID: "owner"}))
	require.NoError(t, fake.Like("fan", 1))
	require.NoError(t, fake.AddComment(&models.Comment{ProjectID: 1, UserID: "fan", Text: "nice"}))

	req := withViewer(
		withURLParam(httptest.NewRequest(http.MethodDelete, "/api/projects/1", nil), "projectID", "1"),
		models.Authenticated("owner"),
	)
	rec := httptest.NewRecorder()
	h.deleteProject()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	comments, err := fake.FindForProject(1)
	require.NoError(t, err)
	assert.Empty(t, comments)
	stats, err := fake.StatsFor(1, models.Anonymous())
	require.NoError(t, err)
	assert.Zero(t, stats.Likes)
}

func TestGetMyProjects_FiltersByOwner(t *testing.T) {
	fake := newFakeShowcase()
	h := newProjectHandler(fake, fake)
	require.NoError(t, fake.Add(&models.Project{Title: "Mine", UserID: "user-1"}))
	require.NoError(t, fake.Add(&models.Project{Title: "Theirs", UserID: "user-2"}))

	req := withViewer(httptest.NewRequest(http.MethodGet, "/api/projects/me", nil), models.Authenticated("user-1"))
	rec := httptest.NewRecorder()
	h.getMyProjects()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	rows := decodeBody[[]models.ProjectWithStats](t, rec)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mine", rows[0].Title)
}
