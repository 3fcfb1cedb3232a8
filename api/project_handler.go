package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/devshowcase/backend/errs"
	"github.com/devshowcase/backend/models"
)

// projectStore is the slice of the persistence gateway the project handler
// needs. *database.ProjectRepo satisfies it.
type projectStore interface {
	Add(project *models.Project) error
	FindByID(id int64) (*models.Project, error)
	FindAllAnnotated(viewer models.Viewer) ([]models.ProjectWithStats, error)
	FindOwnedAnnotated(owner string) ([]models.ProjectWithStats, error)
	FindByIDAnnotated(id int64, viewer models.Viewer) (*models.ProjectWithStats, error)
	UpdateOwned(project *models.Project) (*models.Project, error)
	DeleteOwned(id int64, owner string) error
}

// voteStore is satisfied by *database.VoteRepo.
type voteStore interface {
	Like(userID string, projectID int64) error
	Unlike(userID string, projectID int64) error
	StatsFor(projectID int64, viewer models.Viewer) (models.ProjectStats, error)
}

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  projectStore
	votes     voteStore
}

func newProjectHandler(projects projectStore, votes voteStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		votes:     votes,
	}
}

// projectRequest is the payload for create and update. Absent fields decode
// to their zero values, which update treats as full replacement.
type projectRequest struct {
	Title     string          `json:"title"`
	ShortDesc string          `json:"short_desc"`
	FullDesc  string          `json:"full_desc"`
	Image     string          `json:"image"`
	Github    string          `json:"github"`
	Live      string          `json:"live"`
	Tags      json.RawMessage `json:"tags"`
}

// tagList coerces the raw tags value to a string list; anything that is not
// list-shaped becomes the empty list.
func (p projectRequest) tagList() []string {
	if len(p.Tags) == 0 {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(p.Tags, &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// projectIDParam parses the {projectID} URL parameter.
func projectIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "projectID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid project id")
	}
	return id, nil
}

// createProject inserts a project owned by the caller. Title is the only
// required field; tags default to the empty list.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("Title required", "title"))
			return
		}

		project := models.Project{
			Title:     req.Title,
			ShortDesc: req.ShortDesc,
			FullDesc:  req.FullDesc,
			Image:     req.Image,
			Github:    req.Github,
			Live:      req.Live,
			Tags:      datatypes.NewJSONSlice(req.tagList()),
			UserID:    userID,
		}

		if err := h.projects.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// getAllProjects returns every project annotated with likes, comment count
// and the viewer's liked-state. Anonymous viewers see liked=false everywhere.
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.FindAllAnnotated(ctxViewer(r.Context()))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getMyProjects returns the caller's projects in the same annotated shape.
func (h projectHandler) getMyProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := h.projects.FindOwnedAnnotated(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.FindByIDAnnotated(projectID, ctxViewer(r.Context()))
		if errors.Is(err, errs.ErrNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// likeProject records the caller's vote; liking twice is a no-op. Responds
// with fresh stats either way.
func (h projectHandler) likeProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.voteAndRespond(w, r, h.votes.Like)
	}
}

// unlikeProject removes the caller's vote if present.
func (h projectHandler) unlikeProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.voteAndRespond(w, r, h.votes.Unlike)
	}
}

func (h projectHandler) voteAndRespond(w http.ResponseWriter, r *http.Request, mutate func(string, int64) error) {
	userID, err := callerID(r)
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}

	projectID, err := projectIDParam(r)
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}

	if err := mutate(userID, projectID); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("update", "votes", err))
		return
	}

	stats, err := h.votes.StatsFor(projectID, models.Authenticated(userID))
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("count", "votes", err))
		return
	}

	h.responder.WriteJSON(w, stats)
}

// updateProject replaces every editable field with the request values.
// Missing fields become empty; title and short_desc must be non-blank after
// trimming. The update is scoped by id and owner, so a foreign or missing
// project yields 403 without revealing which.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if strings.TrimSpace(req.Title) == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("Title required", "title"))
			return
		}
		if strings.TrimSpace(req.ShortDesc) == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("Short description required", "short_desc"))
			return
		}

		updated, err := h.projects.UpdateOwned(&models.Project{
			ID:        projectID,
			Title:     req.Title,
			ShortDesc: req.ShortDesc,
			FullDesc:  req.FullDesc,
			Image:     req.Image,
			Github:    req.Github,
			Live:      req.Live,
			Tags:      datatypes.NewJSONSlice(req.tagList()),
			UserID:    userID,
		})
		if errors.Is(err, errs.ErrForbidden) {
			h.responder.WriteError(w, errs.NewOwnershipError("edit", "project"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteProject removes the project with its votes and comments in one
// transaction, scoped by owner.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		err = h.projects.DeleteOwned(projectID, userID)
		if errors.Is(err, errs.ErrForbidden) {
			h.responder.WriteError(w, errs.NewOwnershipError("delete", "project"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, MessageResponse{Message: "Project deleted"})
	}
}
