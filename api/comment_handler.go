package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devshowcase/backend/errs"
	"github.com/devshowcase/backend/models"
)

// commentStore is satisfied by *database.CommentRepo.
type commentStore interface {
	Add(comment *models.Comment) error
	FindForProject(projectID int64) ([]models.CommentWithAuthor, error)
	DeleteOwned(id int64, userID string) error
}

type commentHandler struct {
	responder Responder
	logger    zerolog.Logger
	comments  commentStore
}

func newCommentHandler(comments commentStore) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		comments:  comments,
	}
}

type commentRequest struct {
	Text string `json:"text"`
}

// addComment inserts a comment on the given project, authored by the caller.
func (h commentHandler) addComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid project id"))
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode comment request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Text == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("Comment text required", "text"))
			return
		}

		comment := models.Comment{
			ProjectID: projectID,
			UserID:    userID,
			Text:      req.Text,
		}

		if err := h.comments.Add(&comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}

		h.responder.WriteJSON(w, comment)
	}
}

// getComments lists a project's comments oldest first, with author names.
func (h commentHandler) getComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid project id"))
			return
		}

		comments, err := h.comments.FindForProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comments", err))
			return
		}

		h.responder.WriteJSON(w, comments)
	}
}

// deleteComment removes a comment; only its author may do so.
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		commentID, err := strconv.ParseInt(chi.URLParam(r, "commentID"), 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid comment id"))
			return
		}

		err = h.comments.DeleteOwned(commentID, userID)
		if errors.Is(err, errs.ErrForbidden) {
			h.responder.WriteError(w, errs.NewForbiddenError("Not allowed to delete this comment"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "comment", err))
			return
		}

		h.responder.WriteJSON(w, MessageResponse{Message: "Comment deleted"})
	}
}
