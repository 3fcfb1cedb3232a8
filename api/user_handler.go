package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devshowcase/backend/errs"
	"github.com/devshowcase/backend/models"
)

// userStore is satisfied by *database.UserRepo.
type userStore interface {
	Upsert(user *models.User) (*models.User, error)
	FindByID(id string) (*models.User, error)
	FindAll() ([]models.User, error)
	UpdateProfile(id string, profile models.Profile) (*models.User, error)
	Delete(id string) error
}

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     userStore
}

func newUserHandler(users userStore) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
	}
}

type syncUserRequest struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// syncUser mirrors a freshly verified identity into the local users table.
// A conflicting id is a no-op; the stored row comes back either way.
func (h userHandler) syncUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req syncUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode user request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.ID == "" || req.Email == "" || req.Name == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("id, email, and name are required"))
			return
		}

		user, err := h.users.Upsert(&models.User{
			ID:    req.ID,
			Email: req.Email,
			Name:  req.Name,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// getMe returns the caller's own profile row.
func (h userHandler) getMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.users.FindByID(userID)
		if errors.Is(err, errs.ErrNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

func (h userHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.users.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "users", err))
			return
		}

		h.responder.WriteJSON(w, users)
	}
}

// updateMe overwrites the caller's profile fields with the request values.
// There is no partial patch: a field absent from the body becomes NULL.
func (h userHandler) updateMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var profile models.Profile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode profile request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.users.UpdateProfile(userID, profile)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// deleteUser removes a user by id. The route is deliberately left open: any
// caller may delete any user, matching the published API surface.
func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		if userID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing user id"))
			return
		}

		if err := h.users.Delete(userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "user", err))
			return
		}

		h.responder.WriteJSON(w, MessageResponse{Message: "Deleted successfully"})
	}
}
