package api

import (
	"net/http"

	"github.com/devshowcase/backend/config"
	"github.com/devshowcase/backend/database"
	"github.com/devshowcase/backend/errs"
	"github.com/devshowcase/backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, storage services.ObjectStorage, cfg map[string]string) *routeHandlers {
	return &routeHandlers{
		userHandler:    newUserHandler(db.UserRepo()),
		projectHandler: newProjectHandler(db.ProjectRepo(), db.VoteRepo()),
		commentHandler: newCommentHandler(db.CommentRepo()),
		uploadHandler: newUploadHandler(
			storage,
			config.GetString(cfg, "S3_BUCKET_PROJECTS", "project-images"),
			config.GetString(cfg, "S3_BUCKET_AVATARS", "avatars"),
			int64(config.GetInt(cfg, "MAX_UPLOAD_MB", 10))*1024*1024,
		),
	}
}

// callerID returns the authenticated caller's user id. Behind the mandatory
// guard this always succeeds; the error path covers misrouted handlers.
func callerID(r *http.Request) (string, error) {
	userID, ok := ctxViewer(r.Context()).UserID()
	if !ok {
		return "", errs.NewUnauthorizedError("authentication required")
	}
	return userID, nil
}
