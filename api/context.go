package api

import (
	"context"

	"github.com/devshowcase/backend/models"
)

type keyType string

const viewerKey keyType = "viewer"

// ctxWithViewer attaches the resolved viewer identity to the context
func ctxWithViewer(ctx context.Context, viewer models.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, viewer)
}

// ctxViewer retrieves the viewer from the context; a request that never went
// through a guard is anonymous.
func ctxViewer(ctx context.Context) models.Viewer {
	if viewer, ok := ctx.Value(viewerKey).(models.Viewer); ok {
		return viewer
	}
	return models.Anonymous()
}
