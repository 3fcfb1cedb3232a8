package api

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devshowcase/backend/errs"
	"github.com/devshowcase/backend/services"
)

type uploadHandler struct {
	responder      Responder
	logger         zerolog.Logger
	storage        services.ObjectStorage
	projectBucket  string
	avatarBucket   string
	maxUploadBytes int64
}

func newUploadHandler(storage services.ObjectStorage, projectBucket, avatarBucket string, maxUploadBytes int64) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		storage:        storage,
		projectBucket:  projectBucket,
		avatarBucket:   avatarBucket,
		maxUploadBytes: maxUploadBytes,
	}
}

// UploadResponse is returned after a successful upload
type UploadResponse struct {
	URL     string `json:"url"`
	Message string `json:"message,omitempty"`
}

// uploadImage stores a project image under a collision-resistant name and
// returns its public URL. The timestamp-plus-random key means an existing
// object is never overwritten.
func (h uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, ok := h.formFile(w, r, "image")
		if !ok {
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		key := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), randomSuffix(), ext)

		url, err := h.storage.Put(r.Context(), h.projectBucket, key, header.Header.Get("Content-Type"), file)
		if err != nil {
			h.logger.Error().Err(err).Str("key", key).Msg("Upload failed")
			h.responder.WriteError(w, errs.NewInternalError("Upload failed"))
			return
		}

		h.responder.WriteJSON(w, UploadResponse{URL: url, Message: "Uploaded Successfully"})
	}
}

// uploadAvatar stores an avatar. Avatar keys carry no random part, so a
// repeat upload for the same millisecond overwrites, which is acceptable for
// avatars.
func (h uploadHandler) uploadAvatar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, ok := h.formFile(w, r, "avatar")
		if !ok {
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		key := fmt.Sprintf("avatar-%d%s", time.Now().UnixMilli(), ext)

		url, err := h.storage.Put(r.Context(), h.avatarBucket, key, header.Header.Get("Content-Type"), file)
		if err != nil {
			h.logger.Error().Err(err).Str("key", key).Msg("Avatar upload failed")
			h.responder.WriteError(w, errs.NewInternalError("Upload failed"))
			return
		}

		h.responder.WriteJSON(w, UploadResponse{URL: url})
	}
}

// formFile pulls the single uploaded file out of the multipart form, writing
// the error response itself when there is none.
func (h uploadHandler) formFile(w http.ResponseWriter, r *http.Request, field string) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart form"))
		return nil, nil, false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("No file uploaded"))
		return nil, nil, false
	}

	return file, header, true
}

func randomSuffix() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
