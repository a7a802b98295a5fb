package controllers

import (
	"net/http"

	"github.com/sobnin/sobnin-backend/api/responses"
	mediasvc "github.com/sobnin/sobnin-backend/internal/media"
	"github.com/sobnin/sobnin-backend/pkg/config"
	pkgerrors "github.com/sobnin/sobnin-backend/pkg/errors"
	"github.com/sobnin/sobnin-backend/pkg/logger"
)

// MediaUpload accepts a multipart image and returns the stored path to put
// on a category or menu item.
func MediaUpload(svc mediasvc.Service, cfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		maxBytes := int64(cfg.MaxUploadMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field required"))
			return
		}
		defer file.Close()

		stored, err := svc.Store(r.Context(), header.Filename, file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, stored)
	}
}
