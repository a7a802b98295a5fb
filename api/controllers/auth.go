package controllers

import (
	"net/http"
	"strings"

	"github.com/sobnin/sobnin-backend/api/responses"
	"github.com/sobnin/sobnin-backend/api/validators"
	staffsvc "github.com/sobnin/sobnin-backend/internal/staff"
	"github.com/sobnin/sobnin-backend/pkg/logger"
)

type staffLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// StaffLogin authenticates a back-office account and returns a bearer token.
func StaffLogin(svc staffsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload staffLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), strings.TrimSpace(payload.Email), payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{"staff_email": result.Email})
			logg.Info(ctx, "staff.login")
		}

		responses.WriteSuccess(w, result)
	}
}
