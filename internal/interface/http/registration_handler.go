package handlers

import (
	"context"
	"expvar"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/account-registration/internal/application"
	"github.com/oksasatya/account-registration/pkg/response"
	"github.com/oksasatya/account-registration/pkg/validation"
)

const (
	msgValidationFailed = "Validation failed"
	msgEmailTaken       = "Email already registered"
	msgInternal         = "Internal server error"
)

// registrations counts outcomes by name; served on /api/debug/vars.
var registrations = expvar.NewMap("registrations")

// Registrar is implemented by *application.RegistrationService.
type Registrar interface {
	Register(ctx context.Context, payload map[string]any) (application.Result, error)
}

type RegistrationHandler struct {
	Service Registrar
	Logger  *logrus.Logger
}

func NewRegistrationHandler(svc Registrar, logger *logrus.Logger) *RegistrationHandler {
	return &RegistrationHandler{Service: svc, Logger: logger}
}

// Register handles POST /api/auth/register.
func (h *RegistrationHandler) Register(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		registrations.Add("bad_body", 1)
		response.Error(c, http.StatusBadRequest, msgValidationFailed, validation.ToDetails(err))
		return
	}
	if payload == nil {
		// a literal null decodes without error
		registrations.Add("bad_body", 1)
		response.Error(c, http.StatusBadRequest, msgValidationFailed, []validation.Violation{{Field: "payload", Message: "Invalid JSON body"}})
		return
	}

	res, err := h.Service.Register(c.Request.Context(), payload)
	if err != nil {
		registrations.Add("error", 1)
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("registration failed")
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, msgInternal, nil)
		return
	}
	registrations.Add(res.Outcome.String(), 1)

	switch res.Outcome {
	case application.OutcomeCreated:
		response.Success(c, http.StatusCreated, res.Account)
	case application.OutcomeInvalid:
		response.Error(c, http.StatusBadRequest, msgValidationFailed, res.Violations)
	case application.OutcomeConflict:
		response.Error(c, http.StatusConflict, msgEmailTaken, nil)
	default:
		h.Logger.WithField("outcome", int(res.Outcome)).Error("registration returned unknown outcome")
		response.Error(c, http.StatusInternalServerError, msgInternal, nil)
	}
}

// Health handles GET /api/health.
func Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}
