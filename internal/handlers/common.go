package handlers

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-estimation-api/internal/dto"
	apierrors "github.com/yukikurage/project-estimation-api/internal/errors"
	"github.com/yukikurage/project-estimation-api/internal/estimation"
	"github.com/yukikurage/project-estimation-api/internal/middleware"
	"github.com/yukikurage/project-estimation-api/internal/services"
	"github.com/yukikurage/project-estimation-api/internal/utils"
	"github.com/yukikurage/project-estimation-api/internal/validation"
	"github.com/yukikurage/project-estimation-api/pkg/logger/sl"
)

// bindJSON decodes and validates the request body. It writes the 400
// response itself and reports whether the handler may continue.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return false
	}

	if err := validation.ValidateStruct(req); err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			apierrors.BadRequestWithDetails(c, "Validation failed", verr.Errors)
			return false
		}
		apierrors.BadRequest(c, err.Error())
		return false
	}

	return true
}

// pathID parses the :id parameter, writing a 400 on failure
func pathID(c *gin.Context) (uint64, bool) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return 0, false
	}
	return id, true
}

func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	// Format is already checked by the validator.
	t, err := time.Parse(dto.DateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

// respondError maps service errors to API errors
func respondError(c *gin.Context, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrProgrammerNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrStageNotFound),
		errors.Is(err, services.ErrProjectTaskNotFound):
		apierrors.NotFound(c, capitalize(err.Error()))
	case errors.Is(err, services.ErrProgrammerInUse):
		apierrors.Conflict(c, "Programmer is assigned to projects or project tasks", referenceDetails(err))
	case errors.Is(err, services.ErrTaskInUse):
		apierrors.Conflict(c, "Task is used by project tasks", referenceDetails(err))
	case services.IsInvalidReference(err):
		apierrors.BadRequest(c, capitalize(err.Error()))
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.Is(err, services.ErrAINoStagesSuggested),
		errors.Is(err, services.ErrAINoValidStages):
		apierrors.BadRequest(c, capitalize(err.Error()))
	case errors.Is(err, estimation.ErrProcessing):
		log.Error("failed to compute estimate", slog.String("request_id", middleware.GetRequestID(c)), sl.Err(err))
		apierrors.InternalError(c, "Failed to compute project estimate")
	default:
		log.Error("request failed", slog.String("request_id", middleware.GetRequestID(c)), sl.Err(err))
		apierrors.InternalError(c, "")
	}
}

func referenceDetails(err error) *apierrors.ReferenceDetails {
	var inUse *services.InUseError
	if !errors.As(err, &inUse) {
		return nil
	}
	return &apierrors.ReferenceDetails{Resource: inUse.Resource, ID: inUse.ID, References: inUse.References}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
