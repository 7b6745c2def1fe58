package api

import (
	"errors"
	"log/slog"
	"net/http"

	"resource-hub/internal/handler/httperr"
	"resource-hub/internal/pkg/errs"
	"resource-hub/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

var errNoActor = errors.New("authenticated actor missing from context")

type conflictDetail struct {
	Conflicts []string `json:"conflicts"`
}

// abortWithUseCaseError presents a use case failure according to its kind.
// Business messages are safe to show; store and internal failures are not.
func abortWithUseCaseError(c *gin.Context, err error) {
	switch errs.KindOf(err) {
	case errs.KindInvalid:
		httperr.Abort(c, http.StatusUnprocessableEntity, err, err.Error())
	case errs.KindForbidden:
		httperr.Abort(c, http.StatusForbidden, err, err.Error())
	case errs.KindNotFound:
		httperr.Abort(c, http.StatusNotFound, err, err.Error())
	case errs.KindConflict:
		httperr.AbortWithError(c, http.StatusConflict, err, err.Error(), conflictDetailOf(err))
	case errs.KindUnavailable:
		httperr.Abort(c, http.StatusConflict, err, err.Error())
	case errs.KindTransient:
		slog.WarnContext(c.Request.Context(), "store temporarily unavailable", "error", err.Error())
		httperr.Abort(c, http.StatusServiceUnavailable, err, "Service temporarily unavailable")
	default:
		slog.ErrorContext(c.Request.Context(), "unhandled use case error",
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, 10))
		httperr.Abort(c, http.StatusInternalServerError, err, "Internal server error")
	}
}

func conflictDetailOf(err error) any {
	var ce *shared.ConflictError
	if !errors.As(err, &ce) {
		return nil
	}
	ids := make([]string, len(ce.Conflicts))
	for i, r := range ce.Conflicts {
		ids[i] = r.ID().String()
	}
	return conflictDetail{Conflicts: ids}
}

func abortUnauthenticated(c *gin.Context) {
	httperr.Abort(c, http.StatusUnauthorized, errNoActor, "Unauthorized")
}
