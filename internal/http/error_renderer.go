package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
	obserrors "github.com/favoriteblog/blog-ui/internal/observability/errors"
)

// DetermineErrorStatus maps an error onto the status the local server responds with.
// Upstream transport failures become 502 so they are not confused with local bugs.
func DetermineErrorStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeNetwork:
		return http.StatusBadGateway
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RenderError writes err as a JSON error body. Messages of application errors are
// shown verbatim; anything else is logged and replaced by a generic message.
func RenderError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := DetermineErrorStatus(err)
	code := string(apperrors.GetCode(err))
	msg := apperrors.UserMessage(err)

	if code == "" {
		code = "internal"
		msg = apperrors.DefaultMessage
	}
	if status >= http.StatusInternalServerError && logger != nil {
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"error_type", obserrors.Classify(err),
		)
	}

	WriteError(w, ErrorParams{Code: status, ErrCode: code, Message: msg, Fields: fieldErrors(err)})
}

func fieldErrors(err error) map[string]string {
	if fields := apperrors.GetFields(err); len(fields) > 0 {
		return fields
	}
	if field := apperrors.GetField(err); field != "" {
		return map[string]string{field: apperrors.UserMessage(err)}
	}
	return nil
}
