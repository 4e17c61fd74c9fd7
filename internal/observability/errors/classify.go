package errors

import (
	goerrors "errors"
	"reflect"
	"strings"

	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
)

// Classify returns a short, stable error type name for the error_type log attribute.
// Application errors are named by their code ("app_unauthorized"); anything else by
// the innermost concrete type ("json_syntaxerror").
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var appErr *apperrors.AppError
	if goerrors.As(err, &appErr) && appErr.Code != "" {
		return "app_" + string(appErr.Code)
	}

	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), ".", "_"))
	if name == "" {
		return "unknown"
	}
	return name
}
