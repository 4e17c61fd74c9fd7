package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
)

func TestClassify(t *testing.T) {
	assert.Empty(t, Classify(nil))
	assert.Equal(t, "app_unauthorized", Classify(apperrors.Unauthorized("Please log in")))
	assert.Equal(t, "app_network", Classify(fmt.Errorf("login: %w", apperrors.Network(errors.New("refused")))))
	assert.Equal(t, "json_syntaxerror", Classify(fmt.Errorf("decode: %w", &json.SyntaxError{Offset: 3})))
	assert.Equal(t, "errors_errorstring", Classify(errors.New("plain")))
	assert.Equal(t, "context_deadlineexceedederror", Classify(context.DeadlineExceeded))
}
