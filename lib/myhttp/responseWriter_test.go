package myhttp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mylog"
)

func TestResponseWriter(t *testing.T) {
	c := context.TODO()
	writer := NewWriter(mylog.New("test"))

	t.Run("Error response", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.WriteError(c, response, 3, myerrors.NewNotFoundError(fmt.Errorf("product 42 not found")))

		assert.Equal(t, http.StatusNotFound, response.Code)
		assert.Equal(t, "application/json", response.Header().Get("Content-Type"))
		assert.Contains(t, response.Body.String(), `"ErrorCode": 3`)
		assert.Contains(t, response.Body.String(), "product 42 not found")
	})

	t.Run("Success response", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.Write(c, response, http.StatusOK, SuccessResponse{Message: "ok"})

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, "application/json", response.Header().Get("Content-Type"))
		assert.Contains(t, response.Body.String(), `"Message": "ok"`)
	})
}

func TestErrorLogging(t *testing.T) {
	c := context.TODO()

	for _, tc := range []struct {
		name     string
		err      error
		expected string
	}{
		{name: "not found", err: myerrors.NewNotFoundError(fmt.Errorf("product 42 not found")), expected: "http-status:404, grpc-code:NotFound"},
		{name: "invalid input", err: myerrors.NewInvalidInputErrorf("bad index"), expected: "http-status:400, grpc-code:InvalidArgument"},
		{name: "wrapped", err: fmt.Errorf("loading cart: %w", myerrors.NewUnavailableError(fmt.Errorf("down"))), expected: "http-status:503, grpc-code:Unavailable"},
		{name: "plain", err: fmt.Errorf("boom"), expected: "http-status:500, grpc-code:Unknown"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			logger := &recordingLogger{}

			NewWriter(logger).WriteError(c, httptest.NewRecorder(), 1, tc.err)

			assert.Len(t, logger.lines, 1)
			assert.Contains(t, logger.lines[0], tc.expected)
		})
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Log(ctx context.Context, traceLabel string, severity mylog.Severity, format string, a ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, a...))
}
