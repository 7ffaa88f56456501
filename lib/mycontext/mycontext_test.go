package mycontext

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceContext(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "storefront")

	t.Run("With trace header", func(t *testing.T) {
		request, err := http.NewRequest(http.MethodGet, "/", nil)
		assert.NoError(t, err)
		request.Header.Set("X-Cloud-Trace-Context", "105445aa7843bc8bf206b12000100000/1;o=1")

		c := ContextFromHTTPRequest(request)

		assert.Equal(t, "projects/storefront/traces/105445aa7843bc8bf206b12000100000", TraceFromContext(c))
	})

	t.Run("Without trace header", func(t *testing.T) {
		request, err := http.NewRequest(http.MethodGet, "/", nil)
		assert.NoError(t, err)

		c := ContextFromHTTPRequest(request)

		assert.Equal(t, "", TraceFromContext(c))
	})

	t.Run("Plain context", func(t *testing.T) {
		assert.Equal(t, "", TraceFromContext(context.TODO()))
	})
}
