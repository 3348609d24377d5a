package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarpenko/trademark-registry/backend/internal/middleware"
)

func TestMaxBodySize_AllowsSmallBody(t *testing.T) {
	var got []byte
	h := middleware.NewMaxBodySize(64)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			var err error
			got, err = io.ReadAll(r.Body)
			require.NoError(t, err)
		}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small payload"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "small payload", string(got))
}

func TestMaxBodySize_RejectsDeclaredOversize(t *testing.T) {
	handlerCalled := false
	h := middleware.NewMaxBodySize(8)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("definitely more than eight bytes"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, handlerCalled)
}

func TestMaxBodySize_CapsUndeclaredBody(t *testing.T) {
	h := middleware.NewMaxBodySize(8)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_, err := io.ReadAll(r.Body)
			// MaxBytesReader reports the overflow at read time.
			assert.Error(t, err)
		}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("definitely more than eight bytes"))
	req.ContentLength = -1 // chunked upload, length unknown
	h.ServeHTTP(httptest.NewRecorder(), req)
}
