package engagement

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIIncrementer(t *testing.T) {
	ctx := context.Background()

	t.Run("read increment carries no credential", func(t *testing.T) {
		var gotPath, gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		inc := NewAPIIncrementer(srv.URL, "secret-token")
		require.NoError(t, inc.Increment(ctx, "res-1", Read))
		assert.Equal(t, "/resources/res-1/read", gotPath)
		assert.Empty(t, gotAuth)
	})

	t.Run("download increment carries the bearer credential", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		inc := NewAPIIncrementer(srv.URL, "secret-token")
		require.NoError(t, inc.Increment(ctx, "res-1", Download))
		assert.Equal(t, "Bearer secret-token", gotAuth)
	})

	t.Run("missing resource maps to ErrResourceGone", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		inc := NewAPIIncrementer(srv.URL, "")
		err := inc.Increment(ctx, "gone", Read)
		assert.ErrorIs(t, err, ErrResourceGone)
	})

	t.Run("server error is surfaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		inc := NewAPIIncrementer(srv.URL, "")
		assert.Error(t, inc.Increment(ctx, "res-1", Read))
	})
}
