package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolver_FollowsRedirects(t *testing.T) {
	sawBody := false
	mux := http.NewServeMux()
	mux.HandleFunc("/short", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			sawBody = true
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewResolver(5*time.Second, nil)
	resolved, ok := r.Resolve(context.Background(), srv.URL+"/short")

	assert.True(t, ok)
	assert.Equal(t, srv.URL+"/final", resolved)
	assert.False(t, sawBody, "resolution must stay header-only")
}

func TestResolver_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed on purpose

	r := NewResolver(time.Second, nil)
	resolved, ok := r.Resolve(context.Background(), srv.URL+"/x")

	assert.False(t, ok)
	assert.Empty(t, resolved)
}

func TestResolver_MalformedURL(t *testing.T) {
	r := NewResolver(time.Second, nil)
	_, ok := r.Resolve(context.Background(), "http://bad url with spaces")
	assert.False(t, ok)
}
