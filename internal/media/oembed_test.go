package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const tiktokVideoURL = "https://www.tiktok.com/@cook/video/123"

func TestDescriber_ReturnsTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, tiktokVideoURL, r.URL.Query().Get("url"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode(map[string]any{"title": "My 5-minute pasta recipe"})
	}))
	defer srv.Close()

	d := NewDescriber(5*time.Second, nil)
	d.SetEndpoint(PlatformTikTok, srv.URL)

	assert.Equal(t, "My 5-minute pasta recipe", d.Describe(context.Background(), tiktokVideoURL))
}

func TestDescriber_Non2xxDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	d := NewDescriber(5*time.Second, nil)
	d.SetEndpoint(PlatformTikTok, srv.URL)

	assert.Empty(t, d.Describe(context.Background(), tiktokVideoURL))
}

func TestDescriber_MissingTitleDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"author_name": "cook"})
	}))
	defer srv.Close()

	d := NewDescriber(5*time.Second, nil)
	d.SetEndpoint(PlatformTikTok, srv.URL)

	assert.Empty(t, d.Describe(context.Background(), tiktokVideoURL))
}

func TestDescriber_UnsupportedPlatform(t *testing.T) {
	d := NewDescriber(5*time.Second, nil)
	assert.Empty(t, d.Describe(context.Background(), "https://example.com/watch?v=1"))
}

func TestDetectPlatform(t *testing.T) {
	cases := []struct {
		url  string
		want Platform
	}{
		{"https://www.tiktok.com/@u/video/1", PlatformTikTok},
		{"https://vm.TIKTOK.com/abc", PlatformTikTok},
		{"https://www.instagram.com/reel/xyz/", PlatformInstagram},
		{"https://example.com/v/1", PlatformUnknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DetectPlatform(c.url), c.url)
	}
}
