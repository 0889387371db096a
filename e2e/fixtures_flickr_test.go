//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeFlickr answers flickr.photos.search with count photos per term
func fakeFlickr(t *testing.T, count int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/services/rest/" {
			// No images are served, so every cell keeps its placeholder
			http.NotFound(w, r)
			return
		}

		q := r.URL.Query()
		if q.Get("api_key") != "e2e-key" {
			_ = json.NewEncoder(w).Encode(map[string]any{"stat": "fail", "code": 100, "message": "Invalid API Key"})
			return
		}

		term := q.Get("text")
		photos := make([]map[string]any, 0, count)
		for i := 0; i < count; i++ {
			photos = append(photos, map[string]any{
				"id": fmt.Sprintf("%s%d", term, i), "farm": 0, "server": "0", "secret": "x",
				"title": fmt.Sprintf("%s %d", term, i),
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"stat":   "ok",
			"photos": map[string]any{"page": 1, "pages": 1, "perpage": count, "total": count, "photo": photos},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// writeConfig writes a config pointing at the fake server and returns its path
func writeConfig(t *testing.T, dir, endpoint, apiKey string) string {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "version = 1\n\n[flickr]\napi_key = %q\nendpoint = %q\nimage_base_url = %q\ntimeout_seconds = 2\n\n",
		apiKey, endpoint+"/services/rest/", endpoint+"/images")
	fmt.Fprintf(&b, "[share]\ntarget = \"directory\"\ndirectory = %q\n", filepath.Join(dir, "shared"))

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
