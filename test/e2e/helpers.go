//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lcac-club/clubsite/internal/api/handlers"
	"github.com/lcac-club/clubsite/internal/api/middleware"
	"github.com/lcac-club/clubsite/internal/knowledge"
	"github.com/lcac-club/clubsite/internal/resolver"
	"github.com/lcac-club/clubsite/internal/server"
	"github.com/lcac-club/clubsite/internal/social"
)

const adminToken = "e2e-admin-token"

// E2EEnv runs the fully wired router over a local HTTP listener. The
// remote store and the generative backend stay unconfigured, so the
// suite exercises the degraded paths a fresh deployment serves.
type E2EEnv struct {
	T       *testing.T
	Server  *httptest.Server
	DataDir string
}

func SetupE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	dataDir := t.TempDir()
	seed := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	seed("board.json", `{"year":"2025/26","members":["President"]}`)
	seed("projects.json", `{"items":[{"title":"Food Drive","date":"2024-06-01"}]}`)
	seed("club-knowledge.json", `{
		"club": {
			"name": "Leo Club of Ampang Chempaka",
			"motto": "Born to Serve",
			"join": {"how": "Fill out the form", "formUrl": "https://x/y"}
		},
		"leo_general": {"what_is_leo": "LEO stands for Leadership, Experience, Opportunity."}
	}`)

	feeds := resolver.New(nil, dataDir)
	store := knowledge.NewStore(time.Minute)
	router := knowledge.NewRouter(store, knowledge.NewMatcher(), nil, knowledge.RouterOptions{
		DefaultDocs: []string{filepath.Join(dataDir, "club-knowledge.json")},
	})
	socialSvc := social.NewService(nil, nil)

	handler := server.NewRouter(server.RouterConfig{
		AdminToken:      adminToken,
		DataHandler:     handlers.NewDataHandler(feeds),
		ChatHandler:     handlers.NewChatHandler(router),
		SocialHandler:   handlers.NewSocialHandler(socialSvc),
		ProjectsHandler: handlers.NewProjectsFeedHandler(feeds, socialSvc),
	})

	return &E2EEnv{T: t, Server: httptest.NewServer(handler), DataDir: dataDir}
}

func (e *E2EEnv) Cleanup() {
	e.Server.Close()
}

func (e *E2EEnv) Get(path string) (int, []byte, error) {
	res, err := http.Get(e.Server.URL + path)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	return res.StatusCode, body, err
}

func (e *E2EEnv) Post(path string, payload any, token string) (int, []byte, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return 0, nil, fmt.Errorf("encode payload: %w", err)
		}
	}

	req, err := http.NewRequest(http.MethodPost, e.Server.URL+path, &body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.AdminTokenHeader, token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	out, err := io.ReadAll(res.Body)
	return res.StatusCode, out, err
}
