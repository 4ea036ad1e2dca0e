package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/budget-chef/backend/internal/types"
)

func fakeAPI(t *testing.T) (*httptest.Server, *types.GenerateRecipesRequest) {
	t.Helper()
	var got types.GenerateRecipesRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/api/recipes/generate", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode([]types.RecipeSummary{{ID: "AI_REC_1", Title: "AI Recipe: Quick Rice Dish"}})
	})
	mux.HandleFunc("/api/recipes/save", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Recipe is already saved by this user."}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &got
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	srv, got := fakeAPI(t)

	out, err := run(t, "generate", "--server", srv.URL, "-i", "rice,beans", "onion", "-p", "vegan")
	require.NoError(t, err)

	assert.Equal(t, []string{"rice", "beans", "onion"}, got.Ingredients)
	assert.Equal(t, []string{"vegan"}, got.Preferences)
	assert.Contains(t, out, "AI Recipe: Quick Rice Dish")
}

func TestServerFromEnvAndConfigFile(t *testing.T) {
	srv, _ := fakeAPI(t)

	t.Setenv("BUDGETCHEF_SERVER", srv.URL)
	out, err := run(t, "generate", "rice")
	require.NoError(t, err)
	assert.Contains(t, out, "AI_REC_1")

	t.Setenv("BUDGETCHEF_SERVER", "")
	cfg := filepath.Join(t.TempDir(), "budgetchef.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("server: "+srv.URL+"\n"), 0o600))
	out, err = run(t, "generate", "--config", cfg, "rice")
	require.NoError(t, err)
	assert.Contains(t, out, "AI_REC_1")
}

func TestSaveCommandReportsConflict(t *testing.T) {
	srv, _ := fakeAPI(t)

	out, err := run(t, "save", "101", "--user", "1", "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "already saved")
}
