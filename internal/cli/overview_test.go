package cli_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivar-dev/cultivar/internal/api"
	"github.com/cultivar-dev/cultivar/internal/entity"
)

func serveCollections(fb *fakeBackend) {
	fb.onJSON("GET /users", http.StatusOK, []entity.User{{ID: "u1"}, {ID: "u2"}})
	fb.onJSON("GET /roles", http.StatusOK, []entity.Role{{ID: 1, Name: "admin"}})
	fb.onJSON("GET /genetics", http.StatusOK, []entity.Genetic{{ID: "g1"}})
	fb.onJSON("GET /plants", http.StatusOK, []entity.Plant{
		{ID: "p1", Stage: entity.StageFlowering},
		{ID: "p2", Stage: entity.StageFlowering},
		{ID: "p3", Stage: entity.StageSeedling},
	})
}

func TestOverview(t *testing.T) {
	fb, srv := newFakeBackend(t)
	setupCLITest(t, srv)
	serveCollections(fb)

	stdout, _, err := execute(t, "", "overview")
	require.NoError(t, err)
	out := ansi.Strip(stdout)
	assert.Contains(t, out, "Users: 2")
	assert.Contains(t, out, "Plants: 3")
	assert.Contains(t, out, entity.StageFlowering.Display()+": 2")

	stdout, _, err = execute(t, "", "overview", "-o", "json")
	require.NoError(t, err)
	var ov api.Overview
	require.NoError(t, json.Unmarshal([]byte(stdout), &ov))
	assert.Equal(t, 1, ov.Roles)
	assert.Equal(t, 1, ov.PlantsByStage[entity.StageSeedling])
}

func TestOverview_Error(t *testing.T) {
	fb, srv := newFakeBackend(t)
	setupCLITest(t, srv)
	serveCollections(fb)
	fb.onJSON("GET /genetics", http.StatusUnauthorized, map[string]string{"code": "AUTH001"})

	_, _, err := execute(t, "", "overview")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH001")
}

func TestHealth(t *testing.T) {
	fb, srv := newFakeBackend(t)
	setupCLITest(t, srv)

	_, _, err := execute(t, "", "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not healthy")

	fb.on("GET /health_check", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	stdout, _, err := execute(t, "", "health")
	require.NoError(t, err)
	assert.Contains(t, stdout, "is healthy")
}
