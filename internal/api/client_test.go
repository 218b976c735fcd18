package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivar-dev/cultivar/internal/api"
	"github.com/cultivar-dev/cultivar/internal/api/cache"
	"github.com/cultivar-dev/cultivar/internal/config"
	"github.com/cultivar-dev/cultivar/internal/entity"
	"github.com/cultivar-dev/cultivar/internal/logging"
)

const testCookie = "session=abc"

// newTestClient returns a client pointed at a server running handler.
func newTestClient(t *testing.T, handler http.Handler, opts ...api.Option) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.New(config.APIConfig{
		BaseURL:        server.URL + "/api",
		AuthCookie:     testCookie,
		TimeoutSeconds: 5,
	}, opts...)
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := api.New(config.APIConfig{BaseURL: "not a url"})
	assert.ErrorIs(t, err, config.ErrInvalidBaseURL)
}

func TestListPlants(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/plants", r.URL.Path)
		assert.Equal(t, "haze #1", r.URL.Query().Get("query"))
		assert.Equal(t, testCookie, r.Header.Get("Cookie"))
		assert.Equal(t, "01HTRACE", r.Header.Get(api.HeaderRequestID))

		writeJSON(t, w, http.StatusOK, []entity.Plant{
			{ID: "p1", Name: "Haze #1", Stage: entity.StageSeedling},
		})
	}))

	ctx := logging.ContextWithTraceID(context.Background(), "01HTRACE")
	plants, err := client.ListPlants(ctx, "haze #1")
	require.NoError(t, err)
	require.Len(t, plants, 1)
	assert.Equal(t, "Haze #1", plants[0].Name)
}

func TestList_EmptyQueryOmitted(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = io.WriteString(w, "null")
	}))

	roles, err := client.ListRoles(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, roles)
	assert.Empty(t, roles)
}

func TestList_NotAuthenticated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected without a session")
	}))
	t.Cleanup(server.Close)

	client, err := api.New(config.APIConfig{BaseURL: server.URL, TimeoutSeconds: 1})
	require.NoError(t, err)

	_, err = client.ListUsers(context.Background(), "")
	assert.ErrorIs(t, err, api.ErrNotAuthenticated)
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		wantDetail string
	}{
		{"unit code", http.StatusNotFound, `{"code":"DATABASE002"}`, "DATABASE002", ""},
		{"tagged code", http.StatusInternalServerError, `{"code":{"DATABASE001":"connection reset"}}`,
			"DATABASE001", "connection reset"},
		{"plain body", http.StatusNotFound, `User not found`, "", ""},
		{"empty body", http.StatusUnauthorized, ``, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))

			err := client.DeleteUser(context.Background(), "u1")
			var statusErr *api.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.Status)
			assert.Equal(t, http.MethodDelete, statusErr.Method)
			assert.Equal(t, "users/u1", statusErr.Path)
			assert.Equal(t, tt.wantCode, statusErr.Code)
			assert.Equal(t, tt.wantDetail, statusErr.Detail)
			assert.Equal(t, tt.status == http.StatusNotFound, api.IsNotFound(err))
			if tt.wantCode != "" {
				assert.Contains(t, err.Error(), tt.wantCode)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	var got []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		got = append(got, r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]string{})
	}))

	ctx := context.Background()
	require.NoError(t, client.DeleteUser(ctx, "u1"))
	require.NoError(t, client.DeleteRole(ctx, 7))
	require.NoError(t, client.DeleteGenetic(ctx, "g1"))
	require.NoError(t, client.DeletePlant(ctx, "p1"))
	assert.Equal(t, []string{"/api/users/u1", "/api/roles/7", "/api/genetics/g1", "/api/plants/p1"}, got)

	assert.ErrorIs(t, client.DeletePlant(ctx, " "), api.ErrEmptyID)
}

func TestDelete_EscapesID(t *testing.T) {
	var got string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.EscapedPath()
		writeJSON(t, w, http.StatusOK, map[string]string{})
	}))

	require.NoError(t, client.DeleteUser(context.Background(), "../roles/1"))
	assert.Equal(t, "/api/users/..%2Froles%2F1", got)
}

func TestCreateGenetic(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body entity.NewGenetic
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, entity.NewGenetic{Name: "Blue Dream", FlowerDays: 63}, body)

		writeJSON(t, w, http.StatusCreated, entity.Genetic{ID: "g1", Name: body.Name, FlowerDays: body.FlowerDays})
	}))

	g, err := client.CreateGenetic(context.Background(), entity.NewGenetic{Name: "Blue Dream", FlowerDays: 63})
	require.NoError(t, err)
	assert.Equal(t, "g1", g.ID)
}

func TestCreate_Expects201(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, entity.Role{ID: 1, Name: "qa"})
	}))

	_, err := client.CreateRole(context.Background(), entity.NewRole{Name: "qa"})
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusOK, statusErr.Status)
}

func TestCreate_EmptyBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	_, err := client.CreatePlant(context.Background(), entity.NewPlant{
		Name: "Blue Dream #1", GeneticID: "6f1c2a4e-8d3b-4a5f-9c7e-1b2d3e4f5a6b",
	})
	assert.NoError(t, err)
}

func TestCreate_ValidatesBeforeSending(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
	}))

	_, err := client.CreateUser(context.Background(), entity.NewUser{DisplayName: "A", Email: "x", Password: "y"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrPasswordTooShort)
	assert.Zero(t, calls.Load())
}

func TestGeneratePlantName(t *testing.T) {
	const geneticID = "6f1c2a4e-8d3b-4a5f-9c7e-1b2d3e4f5a6b"
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/plants/generatePlantName/"+geneticID, r.URL.Path)
		_, _ = io.WriteString(w, "Blue Dream #12\n")
	}))

	name, err := client.GeneratePlantName(context.Background(), geneticID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Dream #12", name)

	_, err = client.GeneratePlantName(context.Background(), "nope")
	assert.ErrorIs(t, err, entity.ErrInvalidID)
}

func TestHealthCheck_NoSessionNeeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health_check", r.URL.Path)
		assert.Empty(t, r.Header.Get("Cookie"))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client, err := api.New(config.APIConfig{BaseURL: server.URL + "/api/", TimeoutSeconds: 1})
	require.NoError(t, err)
	assert.NoError(t, client.HealthCheck(context.Background()))
}

func TestList_Cache(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			calls.Add(1)
			writeJSON(t, w, http.StatusOK, []entity.Genetic{{ID: "g1", Name: "Blue Dream"}})
		case http.MethodDelete:
			writeJSON(t, w, http.StatusOK, map[string]string{})
		}
	}), api.WithCache(newStore(t)))

	ctx := context.Background()
	for range 2 {
		genetics, err := client.ListGenetics(ctx, "blue")
		require.NoError(t, err)
		require.Len(t, genetics, 1)
	}
	assert.Equal(t, int32(1), calls.Load(), "second list is served from cache")

	_, err := client.ListGenetics(ctx, "dream")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "queries are cached separately")

	require.NoError(t, client.DeleteGenetic(ctx, "g1"))
	_, err = client.ListGenetics(ctx, "blue")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load(), "delete invalidates the collection")
}

func TestList_CacheScopedToBackendAndSession(t *testing.T) {
	store := newStore(t)
	var callsA atomic.Int32
	serverA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		callsA.Add(1)
		writeJSON(t, w, http.StatusOK, []entity.Genetic{{ID: "g1", Name: "Backend A"}})
	}))
	t.Cleanup(serverA.Close)
	serverB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, []entity.Genetic{{ID: "g2", Name: "Backend B"}})
	}))
	t.Cleanup(serverB.Close)

	newClient := func(url, cookie string) *api.Client {
		client, err := api.New(config.APIConfig{BaseURL: url + "/api", AuthCookie: cookie}, api.WithCache(store))
		require.NoError(t, err)
		return client
	}

	tests := []struct {
		name   string
		client *api.Client
		want   string
	}{
		{name: "first backend", client: newClient(serverA.URL, "session=alice"), want: "Backend A"},
		{name: "other backend", client: newClient(serverB.URL, "session=bob"), want: "Backend B"},
		{name: "other session", client: newClient(serverA.URL, "session=carol"), want: "Backend A"},
		{name: "same backend and session", client: newClient(serverA.URL, "session=alice"), want: "Backend A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			genetics, err := tt.client.ListGenetics(context.Background(), "")
			require.NoError(t, err)
			require.Len(t, genetics, 1)
			assert.Equal(t, tt.want, genetics[0].Name)
		})
	}
	assert.Equal(t, int32(2), callsA.Load(), "only the repeated backend and session hit the cache")
}

func TestList_Fresh(t *testing.T) {
	var (
		mu   sync.Mutex
		name = "old"
	)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		writeJSON(t, w, http.StatusOK, []entity.Plant{{ID: "p1", Name: name}})
	}), api.WithCache(newStore(t)))

	ctx := context.Background()
	list := func(opts ...api.ListOption) string {
		plants, err := client.ListPlants(ctx, "", opts...)
		require.NoError(t, err)
		require.Len(t, plants, 1)
		return plants[0].Name
	}

	assert.Equal(t, "old", list())
	mu.Lock()
	name = "new"
	mu.Unlock()

	assert.Equal(t, "old", list(), "cached copy is still valid")
	assert.Equal(t, "new", list(api.Fresh()))
	assert.Equal(t, "new", list(), "fresh response replaces the cached copy")
}

func TestList_ErrorsAreNotCached(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(t, w, http.StatusOK, []entity.User{})
	}), api.WithCache(newStore(t)))

	_, err := client.ListUsers(context.Background(), "")
	require.Error(t, err)
	_, err = client.ListUsers(context.Background(), "")
	require.NoError(t, err)
}

func TestOverview(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, []entity.User{{ID: "u1"}, {ID: "u2"}})
	})
	mux.HandleFunc("/api/roles", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, []entity.Role{{ID: 1}})
	})
	mux.HandleFunc("/api/genetics", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, []entity.Genetic{{ID: "g1"}, {ID: "g2"}, {ID: "g3"}})
	})
	mux.HandleFunc("/api/plants", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, []entity.Plant{
			{ID: "p1", Stage: entity.StageFlowering},
			{ID: "p2", Stage: entity.StageFlowering},
			{ID: "p3", Stage: entity.StageSeedling},
			{ID: "p4"},
		})
	})

	overview, err := newTestClient(t, mux).Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, overview.Users)
	assert.Equal(t, 1, overview.Roles)
	assert.Equal(t, 3, overview.Count(entity.KindGenetic))
	assert.Equal(t, 4, overview.Plants)
	assert.Equal(t, map[entity.PlantStage]int{
		entity.StageFlowering: 2,
		entity.StageSeedling:  1,
	}, overview.PlantsByStage)
}

func TestOverview_FirstErrorWins(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.URL.Path] = true
		mu.Unlock()
		if r.URL.Path == "/api/roles" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		select {
		case <-r.Context().Done():
		case <-time.After(50 * time.Millisecond):
		}
		_, _ = io.WriteString(w, "[]")
	}))

	_, err := client.Overview(context.Background())
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.Status)
	assert.False(t, errors.Is(err, context.Canceled))

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, seen["/api/roles"])
}

func newStore(t *testing.T) *cache.FileStore {
	t.Helper()
	store, err := cache.NewFileStore(t.TempDir(), true, time.Minute)
	require.NoError(t, err)
	return store
}
