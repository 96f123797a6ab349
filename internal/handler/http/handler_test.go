package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/mock"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

type testAPI struct {
	router       *chi.Mux
	services     *service.ClientServices
	storages     *store.ClientStorages
	synchronizer *mock.MockSynchronizer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	ctx := context.Background()

	cfg := &config.ClientConfig{
		App: config.ClientApp{
			AutoResolveStrategy:   models.StrategyManual,
			ResolvedRetentionDays: 30,
			Version:               "1.4.0",
		},
		Adapter: config.ClientAdapter{SyncTimeout: 5 * time.Second},
		Storage: config.ClientStorage{
			DB:    config.ClientDB{DSN: filepath.Join(dir, "local.db")},
			State: config.ClientState{Driver: config.StateDriverMemory},
		},
		Workers: config.ClientWorkers{
			SyncInterval:    time.Hour,
			ProbeInterval:   time.Hour,
			CleanupInterval: time.Hour,
		},
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	synchronizer := mock.NewMockSynchronizer(ctrl)
	services, err := service.NewClientServices(ctx, storages, synchronizer, mock.NewMockProber(ctrl), cfg, logger.Nop())
	require.NoError(t, err)

	return &testAPI{
		router:       NewHandler(services, cfg.App, logger.Nop()).Init(),
		services:     services,
		storages:     storages,
		synchronizer: synchronizer,
	}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// seedConflict leaves one unresolved conflict on order/<id> and returns its id.
func (a *testAPI) seedConflict(t *testing.T, id string) string {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, a.storages.Entities.Upsert(ctx, "order", id, models.Record{"id": id, "status": "draft"}))
	require.True(t, a.services.PendingChanges.TrackLocalChange(ctx, "order", id, models.Record{"id": id, "status": "void"}))

	outcome := a.services.Reconciler.ApplyRemote(ctx, models.RemoteRecord{
		EntityType: "order",
		EntityID:   id,
		Snapshot: models.VersionSnapshot{
			Data:       models.Record{"id": id, "status": "sent"},
			ModifiedAt: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
			ModifiedBy: "office",
		},
	})
	require.Equal(t, service.ReconcileConflict, outcome)

	for _, c := range a.services.Conflicts.GetUnresolvedConflicts() {
		if c.EntityID == id {
			return c.ID
		}
	}
	t.Fatalf("no conflict for order/%s", id)
	return ""
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHandler_Version(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodGet, "/api/version", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1.4.0", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))

	rr = api.do(t, http.MethodDelete, "/api/version", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_SyncStatus(t *testing.T) {
	api := newTestAPI(t)
	api.seedConflict(t, "1")

	rr := api.do(t, http.MethodGet, "/api/sync/status", "")
	require.Equal(t, http.StatusOK, rr.Code)

	status := decode[models.SyncStatus](t, rr)
	assert.False(t, status.IsOnline)
	assert.Equal(t, 1, status.PendingChanges)
	assert.Equal(t, 1, status.Conflicts)
	assert.Nil(t, status.LastSyncAt)
}

func TestHandler_StartSync(t *testing.T) {
	t.Run("offline", func(t *testing.T) {
		api := newTestAPI(t)
		rr := api.do(t, http.MethodPost, "/api/sync", "")
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("online", func(t *testing.T) {
		api := newTestAPI(t)
		api.synchronizer.EXPECT().Pull(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		api.services.Connectivity.SetOnline(context.Background(), true)
		api.services.Connectivity.Stop()

		rr := api.do(t, http.MethodPost, "/api/sync", "")
		require.Equal(t, http.StatusOK, rr.Code)

		status := decode[models.SyncStatus](t, rr)
		assert.True(t, status.IsOnline)
		assert.NotNil(t, status.LastSyncAt)
		assert.False(t, status.SyncInProgress)
	})
}

func TestHandler_SetConnectivity(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodPut, "/api/connectivity", `{"online":false}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decode[models.SyncStatus](t, rr).IsOnline)

	rr = api.do(t, http.MethodPut, "/api/connectivity", `{"online":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(t, http.MethodGet, "/api/connectivity", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_PendingChanges(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"tracked", `{"entity_type":"order","entity_id":"7","data":{"status":"void"}}`, http.StatusAccepted},
		{"empty id", `{"entity_type":"order","entity_id":"","data":{}}`, http.StatusBadRequest},
		{"empty type", `{"entity_id":"8","data":{}}`, http.StatusBadRequest},
		{"no data", `{"entity_type":"order","entity_id":"8"}`, http.StatusBadRequest},
		{"malformed", `{"entity_type":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := api.do(t, http.MethodPost, "/api/pending", tt.body)
			assert.Equal(t, tt.want, rr.Code)
		})
	}

	rr := api.do(t, http.MethodGet, "/api/pending", "")
	require.Equal(t, http.StatusOK, rr.Code)

	changes := decode[[]models.PendingChange](t, rr)
	require.Len(t, changes, 1)
	assert.Equal(t, "order", changes[0].EntityType)
	assert.Equal(t, "7", changes[0].EntityID)
	assert.Equal(t, "void", changes[0].Data["status"])
}

func TestHandler_GetConflicts(t *testing.T) {
	api := newTestAPI(t)
	id := api.seedConflict(t, "1")

	rr := api.do(t, http.MethodGet, "/api/conflicts", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]models.ConflictRecord](t, rr), 1)

	rr = api.do(t, http.MethodGet, "/api/conflicts/unresolved", "")
	require.Equal(t, http.StatusOK, rr.Code)
	unresolved := decode[[]models.ConflictRecord](t, rr)
	require.Len(t, unresolved, 1)
	assert.Equal(t, id, unresolved[0].ID)

	rr = api.do(t, http.MethodGet, "/api/conflicts/"+id, "")
	require.Equal(t, http.StatusOK, rr.Code)
	conflict := decode[models.ConflictRecord](t, rr)
	assert.Equal(t, models.ConflictUnresolved, conflict.Status)
	require.Len(t, conflict.ConflictingFields, 1)
	assert.Equal(t, "status", conflict.ConflictingFields[0].Field)

	rr = api.do(t, http.MethodGet, "/api/conflicts/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_ResolveConflict(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus string
	}{
		{"keep local", "/resolve/local", "", "void"},
		{"keep remote", "/resolve/remote", "", "sent"},
		{"merge", "/resolve/merge", `{"data":{"id":"1","status":"cancelled"}}`, "cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			id := api.seedConflict(t, "1")

			rr := api.do(t, http.MethodPost, "/api/conflicts/"+id+tt.path, tt.body)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			resp := decode[models.ResolveResponse](t, rr)
			assert.Equal(t, id, resp.ConflictID)
			assert.Equal(t, tt.wantStatus, resp.Record["status"])

			rr = api.do(t, http.MethodPost, "/api/conflicts/"+id+tt.path, tt.body)
			assert.Equal(t, http.StatusConflict, rr.Code)

			rr = api.do(t, http.MethodPost, "/api/conflicts/missing"+tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

func TestHandler_ResolveWithMerge_BadBody(t *testing.T) {
	api := newTestAPI(t)
	id := api.seedConflict(t, "1")

	for _, body := range []string{"", `{}`, `{"data":{}}`, `{"data":`} {
		rr := api.do(t, http.MethodPost, "/api/conflicts/"+id+"/resolve/merge", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
	}

	_, ok := api.services.Conflicts.GetConflict(id)
	assert.True(t, ok)
	assert.Equal(t, 1, api.services.Conflicts.ConflictCount())
}

func TestHandler_ResolveAll(t *testing.T) {
	api := newTestAPI(t)
	api.seedConflict(t, "1")
	api.seedConflict(t, "2")

	rr := api.do(t, http.MethodPost, "/api/conflicts/resolve-all/remote", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, decode[models.CountResponse](t, rr).Count)

	rr = api.do(t, http.MethodPost, "/api/conflicts/resolve-all/local", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Zero(t, decode[models.CountResponse](t, rr).Count)

	rr = api.do(t, http.MethodGet, "/api/conflicts/history", "")
	require.Equal(t, http.StatusOK, rr.Code)
	history := decode[[]models.ConflictRecord](t, rr)
	require.Len(t, history, 2)
	for _, c := range history {
		assert.Equal(t, models.ResolutionRemote, c.Resolution)
	}
}

func TestHandler_ClearResolvedConflicts(t *testing.T) {
	api := newTestAPI(t)
	id := api.seedConflict(t, "1")
	api.seedConflict(t, "2")

	rr := api.do(t, http.MethodPost, "/api/conflicts/"+id+"/resolve/local", "")
	require.Equal(t, http.StatusOK, rr.Code)

	for _, q := range []string{"-1", "abc"} {
		rr = api.do(t, http.MethodDelete, "/api/conflicts/resolved?olderThanDays="+q, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, "olderThanDays=%s", q)
	}

	// default retention keeps a record resolved just now
	rr = api.do(t, http.MethodDelete, "/api/conflicts/resolved", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Zero(t, decode[models.CountResponse](t, rr).Count)

	rr = api.do(t, http.MethodDelete, "/api/conflicts/resolved?olderThanDays=0", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decode[models.CountResponse](t, rr).Count)

	assert.Len(t, api.services.Conflicts.GetConflicts(), 1)
	assert.Equal(t, 1, api.services.Conflicts.ConflictCount())
}

func TestHandler_AutoResolveSettings(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodGet, "/api/settings/auto-resolve", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.StrategyManual, decode[models.StrategyRequest](t, rr).Strategy)

	rr = api.do(t, http.MethodPut, "/api/settings/auto-resolve", `{"strategy":"remote-wins"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.StrategyRemoteWins, decode[models.StrategyRequest](t, rr).Strategy)

	rr = api.do(t, http.MethodPut, "/api/settings/auto-resolve", `{"strategy":"coin-flip"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, models.StrategyRemoteWins, api.services.Resolution.AutoResolveStrategy())

	// new conflicts are settled on arrival now
	ctx := context.Background()
	require.NoError(t, api.storages.Entities.Upsert(ctx, "order", "9", models.Record{"status": "draft"}))
	require.True(t, api.services.PendingChanges.TrackLocalChange(ctx, "order", "9", models.Record{"status": "void"}))
	api.services.Reconciler.ApplyRemote(ctx, models.RemoteRecord{
		EntityType: "order",
		EntityID:   "9",
		Snapshot:   models.VersionSnapshot{Data: models.Record{"status": "sent"}, ModifiedAt: time.Now()},
	})

	rr = api.do(t, http.MethodGet, "/api/conflicts/unresolved", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[[]models.ConflictRecord](t, rr))
}
