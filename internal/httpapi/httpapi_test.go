package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jask/packeta/internal/database"
	"github.com/jask/packeta/internal/database/repository"
	"github.com/jask/packeta/internal/pickup"
	"github.com/jask/packeta/internal/service"
	"github.com/jask/packeta/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestDeps(t *testing.T) (Deps, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "devserver.db")
	require.NoError(t, database.RunMigrations(path, ""))
	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedPickupPoints(context.Background(), db))

	svc := &service.PickupService{
		Points:     repository.NewPickupPointRepo(db),
		Selections: repository.NewCartSelectionRepo(db),
	}
	return Deps{Pickup: svc, Health: db, CORSOrigins: []string{"http://localhost:8000"}}, db
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListPickupPoints(t *testing.T) {
	deps, _ := newTestDeps(t)
	r := New(deps)

	rec := do(t, r, http.MethodGet, "/store/packeta/pickup-points?city=brno", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body PickupPointsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.PickupPoints, 2)
	for _, p := range body.PickupPoints {
		require.Equal(t, "Brno", p.City)
	}

	rec = do(t, r, http.MethodGet, "/store/packeta/pickup-points", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.PickupPoints, len(database.FixturePoints))

	rec = do(t, r, http.MethodGet, "/store/packeta/pickup-points?city=Atlantis", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"pickup_points":[]}`, rec.Body.String())
}

func TestSelectPickupPoint(t *testing.T) {
	deps, _ := newTestDeps(t)
	r := New(deps)

	rec := do(t, r, http.MethodPost, "/store/packeta/select-pickup-point", SelectPickupPointRequest{
		CartID:             "cart_01",
		PickupPointID:      "2001",
		PickupPointName:    "Brno, Hlavní nádraží",
		PickupPointAddress: "Nádražní 1, Brno 60200",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var sel SelectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sel))
	require.Equal(t, "cart_01", sel.CartID)
	require.Equal(t, "2001", sel.PickupPoint.ID)
	require.NotEmpty(t, sel.SelectionID)

	rec = do(t, r, http.MethodGet, "/store/packeta/carts/cart_01/pickup-point", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got SelectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, sel, got)
}

func TestSelectPickupPointErrors(t *testing.T) {
	deps, _ := newTestDeps(t)
	r := New(deps)

	rec := do(t, r, http.MethodPost, "/store/packeta/select-pickup-point", "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"invalid request body"}`, rec.Body.String())

	rec = do(t, r, http.MethodPost, "/store/packeta/select-pickup-point", SelectPickupPointRequest{
		CartID: " ", PickupPointID: "2001", PickupPointName: "n", PickupPointAddress: "a",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errBody struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	require.Equal(t, "validation failed", errBody.Error)
	require.Equal(t, []string{"cart_id: notblank"}, errBody.Details)

	rec = do(t, r, http.MethodPost, "/store/packeta/select-pickup-point", SelectPickupPointRequest{
		CartID: "cart", PickupPointID: "404", PickupPointName: "n", PickupPointAddress: "a",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, r, http.MethodGet, "/store/packeta/carts/nobody/pickup-point", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("down") }

func TestHealth(t *testing.T) {
	deps, _ := newTestDeps(t)
	rec := do(t, New(deps), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	deps.Health = failingPinger{}
	rec = do(t, New(deps), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRateLimit(t *testing.T) {
	deps, _ := newTestDeps(t)
	deps.RateLimit = 0.001
	deps.RateBurst = 2
	r := New(deps)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/health", nil).Code)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/health", nil).Code)
	rec := do(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestCORSAndRequestID(t *testing.T) {
	deps, _ := newTestDeps(t)
	r := New(deps)

	req := httptest.NewRequest(http.MethodOptions, "/store/packeta/select-pickup-point", nil)
	req.Header.Set("Origin", "http://localhost:8000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, "http://localhost:8000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, "req-123", rec.Header().Get(requestIDHeader))

	rec = do(t, r, http.MethodGet, "/health", nil)
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

// The checkout client and the dev backend agree on the wire format.
func TestStoreClientAgainstServer(t *testing.T) {
	deps, _ := newTestDeps(t)
	srv := httptest.NewServer(New(deps))
	defer srv.Close()

	ctx := context.Background()
	client := store.New(srv.URL+"/", nil, nil)

	points, err := client.ListPickupPoints(ctx, "Praha")
	require.NoError(t, err)
	require.Len(t, points, 3)

	var florenc pickup.Point
	for _, p := range points {
		if p.ID == "1001" {
			florenc = p
		}
	}
	require.Equal(t, "Křižíkova 2, Praha 18600", florenc.Address())
	require.NoError(t, client.SelectPickupPoint(ctx, store.NewSelectRequest("cart_e2e", florenc)))

	err = client.SelectPickupPoint(ctx, store.NewSelectRequest("cart_e2e", pickup.Point{ID: "missing", Name: "x", Street: "s", City: "c", Zip: "z"}))
	var statusErr *store.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}
