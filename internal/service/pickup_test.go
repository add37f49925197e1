package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/packeta/internal/apperr"
	"github.com/jask/packeta/internal/database"
	"github.com/jask/packeta/internal/database/repository"
	"github.com/jask/packeta/internal/pickup"
)

func setup(t *testing.T) (*PickupService, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "devserver.db")
	require.NoError(t, database.RunMigrations(path, ""))
	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedPickupPoints(context.Background(), db))

	return &PickupService{
		Points:     repository.NewPickupPointRepo(db),
		Selections: repository.NewCartSelectionRepo(db),
	}, db
}

func ids(points []pickup.Point) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		out = append(out, p.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, len(database.FixturePoints))

	cases := map[string][]string{
		"Praha":    {"1002", "1003", "1001"},
		"  PRAHA ": {"1002", "1003", "1001"},
		"plzen":    {"4001"},
		"brn":      {"2001", "2002"},
		"Brnp":     {"2001", "2002"},
		"ceske":    {"5001"},
		"Prahs":    {"1002", "1003", "1001"},
		"xyz":      {},
		"Pr":       {"1002", "1003", "1001"},
	}
	for term, want := range cases {
		got, err := svc.Search(ctx, term)
		require.NoError(t, err, term)
		require.ElementsMatch(t, want, ids(got), term)
	}
}

func TestCityMatches(t *testing.T) {
	cases := []struct {
		city, term string
		want       bool
	}{
		{"praha", "", true},
		{"praha", "pra", true},
		{"praha", "prx", false},
		{"praha", "prxha", true},
		{"praha", "prahaa", true},
		{"ostrava", "ostrv", true},
		{"brno", "bmx", false},
		{"ceske budejovice", "ceske b", true},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, cityMatches(tc.city, tc.term), "%s/%s", tc.city, tc.term)
	}
	require.Equal(t, "plzen", foldCity(" Plzeň"))
	require.Equal(t, "ceske budejovice", foldCity("České Budějovice"))
}

func TestSelect(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	first, err := svc.Select(ctx, SelectInput{
		CartID:             "cart_01",
		PickupPointID:      "1001",
		PickupPointName:    "Z-BOX Praha 8, Florenc",
		PickupPointAddress: "Křižíkova 2, Praha 18600",
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.Equal(t, "1001", first.PickupPoint.ID)

	second, err := svc.Select(ctx, SelectInput{
		CartID:             "cart_01",
		PickupPointID:      "2001",
		PickupPointName:    "Brno, Hlavní nádraží",
		PickupPointAddress: "Nádražní 1, Brno 60200",
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	current, err := svc.SelectionFor(ctx, "cart_01")
	require.NoError(t, err)
	require.Equal(t, "2001", current.PickupPoint.ID)
}

func TestSelectErrors(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Select(ctx, SelectInput{CartID: "cart", PickupPointID: "missing"})
	require.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.Select(ctx, SelectInput{CartID: " ", PickupPointID: "1001"})
	require.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.SelectionFor(ctx, "unknown")
	require.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestMaintenanceReset(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()

	_, err := svc.Select(ctx, SelectInput{CartID: "cart", PickupPointID: "3001", PickupPointAddress: "Jantarová 3344/4, Ostrava 70200"})
	require.NoError(t, err)

	m := &MaintenanceService{DB: db}
	require.NoError(t, m.Reset(ctx))

	_, err = svc.SelectionFor(ctx, "cart")
	require.True(t, apperr.Is(err, apperr.KindNotFound))
	n, err := svc.Points.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, len(database.FixturePoints), n)

	require.Error(t, (&MaintenanceService{}).Reset(ctx))
}
