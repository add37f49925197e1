package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/packeta/internal/database"
)

// MaintenanceService houses destructive actions exposed by the dev server.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes cart selections and pickup points and reseeds the fixtures.
// The schema is kept so the server can continue running.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"cart_pickup_points", "pickup_points"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	return database.SeedPickupPoints(ctx, s.DB)
}
