package repository

import (
	"context"
	"database/sql"
)

// CartSelectionRepo stores the pickup point chosen for each cart. A cart
// has at most one selection; choosing again replaces it.
type CartSelectionRepo struct {
	db *sql.DB
}

func NewCartSelectionRepo(db *sql.DB) *CartSelectionRepo { return &CartSelectionRepo{db: db} }

// Upsert records s for its cart and returns the stored row. The row id of
// an existing selection is kept.
func (r *CartSelectionRepo) Upsert(ctx context.Context, s CartSelection) (CartSelection, error) {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO cart_pickup_points(id, cart_id, pickup_point_id, pickup_point_name, pickup_point_address, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(cart_id) DO UPDATE SET
	 pickup_point_id=excluded.pickup_point_id,
	 pickup_point_name=excluded.pickup_point_name,
	 pickup_point_address=excluded.pickup_point_address,
	 updated_at=CURRENT_TIMESTAMP;
	`, s.ID, s.CartID, s.PickupPointID, s.PickupPointName, s.PickupPointAddress)
	if err != nil {
		return CartSelection{}, err
	}
	stored, err := r.ByCart(ctx, s.CartID)
	if err != nil {
		return CartSelection{}, err
	}
	if stored == nil {
		return CartSelection{}, sql.ErrNoRows
	}
	return *stored, nil
}

// ByCart returns the selection for cartID, or nil when there is none.
func (r *CartSelectionRepo) ByCart(ctx context.Context, cartID string) (*CartSelection, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, cart_id, pickup_point_id, pickup_point_name, pickup_point_address, created_at, updated_at
	FROM cart_pickup_points WHERE cart_id = ?`, cartID)
	var s CartSelection
	if err := row.Scan(&s.ID, &s.CartID, &s.PickupPointID, &s.PickupPointName, &s.PickupPointAddress, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
