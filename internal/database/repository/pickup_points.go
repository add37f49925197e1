package repository

import (
	"context"
	"database/sql"
)

// PickupPointRepo handles pickup points.
type PickupPointRepo struct {
	db *sql.DB
}

func NewPickupPointRepo(db *sql.DB) *PickupPointRepo { return &PickupPointRepo{db: db} }

const pickupPointColumns = `id, name, city, street, zip, country, latitude, longitude,
	has_details, max_weight, dressing_room, claim_assistant, packet_consignment, created_at, updated_at`

func (r *PickupPointRepo) Upsert(ctx context.Context, p PickupPoint) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO pickup_points(id, name, city, street, zip, country, latitude, longitude,
	 has_details, max_weight, dressing_room, claim_assistant, packet_consignment, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 city=excluded.city,
	 street=excluded.street,
	 zip=excluded.zip,
	 country=excluded.country,
	 latitude=excluded.latitude,
	 longitude=excluded.longitude,
	 has_details=excluded.has_details,
	 max_weight=excluded.max_weight,
	 dressing_room=excluded.dressing_room,
	 claim_assistant=excluded.claim_assistant,
	 packet_consignment=excluded.packet_consignment,
	 updated_at=CURRENT_TIMESTAMP;
	`, p.ID, p.Name, p.City, p.Street, p.Zip, p.Country, p.Latitude, p.Longitude,
		p.HasDetails, p.MaxWeight, p.DressingRoom, p.ClaimAssistant, p.PacketConsignment)
	return err
}

// List returns every pickup point ordered by city and name.
func (r *PickupPointRepo) List(ctx context.Context) ([]PickupPoint, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+pickupPointColumns+` FROM pickup_points ORDER BY city, name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PickupPoint
	for rows.Next() {
		p, err := scanPickupPoint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns the point with id, or nil when it does not exist.
func (r *PickupPointRepo) Get(ctx context.Context, id string) (*PickupPoint, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+pickupPointColumns+` FROM pickup_points WHERE id = ?`, id)
	p, err := scanPickupPoint(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PickupPointRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pickup_points`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPickupPoint(s scanner) (PickupPoint, error) {
	var p PickupPoint
	err := s.Scan(&p.ID, &p.Name, &p.City, &p.Street, &p.Zip, &p.Country, &p.Latitude, &p.Longitude,
		&p.HasDetails, &p.MaxWeight, &p.DressingRoom, &p.ClaimAssistant, &p.PacketConsignment,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}
