package repository

import (
	"database/sql"
	"time"

	"github.com/jask/packeta/internal/pickup"
)

// PickupPoint represents a pickup_points row.
type PickupPoint struct {
	ID                string
	Name              string
	City              string
	Street            string
	Zip               string
	Country           string
	Latitude          sql.NullString
	Longitude         sql.NullString
	HasDetails        bool
	MaxWeight         float64
	DressingRoom      bool
	ClaimAssistant    bool
	PacketConsignment bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CartSelection represents a cart_pickup_points row.
type CartSelection struct {
	ID                 string
	CartID             string
	PickupPointID      string
	PickupPointName    string
	PickupPointAddress string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Point converts the row to the wire type.
func (r PickupPoint) Point() pickup.Point {
	p := pickup.Point{
		ID:        r.ID,
		Name:      r.Name,
		City:      r.City,
		Street:    r.Street,
		Zip:       r.Zip,
		Country:   r.Country,
		Latitude:  r.Latitude.String,
		Longitude: r.Longitude.String,
	}
	if r.HasDetails {
		p.Details = &pickup.Details{
			MaxWeight:         r.MaxWeight,
			DressingRoom:      r.DressingRoom,
			ClaimAssistant:    r.ClaimAssistant,
			PacketConsignment: r.PacketConsignment,
		}
	}
	return p
}

// PickupPointFrom builds a row from the wire type.
func PickupPointFrom(p pickup.Point) PickupPoint {
	r := PickupPoint{
		ID:        p.ID,
		Name:      p.Name,
		City:      p.City,
		Street:    p.Street,
		Zip:       p.Zip,
		Country:   p.Country,
		Latitude:  sql.NullString{String: p.Latitude, Valid: p.Latitude != ""},
		Longitude: sql.NullString{String: p.Longitude, Valid: p.Longitude != ""},
	}
	if r.Country == "" {
		r.Country = "cz"
	}
	if d := p.Details; d != nil {
		r.HasDetails = true
		r.MaxWeight = d.MaxWeight
		r.DressingRoom = d.DressingRoom
		r.ClaimAssistant = d.ClaimAssistant
		r.PacketConsignment = d.PacketConsignment
	}
	return r
}
