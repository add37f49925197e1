// Package pickup holds the pickup point value object shared by the widget,
// the store client and the development backend.
package pickup

import (
	"fmt"
	"strings"
)

// Point is a Packeta pickup location as returned by the store backend.
type Point struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	Street    string   `json:"street"`
	Zip       string   `json:"zip"`
	Country   string   `json:"country"`
	Latitude  string   `json:"latitude,omitempty"`
	Longitude string   `json:"longitude,omitempty"`
	Details   *Details `json:"details,omitempty"`
}

// Details carries the optional capability flags of a point.
type Details struct {
	MaxWeight         float64 `json:"max_weight,omitempty"`
	DressingRoom      bool    `json:"dressingRoom,omitempty"`
	ClaimAssistant    bool    `json:"claimAssistant,omitempty"`
	PacketConsignment bool    `json:"packetConsignment,omitempty"`
}

// FormatAddress renders "{street}, {city} {zip}".
func FormatAddress(street, city, zip string) string {
	return fmt.Sprintf("%s, %s %s", street, city, zip)
}

// Address is the single-line address used in the summary, the list rows and
// the selection payload.
func (p Point) Address() string {
	return FormatAddress(p.Street, p.City, p.Zip)
}

// HasCoordinates reports whether both latitude and longitude were supplied.
func (p Point) HasCoordinates() bool {
	return strings.TrimSpace(p.Latitude) != "" && strings.TrimSpace(p.Longitude) != ""
}

// BadgeLabels are the indicator strings for the capability flags.
type BadgeLabels struct {
	DressingRoom      string
	ClaimAssistant    string
	PacketConsignment string
}

// Badges joins the indicators of the flags that are set, in fixed order
// (fitting room, claims assistant, parcel consignment), separated by a single
// space. It returns "" when no flag applies.
func (p Point) Badges(l BadgeLabels) string {
	if p.Details == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	if p.Details.DressingRoom {
		parts = append(parts, l.DressingRoom)
	}
	if p.Details.ClaimAssistant {
		parts = append(parts, l.ClaimAssistant)
	}
	if p.Details.PacketConsignment {
		parts = append(parts, l.PacketConsignment)
	}
	return strings.Join(parts, " ")
}
