package widget

import (
	"strings"

	"github.com/jask/packeta/internal/pickup"
)

// Labels are the user-facing strings rendered by the widget.
type Labels struct {
	Heading           string
	Choose            string
	Change            string
	ModalTitle        string
	SearchPlaceholder string
	Loading           string
	Empty             string
	Saving            string
	LookupFailed      string
	SelectFailed      string
	Help              string
	Badges            pickup.BadgeLabels
}

// Czech is the storefront's default locale.
var Czech = Labels{
	Heading:           "Výběr výdejního místa Zásilkovny",
	Choose:            "Vyberte výdejní místo Zásilkovny",
	Change:            "Změnit",
	ModalTitle:        "Výběr výdejního místa",
	SearchPlaceholder: "Hledat podle města...",
	Loading:           "Načítání...",
	Empty:             "Žádná výdejní místa nenalezena",
	Saving:            "Ukládání...",
	LookupFailed:      "Výdejní místa se nepodařilo načíst.",
	SelectFailed:      "Výdejní místo se nepodařilo uložit.",
	Help:              "↑/↓ vybrat · enter potvrdit · esc zavřít",
	Badges: pickup.BadgeLabels{
		DressingRoom:      "👗 Zkušebna",
		ClaimAssistant:    "🛍️ Asistent reklamací",
		PacketConsignment: "📦 Balíkové zásilky",
	},
}

var English = Labels{
	Heading:           "Packeta pickup point",
	Choose:            "Choose a Packeta pickup point",
	Change:            "Change",
	ModalTitle:        "Choose a pickup point",
	SearchPlaceholder: "Search by city...",
	Loading:           "Loading...",
	Empty:             "No pickup points found",
	Saving:            "Saving...",
	LookupFailed:      "Could not load pickup points.",
	SelectFailed:      "Could not save the pickup point.",
	Help:              "↑/↓ move · enter select · esc close",
	Badges: pickup.BadgeLabels{
		DressingRoom:      "👗 Fitting room",
		ClaimAssistant:    "🛍️ Claims assistant",
		PacketConsignment: "📦 Parcel consignment",
	},
}

// LabelsFor returns the label set for a locale, defaulting to Czech.
func LabelsFor(locale string) Labels {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "en", "en-us", "en-gb", "english":
		return English
	default:
		return Czech
	}
}
