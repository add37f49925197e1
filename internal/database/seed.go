package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/packeta/internal/database/repository"
	"github.com/jask/packeta/internal/pickup"
)

// FixturePoints are the pickup points a fresh development database starts with.
var FixturePoints = []pickup.Point{
	{ID: "1001", Name: "Z-BOX Praha 8, Florenc", City: "Praha", Street: "Křižíkova 2", Zip: "18600", Country: "cz",
		Latitude: "50.0903", Longitude: "14.4395",
		Details: &pickup.Details{MaxWeight: 15, PacketConsignment: true}},
	{ID: "1002", Name: "Albert Praha 5, Anděl", City: "Praha", Street: "Nádražní 344/23", Zip: "15000", Country: "cz",
		Latitude: "50.0706", Longitude: "14.4036",
		Details: &pickup.Details{MaxWeight: 10, DressingRoom: true, ClaimAssistant: true, PacketConsignment: true}},
	{ID: "1003", Name: "Zásilkovna Praha 2, Vinohrady", City: "Praha", Street: "Vinohradská 48", Zip: "12000", Country: "cz",
		Details: &pickup.Details{MaxWeight: 10, DressingRoom: true, PacketConsignment: true}},
	{ID: "2001", Name: "Brno, Hlavní nádraží", City: "Brno", Street: "Nádražní 1", Zip: "60200", Country: "cz",
		Latitude: "49.1906", Longitude: "16.6129",
		Details: &pickup.Details{MaxWeight: 15, ClaimAssistant: true}},
	{ID: "2002", Name: "Trafika Brno, Královo Pole", City: "Brno", Street: "Palackého tř. 12", Zip: "61200", Country: "cz"},
	{ID: "3001", Name: "Ostrava, Nová Karolina", City: "Ostrava", Street: "Jantarová 3344/4", Zip: "70200", Country: "cz",
		Details: &pickup.Details{MaxWeight: 10, DressingRoom: true}},
	{ID: "4001", Name: "Plzeň, Náměstí Republiky", City: "Plzeň", Street: "náměstí Republiky 17", Zip: "30100", Country: "cz",
		Details: &pickup.Details{MaxWeight: 5}},
	{ID: "5001", Name: "České Budějovice, IGY", City: "České Budějovice", Street: "Pražská tř. 1247/24", Zip: "37004", Country: "cz",
		Details: &pickup.Details{MaxWeight: 10, PacketConsignment: true}},
	{ID: "6001", Name: "Bratislava, Aupark", City: "Bratislava", Street: "Einsteinova 18", Zip: "85101", Country: "sk",
		Details: &pickup.Details{MaxWeight: 10, DressingRoom: true, ClaimAssistant: true}},
}

// SeedPickupPoints loads FixturePoints into an empty database. It is
// idempotent and safe to run on every startup.
func SeedPickupPoints(ctx context.Context, db *sql.DB) error {
	repo := repository.NewPickupPointRepo(db)
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count pickup points: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, p := range FixturePoints {
		if err := repo.Upsert(ctx, repository.PickupPointFrom(p)); err != nil {
			return fmt.Errorf("seed pickup point %s: %w", p.ID, err)
		}
	}
	return nil
}
