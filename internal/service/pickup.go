package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/packeta/internal/apperr"
	"github.com/jask/packeta/internal/database/repository"
	"github.com/jask/packeta/internal/logger"
	"github.com/jask/packeta/internal/pickup"
)

// PickupService answers the storefront's pickup point lookups and records
// which point each cart uses.
type PickupService struct {
	Points     *repository.PickupPointRepo
	Selections *repository.CartSelectionRepo
	Log        *logger.Logger
}

// SelectInput is a selection as posted by the checkout widget.
type SelectInput struct {
	CartID             string
	PickupPointID      string
	PickupPointName    string
	PickupPointAddress string
}

// Selection is the stored association returned to the caller.
type Selection struct {
	ID          string
	CartID      string
	PickupPoint pickup.Point
}

// Search returns the points whose city matches city, ignoring case and
// diacritics. An empty city returns every point.
func (s *PickupService) Search(ctx context.Context, city string) ([]pickup.Point, error) {
	rows, err := s.Points.List(ctx)
	if err != nil {
		s.log().DatabaseError("list pickup points", err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not load pickup points", err).WithOp("Search")
	}
	term := foldCity(city)
	out := make([]pickup.Point, 0, len(rows))
	for _, r := range rows {
		if cityMatches(foldCity(r.City), term) {
			out = append(out, r.Point())
		}
	}
	return out, nil
}

// Select associates a pickup point with a cart, replacing any earlier choice.
func (s *PickupService) Select(ctx context.Context, in SelectInput) (Selection, error) {
	cartID := strings.TrimSpace(in.CartID)
	pointID := strings.TrimSpace(in.PickupPointID)
	if cartID == "" || pointID == "" {
		return Selection{}, apperr.Validation("cart_id and pickup_point_id are required").WithOp("Select")
	}

	row, err := s.Points.Get(ctx, pointID)
	if err != nil {
		s.log().DatabaseError("get pickup point", err)
		return Selection{}, apperr.Wrap(apperr.KindInternal, "could not load pickup point", err).WithOp("Select")
	}
	if row == nil {
		return Selection{}, apperr.NotFound(fmt.Sprintf("pickup point %s not found", pointID)).WithOp("Select")
	}
	point := row.Point()
	if in.PickupPointAddress != point.Address() {
		s.log().Warn("pickup_address_mismatch",
			"cart_id", cartID,
			"pickup_point_id", pointID,
			"posted", in.PickupPointAddress,
			"stored", point.Address(),
		)
	}

	stored, err := s.Selections.Upsert(ctx, repository.CartSelection{
		ID:                 uuid.NewString(),
		CartID:             cartID,
		PickupPointID:      pointID,
		PickupPointName:    in.PickupPointName,
		PickupPointAddress: in.PickupPointAddress,
	})
	if err != nil {
		s.log().DatabaseError("upsert cart selection", err)
		return Selection{}, apperr.Wrap(apperr.KindInternal, "could not save selection", err).WithOp("Select")
	}
	s.log().Info("pickup_point_selected", "cart_id", cartID, "pickup_point_id", pointID, "selection_id", stored.ID)
	return Selection{ID: stored.ID, CartID: cartID, PickupPoint: point}, nil
}

// SelectionFor returns the pickup point stored for cartID.
func (s *PickupService) SelectionFor(ctx context.Context, cartID string) (Selection, error) {
	sel, err := s.Selections.ByCart(ctx, cartID)
	if err != nil {
		s.log().DatabaseError("get cart selection", err)
		return Selection{}, apperr.Wrap(apperr.KindInternal, "could not load selection", err).WithOp("SelectionFor")
	}
	if sel == nil {
		return Selection{}, apperr.NotFound("no pickup point selected for cart").WithOp("SelectionFor")
	}
	row, err := s.Points.Get(ctx, sel.PickupPointID)
	if err != nil {
		return Selection{}, apperr.Wrap(apperr.KindInternal, "could not load pickup point", err).WithOp("SelectionFor")
	}
	if row == nil {
		return Selection{}, apperr.NotFound("selected pickup point no longer exists").WithOp("SelectionFor")
	}
	return Selection{ID: sel.ID, CartID: sel.CartID, PickupPoint: row.Point()}, nil
}

func (s *PickupService) log() *logger.Logger {
	if s.Log == nil {
		return logger.Discard()
	}
	return s.Log
}
