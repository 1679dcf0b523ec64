package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	intlmodels "licensing/internal/international/models"
	"licensing/internal/license/models"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
)

// History is every license a driver has held, local and international.
type History struct {
	DriverID      id.DriverID           `json:"driver_id"`
	Local         []*models.License     `json:"local"`
	International []*intlmodels.License `json:"international"`
}

// Variants returns both kinds as one list for status checks.
func (h *History) Variants() []models.Variant {
	out := make([]models.Variant, 0, len(h.Local)+len(h.International))
	for _, l := range h.Local {
		out = append(out, l)
	}
	for _, l := range h.International {
		out = append(out, l)
	}
	return out
}

// DriverLicenseHistory loads the local and international licenses of a
// driver concurrently.
func (s *Service) DriverLicenseHistory(ctx context.Context, driverID id.DriverID) (*History, error) {
	if _, err := s.store.FindDriverByID(ctx, driverID); err != nil {
		return nil, notFoundOr(err, "driver not found", "failed to load driver")
	}
	h := &History{DriverID: driverID}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		local, err := s.store.ListLicensesByDriver(gctx, driverID)
		if err != nil {
			return dErrors.Persistence(err, "failed to list local licenses")
		}
		h.Local = local
		return nil
	})
	g.Go(func() error {
		intl, err := s.store.ListInternationalLicensesByDriver(gctx, driverID)
		if err != nil {
			return dErrors.Persistence(err, "failed to list international licenses")
		}
		h.International = intl
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return h, nil
}
