package memory

import (
	"cmp"
	"context"
	"slices"

	"licensing/internal/international/models"
	id "licensing/pkg/domain"
	"licensing/pkg/platform/sentinel"
)

// CreateInternationalLicense inserts an international license. A driver has
// at most one active international license.
func (s *Store) CreateInternationalLicense(ctx context.Context, license *models.License) error {
	return s.write(ctx, func(t *tables) error {
		if _, ok := t.licenses[license.IssuedUsingLocalLicenseID]; !ok {
			return sentinel.ErrNotFound
		}
		if license.IsActive {
			for _, existing := range t.international {
				if existing.DriverID == license.DriverID && existing.IsActive {
					return sentinel.ErrConflict
				}
			}
		}
		t.seq.international++
		license.ID = id.InternationalLicenseID(t.seq.international)
		t.international[license.ID] = *license
		return nil
	})
}

func (s *Store) FindInternationalLicenseByID(ctx context.Context, licenseID id.InternationalLicenseID) (*models.License, error) {
	var found *models.License
	err := s.read(ctx, func(t *tables) error {
		l, ok := t.international[licenseID]
		if !ok {
			return sentinel.ErrNotFound
		}
		found = &l
		return nil
	})
	return found, err
}

func (s *Store) ListInternationalLicensesByDriver(ctx context.Context, driverID id.DriverID) ([]*models.License, error) {
	var out []*models.License
	err := s.read(ctx, func(t *tables) error {
		for _, l := range t.international {
			if l.DriverID == driverID {
				out = append(out, &l)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *models.License) int { return cmp.Compare(a.ID, b.ID) })
	return out, err
}

// DeactivateInternationalLicenses clears the active flag on every
// international license of the driver and reports how many changed.
func (s *Store) DeactivateInternationalLicenses(ctx context.Context, driverID id.DriverID) (int, error) {
	changed := 0
	err := s.write(ctx, func(t *tables) error {
		for licenseID, l := range t.international {
			if l.DriverID == driverID && l.IsActive {
				l.IsActive = false
				t.international[licenseID] = l
				changed++
			}
		}
		return nil
	})
	return changed, err
}
