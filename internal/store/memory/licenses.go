package memory

import (
	"cmp"
	"context"
	"slices"

	"licensing/internal/license/models"
	id "licensing/pkg/domain"
	"licensing/pkg/platform/sentinel"
)

// CreateLicense inserts a license. A driver holds at most one live license
// per class; a second one is a conflict.
func (s *Store) CreateLicense(ctx context.Context, license *models.License) error {
	return s.write(ctx, func(t *tables) error {
		if _, ok := t.drivers[license.DriverID]; !ok {
			return sentinel.ErrNotFound
		}
		if license.IsLive() && liveLicenseExists(t, license.DriverID, license.LicenseClassID, 0) {
			return sentinel.ErrConflict
		}
		t.seq.license++
		license.ID = id.LicenseID(t.seq.license)
		t.licenses[license.ID] = *license
		return nil
	})
}

func (s *Store) FindLicenseByID(ctx context.Context, licenseID id.LicenseID) (*models.License, error) {
	var found *models.License
	err := s.read(ctx, func(t *tables) error {
		l, ok := t.licenses[licenseID]
		if !ok {
			return sentinel.ErrNotFound
		}
		found = &l
		return nil
	})
	return found, err
}

func (s *Store) FindLicenseForUpdate(ctx context.Context, licenseID id.LicenseID) (*models.License, error) {
	return s.FindLicenseByID(ctx, licenseID)
}

func (s *Store) UpdateLicense(ctx context.Context, license *models.License) error {
	return s.write(ctx, func(t *tables) error {
		if _, ok := t.licenses[license.ID]; !ok {
			return sentinel.ErrNotFound
		}
		if license.IsLive() && liveLicenseExists(t, license.DriverID, license.LicenseClassID, license.ID) {
			return sentinel.ErrConflict
		}
		t.licenses[license.ID] = *license
		return nil
	})
}

// FindLiveLicense returns the driver's active or detained license of a class.
func (s *Store) FindLiveLicense(ctx context.Context, driverID id.DriverID, classID id.LicenseClassID) (*models.License, error) {
	var found *models.License
	err := s.read(ctx, func(t *tables) error {
		for _, l := range t.licenses {
			if l.DriverID == driverID && l.LicenseClassID == classID && l.IsLive() {
				found = &l
				return nil
			}
		}
		return sentinel.ErrNotFound
	})
	return found, err
}

func (s *Store) ListLicensesByDriver(ctx context.Context, driverID id.DriverID) ([]*models.License, error) {
	var out []*models.License
	err := s.read(ctx, func(t *tables) error {
		for _, l := range t.licenses {
			if l.DriverID == driverID {
				out = append(out, &l)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *models.License) int { return cmp.Compare(a.ID, b.ID) })
	return out, err
}

func liveLicenseExists(t *tables, driverID id.DriverID, classID id.LicenseClassID, except id.LicenseID) bool {
	for _, l := range t.licenses {
		if l.ID != except && l.DriverID == driverID && l.LicenseClassID == classID && l.IsLive() {
			return true
		}
	}
	return false
}

// CreateDetain opens a detain. A license has at most one open detain.
func (s *Store) CreateDetain(ctx context.Context, detain *models.Detain) error {
	return s.write(ctx, func(t *tables) error {
		if _, ok := t.licenses[detain.LicenseID]; !ok {
			return sentinel.ErrNotFound
		}
		for _, existing := range t.detains {
			if existing.LicenseID == detain.LicenseID && existing.IsOpen() {
				return sentinel.ErrConflict
			}
		}
		t.seq.detain++
		detain.ID = id.DetainID(t.seq.detain)
		t.detains[detain.ID] = copyDetain(*detain)
		return nil
	})
}

func (s *Store) FindOpenDetain(ctx context.Context, licenseID id.LicenseID) (*models.Detain, error) {
	var found *models.Detain
	err := s.read(ctx, func(t *tables) error {
		for _, d := range t.detains {
			if d.LicenseID == licenseID && d.IsOpen() {
				d = copyDetain(d)
				found = &d
				return nil
			}
		}
		return sentinel.ErrNotFound
	})
	return found, err
}

func (s *Store) UpdateDetain(ctx context.Context, detain *models.Detain) error {
	return s.write(ctx, func(t *tables) error {
		if _, ok := t.detains[detain.ID]; !ok {
			return sentinel.ErrNotFound
		}
		t.detains[detain.ID] = copyDetain(*detain)
		return nil
	})
}

func (s *Store) ListDetains(ctx context.Context) ([]*models.Detain, error) {
	var out []*models.Detain
	err := s.read(ctx, func(t *tables) error {
		for _, d := range t.detains {
			d = copyDetain(d)
			out = append(out, &d)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *models.Detain) int { return cmp.Compare(a.ID, b.ID) })
	return out, err
}

func copyDetain(d models.Detain) models.Detain {
	if d.ReleaseDate != nil {
		v := *d.ReleaseDate
		d.ReleaseDate = &v
	}
	if d.ReleasedBy != nil {
		v := *d.ReleasedBy
		d.ReleasedBy = &v
	}
	if d.ReleaseApplicationID != nil {
		v := *d.ReleaseApplicationID
		d.ReleaseApplicationID = &v
	}
	return d
}
