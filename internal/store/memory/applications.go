package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"licensing/internal/application/models"
	id "licensing/pkg/domain"
	"licensing/pkg/platform/sentinel"
)

func (s *Store) FindLicenseClassByID(_ context.Context, classID id.LicenseClassID) (*models.LicenseClass, error) {
	c, ok := s.classes[classID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c.RequiredTests = slices.Clone(c.RequiredTests)
	return &c, nil
}

func (s *Store) ListLicenseClasses(ctx context.Context) ([]*models.LicenseClass, error) {
	classes := make([]*models.LicenseClass, 0, len(s.classes))
	for classID := range s.classes {
		c, _ := s.FindLicenseClassByID(ctx, classID)
		classes = append(classes, c)
	}
	slices.SortFunc(classes, func(a, b *models.LicenseClass) int { return cmp.Compare(a.ID, b.ID) })
	return classes, nil
}

func (s *Store) FindApplicationTypeByID(_ context.Context, typeID id.ApplicationTypeID) (*models.ApplicationType, error) {
	at, ok := s.appTypes[typeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &at, nil
}

func (s *Store) ListApplicationTypes(_ context.Context) ([]*models.ApplicationType, error) {
	types := make([]*models.ApplicationType, 0, len(s.appTypes))
	for _, at := range s.appTypes {
		types = append(types, &at)
	}
	slices.SortFunc(types, func(a, b *models.ApplicationType) int { return cmp.Compare(a.ID, b.ID) })
	return types, nil
}

func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	return s.write(ctx, func(t *tables) error {
		if _, ok := t.people[app.ApplicantPersonID]; !ok {
			return sentinel.ErrNotFound
		}
		t.seq.application++
		app.ID = id.ApplicationID(t.seq.application)
		t.applications[app.ID] = *app
		return nil
	})
}

func (s *Store) FindApplicationByID(ctx context.Context, appID id.ApplicationID) (*models.Application, error) {
	var found *models.Application
	err := s.read(ctx, func(t *tables) error {
		a, ok := t.applications[appID]
		if !ok {
			return sentinel.ErrNotFound
		}
		found = &a
		return nil
	})
	return found, err
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, appID id.ApplicationID, status models.Status, at time.Time) error {
	return s.write(ctx, func(t *tables) error {
		a, ok := t.applications[appID]
		if !ok {
			return sentinel.ErrNotFound
		}
		a.Status = status
		a.LastStatusDate = at
		t.applications[appID] = a
		return nil
	})
}

// CreateLocalApplication inserts the base application and its local extension.
// A person may hold only one open application per license class.
func (s *Store) CreateLocalApplication(ctx context.Context, app *models.LocalApplication) error {
	return s.write(ctx, func(t *tables) error {
		if _, ok := t.people[app.ApplicantPersonID]; !ok {
			return sentinel.ErrNotFound
		}
		if app.IsOpen() {
			for appID, row := range t.localApps {
				base := t.applications[appID]
				if base.IsOpen() && base.ApplicantPersonID == app.ApplicantPersonID && row.LicenseClassID == app.LicenseClassID {
					return sentinel.ErrConflict
				}
			}
		}
		t.seq.application++
		app.ID = id.ApplicationID(t.seq.application)
		t.applications[app.ID] = app.Application
		t.localApps[app.ID] = localRow{DriverID: app.DriverID, LicenseClassID: app.LicenseClassID}
		return nil
	})
}

func (s *Store) FindLocalApplicationByID(ctx context.Context, appID id.ApplicationID) (*models.LocalApplication, error) {
	var found *models.LocalApplication
	err := s.read(ctx, func(t *tables) error {
		row, ok := t.localApps[appID]
		if !ok {
			return sentinel.ErrNotFound
		}
		found = &models.LocalApplication{
			Application:    t.applications[appID],
			DriverID:       row.DriverID,
			LicenseClassID: row.LicenseClassID,
		}
		return nil
	})
	return found, err
}

// FindLocalApplicationForUpdate is FindLocalApplicationByID: the single writer
// already excludes concurrent transactions.
func (s *Store) FindLocalApplicationForUpdate(ctx context.Context, appID id.ApplicationID) (*models.LocalApplication, error) {
	return s.FindLocalApplicationByID(ctx, appID)
}
