package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"licensing/internal/identity/models"
	id "licensing/pkg/domain"
	"licensing/pkg/platform/sentinel"
)

// CreatePerson inserts a person, assigning its ID. National IDs are unique
// regardless of case.
func (s *Store) CreatePerson(ctx context.Context, person *models.Person) error {
	return s.write(ctx, func(t *tables) error {
		for _, existing := range t.people {
			if strings.EqualFold(existing.NationalID, person.NationalID) {
				return sentinel.ErrConflict
			}
		}
		t.seq.person++
		person.ID = id.PersonID(t.seq.person)
		t.people[person.ID] = *person
		return nil
	})
}

func (s *Store) UpdatePerson(ctx context.Context, person *models.Person) error {
	return s.write(ctx, func(t *tables) error {
		if _, ok := t.people[person.ID]; !ok {
			return sentinel.ErrNotFound
		}
		for _, existing := range t.people {
			if existing.ID != person.ID && strings.EqualFold(existing.NationalID, person.NationalID) {
				return sentinel.ErrConflict
			}
		}
		t.people[person.ID] = *person
		return nil
	})
}

func (s *Store) FindPersonByID(ctx context.Context, personID id.PersonID) (*models.Person, error) {
	var found *models.Person
	err := s.read(ctx, func(t *tables) error {
		p, ok := t.people[personID]
		if !ok {
			return sentinel.ErrNotFound
		}
		found = &p
		return nil
	})
	return found, err
}

func (s *Store) FindPersonByNationalID(ctx context.Context, nationalID string) (*models.Person, error) {
	var found *models.Person
	err := s.read(ctx, func(t *tables) error {
		for _, p := range t.people {
			if strings.EqualFold(p.NationalID, nationalID) {
				found = &p
				return nil
			}
		}
		return sentinel.ErrNotFound
	})
	return found, err
}

func (s *Store) ListPeople(ctx context.Context) ([]*models.Person, error) {
	var people []*models.Person
	err := s.read(ctx, func(t *tables) error {
		people = make([]*models.Person, 0, len(t.people))
		for _, p := range t.people {
			people = append(people, &p)
		}
		return nil
	})
	slices.SortFunc(people, func(a, b *models.Person) int { return cmp.Compare(a.ID, b.ID) })
	return people, err
}

// CreateDriver enrolls a person as a driver. A person has at most one driver record.
func (s *Store) CreateDriver(ctx context.Context, driver *models.Driver) error {
	return s.write(ctx, func(t *tables) error {
		if _, ok := t.people[driver.PersonID]; !ok {
			return sentinel.ErrNotFound
		}
		for _, existing := range t.drivers {
			if existing.PersonID == driver.PersonID {
				return sentinel.ErrConflict
			}
		}
		t.seq.driver++
		driver.ID = id.DriverID(t.seq.driver)
		t.drivers[driver.ID] = *driver
		return nil
	})
}

func (s *Store) FindDriverByID(ctx context.Context, driverID id.DriverID) (*models.Driver, error) {
	var found *models.Driver
	err := s.read(ctx, func(t *tables) error {
		d, ok := t.drivers[driverID]
		if !ok {
			return sentinel.ErrNotFound
		}
		found = &d
		return nil
	})
	return found, err
}

func (s *Store) FindDriverByPersonID(ctx context.Context, personID id.PersonID) (*models.Driver, error) {
	var found *models.Driver
	err := s.read(ctx, func(t *tables) error {
		for _, d := range t.drivers {
			if d.PersonID == personID {
				found = &d
				return nil
			}
		}
		return sentinel.ErrNotFound
	})
	return found, err
}
