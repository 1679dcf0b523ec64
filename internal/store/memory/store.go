// Package memory is the in-process persistence backend. All tables live in one
// snapshot guarded by a single writer: RunInTx mutates a private copy and
// swaps it in on success, so readers never observe a half-applied operation
// and an aborted operation leaves no trace.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	appmodels "licensing/internal/application/models"
	identitymodels "licensing/internal/identity/models"
	intlmodels "licensing/internal/international/models"
	licensemodels "licensing/internal/license/models"
	"licensing/internal/store/reference"
	testmodels "licensing/internal/testcenter/models"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
)

const defaultTxTimeout = 5 * time.Second

type localRow struct {
	DriverID       id.DriverID
	LicenseClassID id.LicenseClassID
}

type sequences struct {
	person, driver, application, appointment, test, license, detain, international int64
}

type tables struct {
	people        map[id.PersonID]identitymodels.Person
	drivers       map[id.DriverID]identitymodels.Driver
	applications  map[id.ApplicationID]appmodels.Application
	localApps     map[id.ApplicationID]localRow
	appointments  map[id.AppointmentID]testmodels.Appointment
	tests         map[id.TestID]testmodels.Test
	licenses      map[id.LicenseID]licensemodels.License
	detains       map[id.DetainID]licensemodels.Detain
	international map[id.InternationalLicenseID]intlmodels.License
	seq           sequences
}

func newTables() *tables {
	return &tables{
		people:        make(map[id.PersonID]identitymodels.Person),
		drivers:       make(map[id.DriverID]identitymodels.Driver),
		applications:  make(map[id.ApplicationID]appmodels.Application),
		localApps:     make(map[id.ApplicationID]localRow),
		appointments:  make(map[id.AppointmentID]testmodels.Appointment),
		tests:         make(map[id.TestID]testmodels.Test),
		licenses:      make(map[id.LicenseID]licensemodels.License),
		detains:       make(map[id.DetainID]licensemodels.Detain),
		international: make(map[id.InternationalLicenseID]intlmodels.License),
	}
}

// clone copies every table. Row values are plain structs; pointer fields are
// never mutated in place (updates replace the whole row), so a shallow map
// copy is enough to isolate the snapshot.
func (t *tables) clone() *tables {
	return &tables{
		people:        maps.Clone(t.people),
		drivers:       maps.Clone(t.drivers),
		applications:  maps.Clone(t.applications),
		localApps:     maps.Clone(t.localApps),
		appointments:  maps.Clone(t.appointments),
		tests:         maps.Clone(t.tests),
		licenses:      maps.Clone(t.licenses),
		detains:       maps.Clone(t.detains),
		international: maps.Clone(t.international),
		seq:           t.seq,
	}
}

// Store implements every store interface the licensing services declare.
type Store struct {
	writeMu   sync.Mutex
	mu        sync.RWMutex
	committed *tables
	timeout   time.Duration

	appTypes  map[id.ApplicationTypeID]appmodels.ApplicationType
	classes   map[id.LicenseClassID]appmodels.LicenseClass
	testTypes map[id.TestTypeID]testmodels.TestType
}

type Option func(*Store)

// WithTxTimeout bounds RunInTx when the caller context has no deadline.
func WithTxTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

// New returns an empty store seeded with the reference tables.
func New(opts ...Option) *Store {
	s := &Store{
		committed: newTables(),
		appTypes:  make(map[id.ApplicationTypeID]appmodels.ApplicationType),
		classes:   make(map[id.LicenseClassID]appmodels.LicenseClass),
		testTypes: make(map[id.TestTypeID]testmodels.TestType),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, at := range reference.ApplicationTypes() {
		s.appTypes[at.ID] = at
	}
	for _, c := range reference.LicenseClasses() {
		s.classes[c.ID] = c
	}
	for _, tt := range reference.TestTypes() {
		s.testTypes[tt.ID] = tt
	}
	return s
}

type txKey struct{}

type memTx struct {
	t *tables
}

// RunInTx executes fn as one atomic unit. A call made with a context that is
// already inside a transaction joins it.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*memTx); ok {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := s.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	s.mu.RLock()
	work := s.committed.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, &memTx{t: work})); err != nil {
		return err
	}
	// An abandoned caller must not see its work committed behind its back.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	s.mu.Lock()
	s.committed = work
	s.mu.Unlock()
	return nil
}

// read runs fn against the transaction snapshot when ctx carries one, or
// against the committed tables otherwise.
func (s *Store) read(ctx context.Context, fn func(t *tables) error) error {
	if tx, ok := ctx.Value(txKey{}).(*memTx); ok {
		return fn(tx.t)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.committed)
}

// write runs fn inside the current transaction, opening one if needed.
func (s *Store) write(ctx context.Context, fn func(t *tables) error) error {
	return s.RunInTx(ctx, func(ctx context.Context) error {
		return fn(ctx.Value(txKey{}).(*memTx).t)
	})
}
