// Package server is the composition root: it builds the services over one
// store and exposes their HTTP handlers.
package server

import (
	"log/slog"

	apphandler "licensing/internal/application/handler"
	appservice "licensing/internal/application/service"
	"licensing/internal/fees"
	identityhandler "licensing/internal/identity/handler"
	identityservice "licensing/internal/identity/service"
	intlhandler "licensing/internal/international/handler"
	intlservice "licensing/internal/international/service"
	licensehandler "licensing/internal/license/handler"
	licenseservice "licensing/internal/license/service"
	"licensing/internal/platform/config"
	"licensing/internal/platform/metrics"
	testhandler "licensing/internal/testcenter/handler"
	testservice "licensing/internal/testcenter/service"
	httptransport "licensing/internal/transport/http"
	id "licensing/pkg/domain"
)

// Store is everything the services persist through. Both the memory and
// the Postgres store implement it.
type Store interface {
	identityservice.Store
	testservice.Store
	appservice.Store
	licenseservice.Store
	intlservice.Store
	fees.Source
}

type Services struct {
	Identity      *identityservice.Service
	Tests         *testservice.Service
	Applications  *appservice.Service
	Licenses      *licenseservice.Service
	International *intlservice.Service
}

// NewServices wires the services in dependency order.
func NewServices(store Store, schedule fees.Schedule, cfg config.Licensing, m *metrics.Metrics) *Services {
	identity := identityservice.New(store, identityservice.WithMetrics(m))
	tests := testservice.New(store, schedule, testservice.WithMetrics(m))
	licenses := licenseservice.New(store, schedule, tests, licenseservice.WithMetrics(m))
	return &Services{
		Identity:     identity,
		Tests:        tests,
		Licenses:     licenses,
		Applications: appservice.New(store, identity, tests, licenses, schedule, appservice.WithMetrics(m)),
		International: intlservice.New(store, schedule,
			intlservice.WithMetrics(m),
			intlservice.WithValidity(cfg.InternationalValidity),
			intlservice.WithEligibleClass(id.LicenseClassID(cfg.EligibleClassID)),
		),
	}
}

// Handlers returns one HTTP handler per context.
func (s *Services) Handlers(logger *slog.Logger) []httptransport.Registrar {
	return []httptransport.Registrar{
		identityhandler.New(s.Identity, logger),
		apphandler.New(s.Applications, logger),
		testhandler.New(s.Tests, logger),
		licensehandler.New(s.Licenses, logger),
		intlhandler.New(s.International, logger),
	}
}
