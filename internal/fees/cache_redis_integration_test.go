//go:build integration

package fees_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	appmodels "licensing/internal/application/models"
	"licensing/internal/fees"
	"licensing/internal/fees/mocks"
	"licensing/internal/platform/metrics"
	id "licensing/pkg/domain"
	"licensing/pkg/money"
	"licensing/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis   *containers.RedisContainer
	ctrl    *gomock.Controller
	source  *mocks.MockSource
	metrics *metrics.Metrics
	cache   *fees.RedisCache
	ctx     context.Context
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.ctx = context.Background()
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
	s.ctrl = gomock.NewController(s.T())
	s.source = mocks.NewMockSource(s.ctrl)
	s.metrics = metrics.NewWithRegistry(prometheus.NewRegistry())
	s.cache = fees.NewRedisCache(s.source, s.redis.Client, fees.WithTTL(time.Minute), fees.WithCacheMetrics(s.metrics))
}

func (s *RedisCacheSuite) TestReadThrough() {
	s.source.EXPECT().FindApplicationTypeByID(gomock.Any(), appmodels.TypeNewInternational).
		Return(&appmodels.ApplicationType{ID: appmodels.TypeNewInternational, Title: "New International License", Fee: money.FromUnits(51)}, nil).
		Times(1)

	table := fees.NewTable(s.cache)
	for range 3 {
		fee, err := table.LookupFee(s.ctx, appmodels.TypeNewInternational)
		s.Require().NoError(err)
		s.Equal(money.FromUnits(51), fee)
	}

	s.Equal(float64(1), testutil.ToFloat64(s.metrics.FeeCacheLookups.WithLabelValues("miss")))
	s.Equal(float64(2), testutil.ToFloat64(s.metrics.FeeCacheLookups.WithLabelValues("hit")))
}

func (s *RedisCacheSuite) TestConcurrentMissesCollapse() {
	release := make(chan struct{})
	s.source.EXPECT().FindLicenseClassByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, id.LicenseClassID) (*appmodels.LicenseClass, error) {
			<-release
			return &appmodels.LicenseClass{ID: 3, Fee: money.FromUnits(20)}, nil
		}).
		MinTimes(1).MaxTimes(2)

	const goroutines = 20
	var wg sync.WaitGroup
	results := make(chan money.Amount, goroutines)
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := s.cache.FindLicenseClassByID(s.ctx, 3)
			if err == nil {
				results <- c.Fee
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	count := 0
	for fee := range results {
		s.Equal(money.FromUnits(20), fee)
		count++
	}
	s.Equal(goroutines, count)
}

func (s *RedisCacheSuite) TestInvalidate() {
	s.source.EXPECT().FindApplicationTypeByID(gomock.Any(), appmodels.TypeRenewLicense).
		Return(&appmodels.ApplicationType{ID: appmodels.TypeRenewLicense, Fee: money.FromUnits(7)}, nil).
		Times(2)

	_, err := s.cache.FindApplicationTypeByID(s.ctx, appmodels.TypeRenewLicense)
	s.Require().NoError(err)
	s.Require().NoError(s.cache.Invalidate(s.ctx))
	_, err = s.cache.FindApplicationTypeByID(s.ctx, appmodels.TypeRenewLicense)
	s.Require().NoError(err)
}
