package observe

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"

	"licensing/internal/platform/metrics"
	dErrors "licensing/pkg/domain-errors"
)

func TestOperation(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	tracer := noop.NewTracerProvider().Tracer("test")

	_, done := Operation(context.Background(), tracer, m, "license.detain")
	done(dErrors.New(dErrors.CodeAlreadyDetained, "license is already detained"))

	_, done = Operation(context.Background(), tracer, m, "license.detain")
	done(dErrors.Wrap(errors.New("io"), dErrors.CodePersistenceFailure, "failed"))

	_, done = Operation(context.Background(), tracer, m, "license.detain")
	done(nil)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RuleRejections.WithLabelValues("license.detain", string(dErrors.CodeAlreadyDetained))))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RuleRejections), "persistence failures are not rule rejections")
	assert.Equal(t, 1, testutil.CollectAndCount(m.OperationLatency))
}

func TestIsRuleRejection(t *testing.T) {
	assert.True(t, IsRuleRejection(dErrors.CodeNotDetained))
	assert.True(t, IsRuleRejection(dErrors.CodePrerequisitesNotMet))
	assert.False(t, IsRuleRejection(dErrors.CodePersistenceFailure))
	assert.False(t, IsRuleRejection(""))
}
