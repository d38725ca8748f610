package metrics

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/implx/pkg/handoff"
	"github.com/arthur-debert/implx/pkg/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserveHandoff(t *testing.T) {
	m := New()
	h := handoff.New(handoff.WithObserver(m), handoff.WithLogger(zerolog.Nop()))

	h.Produce(types.Delivery{Trait: "a::A", Implementors: types.Implementors{"x": {"1"}}})
	h.Produce(types.Delivery{Trait: "b::B", Implementors: types.Implementors{"y": {"1", "2"}}})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ParkedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OverwrittenTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Pending))

	n, err := h.InstallAndDrain(handoff.ConsumerFunc(func(types.TraitPath, types.Implementors) {}))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	h.Produce(types.Delivery{Trait: "c::C", Implementors: types.Implementors{"z": {"1", "2", "3"}}})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DrainedTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Pending))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DeliveriesTotal))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.ImplementorsTotal))
}

func TestNewIsIndependent(t *testing.T) {
	// each Metrics owns its registry, so building two must not panic
	a, b := New(), New()
	a.Parked(types.Delivery{})

	assert.Equal(t, 1.0, testutil.ToFloat64(a.ParkedTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ParkedTotal))
	assert.NotSame(t, a.Registry(), b.Registry())
}

func TestWriteText(t *testing.T) {
	m := New()
	m.Delivered(types.Delivery{Trait: "a::A", Implementors: types.Implementors{"x": {"1"}}})

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "# TYPE implx_handoff_deliveries_total counter")
	assert.Contains(t, out, "implx_handoff_deliveries_total 1")
	assert.Contains(t, out, "implx_handoff_pending 0")
}
