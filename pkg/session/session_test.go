package session

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/implx/pkg/fragment"
	"github.com/arthur-debert/implx/pkg/handoff"
	"github.com/arthur-debert/implx/pkg/metrics"
	"github.com/arthur-debert/implx/pkg/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nop = zerolog.Nop()

func frags() []*fragment.Fragment {
	return []*fragment.Fragment{
		fragment.New("a::A", types.Implementors{"crateA": {"x"}}),
		fragment.New("b::B", types.Implementors{"crateB": {"y"}}),
		fragment.New("c::C", types.Implementors{"crateC": {"z"}}),
	}
}

func TestInstallFirst(t *testing.T) {
	res, err := Run(frags(), Options{InstallAfter: 0, Logger: &nop})
	require.NoError(t, err)

	assert.Equal(t, []types.TraitPath{"a::A", "b::B", "c::C"}, res.Index.Traits())
	assert.Equal(t, 3, res.Report.Delivered)
	assert.Equal(t, 0, res.Report.Parked)
	assert.Equal(t, 0, res.Report.InstalledAt)
	assert.Empty(t, res.Report.Lost)
	assert.Empty(t, res.Report.Stranded)
}

func TestLateInstallSlotLosesEarlierFragments(t *testing.T) {
	res, err := Run(frags()[:2], Options{InstallAfter: 2, Logger: &nop})
	require.NoError(t, err)

	assert.Equal(t, []types.TraitPath{"b::B"}, res.Index.Traits())
	got, err := res.Index.Get("b::B")
	require.NoError(t, err)
	assert.Equal(t, types.Implementors{"crateB": {"y"}}, got)

	assert.Equal(t, 2, res.Report.Parked)
	assert.Equal(t, 1, res.Report.Overwritten)
	assert.Equal(t, []types.TraitPath{"a::A"}, res.Report.Lost)
	assert.Equal(t, 1, res.Report.Drained)
	assert.Equal(t, 1, res.Report.Delivered)
}

func TestMidInstall(t *testing.T) {
	res, err := Run(frags(), Options{InstallAfter: 1, Logger: &nop})
	require.NoError(t, err)

	assert.Equal(t, []types.TraitPath{"a::A", "b::B", "c::C"}, res.Index.Traits())
	assert.Equal(t, 1, res.Report.InstalledAt)
	assert.Equal(t, 1, res.Report.Drained)
}

func TestQueueModeKeepsEverything(t *testing.T) {
	res, err := Run(frags(), Options{Mode: handoff.ModeQueue, InstallAfter: 3, Logger: &nop})
	require.NoError(t, err)

	assert.Equal(t, []types.TraitPath{"a::A", "b::B", "c::C"}, res.Index.Traits())
	assert.Empty(t, res.Report.Lost)
	assert.Equal(t, 3, res.Report.Drained)
}

func TestNeverInstall(t *testing.T) {
	res, err := Run(frags(), Options{InstallAfter: Never, Logger: &nop})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Index.Len())
	assert.Equal(t, Never, res.Report.InstalledAt)
	assert.Equal(t, []types.TraitPath{"c::C"}, res.Report.Stranded)
	assert.Equal(t, []types.TraitPath{"a::A", "b::B"}, res.Report.Lost)
}

func TestNoDrainStrandsPending(t *testing.T) {
	res, err := Run(frags(), Options{InstallAfter: 1, NoDrain: true, Logger: &nop})
	require.NoError(t, err)

	assert.Equal(t, []types.TraitPath{"b::B", "c::C"}, res.Index.Traits())
	assert.Equal(t, []types.TraitPath{"a::A"}, res.Report.Stranded)
}

func TestInstallPastEnd(t *testing.T) {
	res, err := Run(frags(), Options{InstallAfter: 10, Logger: &nop})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Report.InstalledAt)
	assert.Equal(t, []types.TraitPath{"c::C"}, res.Index.Traits())
}

func TestSkipLibraryAndObservers(t *testing.T) {
	m := metrics.New()
	input := []*fragment.Fragment{
		fragment.New("core::ops::BitXor", types.Implementors{
			"ramp":  {"impl BitXor for Int"},
			"float": {"impl BitXor for Sign"},
		}),
	}

	res, err := Run(input, Options{SkipLibrary: "float", Observers: []handoff.Observer{m}, Logger: &nop})
	require.NoError(t, err)

	libs, err := res.Index.Libraries("core::ops::BitXor")
	require.NoError(t, err)
	assert.Equal(t, []string{"ramp"}, libs)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeliveriesTotal))
}

func TestEmptyPlayback(t *testing.T) {
	res, err := Run(nil, Options{Logger: &nop})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Report.InstalledAt)
	assert.Equal(t, 0, res.Index.Len())
}

func TestComponentLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := Run(frags()[:1], Options{InstallAfter: 0, Logger: &logger})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"component":"handoff","pending":0`)
	assert.Contains(t, out, `"component":"index","trait":"a::A"`)
	assert.NotContains(t, out, `"component":"session"`, "a caller logger is used as given")
}
