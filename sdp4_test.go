package sgp4

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	geoLine2     = "2 00005  34.2682 348.7242 0000000 331.7664  19.3264  1.00270000413667"
	molniyaLine2 = "2 00005  63.4000 180.0000 7000000 270.0000 180.0000  2.00561183000010"
)

func TestDeepSpaceClassifiesSynchronousResonance(t *testing.T) {
	state := mustPropagatorState(t, valladoLine1, geoLine2)
	require.Equal(t, RegimeDeepSpace, state.Regime())
	require.NotNil(t, state.deepSpace)
	require.Equal(t, ResonanceSynchronous, state.deepSpace.resonanceKind)
}

func TestDeepSpaceClassifiesSemiSynchronousResonance(t *testing.T) {
	state := mustPropagatorState(t, valladoLine1, molniyaLine2)
	require.Equal(t, RegimeDeepSpace, state.Regime())
	require.NotNil(t, state.deepSpace)
	require.Equal(t, ResonanceSemiSynchronous, state.deepSpace.resonanceKind)
}

func TestDeepSpacePropagationStaysFinite(t *testing.T) {
	for _, line2 := range []string{geoLine2, molniyaLine2} {
		state := mustPropagatorState(t, valladoLine1, line2)
		for _, tsince := range []float64{0, 360, 1440, 4320, -720} {
			got, err := state.Propagate(tsince)
			require.NoError(t, err)
			require.False(t, isNaNOrInf(got.Position.X))
			require.False(t, isNaNOrInf(got.Position.Y))
			require.False(t, isNaNOrInf(got.Position.Z))
			require.False(t, isNaNOrInf(got.Velocity.X))
			require.Greater(t, got.Position.Magnitude(), 0.0)
		}
	}
}

func TestDeepSpacePropagateWithCacheMatchesFreshCacheAtEpoch(t *testing.T) {
	state := mustPropagatorState(t, valladoLine1, geoLine2)

	fresh, err := state.Propagate(0.0)
	require.NoError(t, err)

	rc := state.NewResonanceCache()
	cached, err := state.PropagateWithCache(0.0, rc)
	require.NoError(t, err)

	require.InDelta(t, fresh.Position.X, cached.Position.X, 1e-6)
	require.InDelta(t, fresh.Position.Y, cached.Position.Y, 1e-6)
	require.InDelta(t, fresh.Position.Z, cached.Position.Z, 1e-6)
}

func TestDeepSpacePropagateWithCacheAdvancesMonotonically(t *testing.T) {
	state := mustPropagatorState(t, valladoLine1, molniyaLine2)
	rc := state.NewResonanceCache()

	_, err := state.PropagateWithCache(100.0, rc)
	require.NoError(t, err)
	firstAtime := rc.atime

	_, err = state.PropagateWithCache(200.0, rc)
	require.NoError(t, err)
	require.GreaterOrEqual(t, rc.atime, firstAtime)
}

func TestPropagateObservedReportsToObserver(t *testing.T) {
	state := mustPropagatorState(t, valladoLine1, geoLine2)
	obs := &recordingObserver{}
	_, err := state.PropagateObserved(100.0, nil, obs)
	require.NoError(t, err)
	require.Equal(t, 1, obs.calls)
	require.Equal(t, "deep_space", obs.regime)
}

type recordingObserver struct {
	calls  int
	regime string
}

func (r *recordingObserver) ObservePropagate(regime string, keplerIterations int, err error) {
	r.calls++
	r.regime = regime
}
