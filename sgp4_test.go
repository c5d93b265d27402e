package sgp4

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// valladoLine1/valladoLine2 are satellite 00005 from Vallado's "Revisiting
// Spacetrack Report #3" (AIAA 2006-6753): the canonical near-earth
// regression vector, reused across several test files in this package.
const (
	valladoLine1 = "1 00005U 58002B   00179.78495062  .00000023  00000-0  28098-4 0  4753"
	valladoLine2 = "2 00005  34.2682 348.7242 1859667 331.7664  19.3264 10.82419157413667"
)

func mustPropagatorState(t *testing.T, line1, line2 string) *PropagatorState {
	t.Helper()
	tle, err := DecodeTLE("test", line1, line2)
	require.NoError(t, err)
	state, err := NewPropagatorState(tle, WGS72)
	require.NoError(t, err)
	return state
}

// positionTolerance/velocityTolerance are the AIAA 2006-6753 reference
// tolerances: the maximum absolute error an implementation may exhibit
// against the published *.e files.
const (
	positionTolerance = 0.001
	velocityTolerance = 1e-6
)

func requireState(t *testing.T, got SatelliteState, px, py, pz, vx, vy, vz float64) {
	t.Helper()
	require.InDelta(t, px, got.Position.X, positionTolerance)
	require.InDelta(t, py, got.Position.Y, positionTolerance)
	require.InDelta(t, pz, got.Position.Z, positionTolerance)
	require.InDelta(t, vx, got.Velocity.X, velocityTolerance)
	require.InDelta(t, vy, got.Velocity.Y, velocityTolerance)
	require.InDelta(t, vz, got.Velocity.Z, velocityTolerance)
}

func TestPropagateSatellite00005AtEpoch(t *testing.T) {
	state := mustPropagatorState(t, valladoLine1, valladoLine2)
	require.Equal(t, RegimeNearEarth, state.Regime())

	got, err := state.Propagate(0.0)
	require.NoError(t, err)
	requireState(t, got,
		7022.46529, -1400.08297, 0.03995,
		1.893841015, 6.405893759, 4.534807250)
}

func TestPropagateSatellite06251WithDrag(t *testing.T) {
	const (
		line1 = "1 06251U 62025E   06176.82412014  .00008885  00000-0  12808-3 0  3985"
		line2 = "2 06251  58.0579  54.0425 0030035 139.1568 221.1854 15.56387291  6774"
	)
	state := mustPropagatorState(t, line1, line2)
	require.Equal(t, RegimeNearEarth, state.Regime())

	atEpoch, err := state.Propagate(0.0)
	require.NoError(t, err)
	require.InDelta(t, 3988.31023, atEpoch.Position.X, positionTolerance)
	require.InDelta(t, 5498.96657, atEpoch.Position.Y, positionTolerance)
	require.InDelta(t, 0.90056, atEpoch.Position.Z, positionTolerance)

	at120, err := state.Propagate(120.0)
	require.NoError(t, err)
	require.InDelta(t, -3935.69800, at120.Position.X, positionTolerance)
	require.InDelta(t, 409.10981, at120.Position.Y, positionTolerance)
	require.InDelta(t, 5471.33577, at120.Position.Z, positionTolerance)
}

func TestPropagateSatellite88888SpacetrackReference(t *testing.T) {
	const (
		line1 = "1 88888U          80275.98708465  .00073094  13844-3  66816-4 0    87"
		line2 = "2 88888  72.8435 115.9689 0086731  52.6988 110.5714 16.05824518  1058"
	)
	state := mustPropagatorState(t, line1, line2)
	require.Equal(t, RegimeNearEarth, state.Regime())

	got, err := state.Propagate(0.0)
	require.NoError(t, err)
	requireState(t, got,
		2328.96975, -5995.22051, 1719.97297,
		2.912073281, -0.983417956, -7.090816210)
}

func TestPropagateSatellite11801NearGeostationary(t *testing.T) {
	const (
		line1 = "1 11801U          80230.29629788  .01431103  00000-0  14311-1       8"
		line2 = "2 11801  46.7916 230.4354 7318036  47.4722  10.4117  2.28537848    13"
	)
	state := mustPropagatorState(t, line1, line2)
	require.Equal(t, RegimeDeepSpace, state.Regime())
	require.Contains(t, []ResonanceKind{ResonanceSynchronous, ResonanceSemiSynchronous}, state.deepSpace.resonanceKind)

	got, err := state.Propagate(0.0)
	require.NoError(t, err)
	require.InDelta(t, 42164.0, got.Position.Magnitude(), 5000.0)
}

func TestPropagateLongHorizonStabilitySatellite06251(t *testing.T) {
	const (
		line1 = "1 06251U 62025E   06176.82412014  .00008885  00000-0  12808-3 0  3985"
		line2 = "2 06251  58.0579  54.0425 0030035 139.1568 221.1854 15.56387291  6774"
	)
	state := mustPropagatorState(t, line1, line2)
	for tsince := 0.0; tsince <= 2880.0; tsince += 360.0 {
		got, err := state.Propagate(tsince)
		require.NoError(t, err)
		mag := got.Position.Magnitude()
		require.Greater(t, mag, 6371.0)
		require.Less(t, mag, 8000.0)
		require.False(t, isNaNOrInf(mag))
	}
}

func TestPropagateIsPure(t *testing.T) {
	state := mustPropagatorState(t, valladoLine1, valladoLine2)
	a, err := state.Propagate(180.0)
	require.NoError(t, err)
	b, err := state.Propagate(180.0)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestPropagateReportsMinutesSinceEpoch(t *testing.T) {
	state := mustPropagatorState(t, valladoLine1, valladoLine2)
	got, err := state.Propagate(42.5)
	require.NoError(t, err)
	require.Equal(t, 42.5, got.MinutesSinceEpoch)
}

// Satellite 00005 has a geocentric perigee near 7030 km and an apogee near
// 10240 km, so every sample lies between the Earth's surface and Re+4000 km.
func TestPropagatePositionMagnitudeStaysWithinOrbitBounds(t *testing.T) {
	state := mustPropagatorState(t, valladoLine1, valladoLine2)
	for _, tsince := range []float64{0, 90, 360, 1440, 4320} {
		got, err := state.Propagate(tsince)
		require.NoError(t, err)
		mag := got.Position.Magnitude()
		require.Greater(t, mag, WGS72.EarthRadiusKm)
		require.Less(t, mag, WGS72.EarthRadiusKm+4000)
	}
}

func TestKeplerSolverConvergesForModerateEccentricity(t *testing.T) {
	e, iterations := solveKeplerEquation(1.2, 0.05, -0.03)
	require.Less(t, iterations, keplerMaxIterations)
	require.False(t, isNaNOrInf(e))
}

func isNaNOrInf(x float64) bool {
	return x != x || x > 1e300 || x < -1e300
}
