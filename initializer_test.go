package sgp4

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPropagatorStateClassifiesNearEarthVanguard(t *testing.T) {
	state := mustPropagatorState(t, valladoLine1, valladoLine2)
	require.Equal(t, RegimeNearEarth, state.Regime())
	require.False(t, state.nearEarth.isSimplified, "several-hundred-km perigee orbit should not use simplified drag")
	require.Nil(t, state.deepSpace)
}

func TestNewPropagatorStateClassifiesDeepSpaceByPeriod(t *testing.T) {
	// Mean motion ~1.0027 rev/day puts the orbital period near 1436
	// minutes, well above the deep-space threshold.
	line2 := "2 00005  34.2682 348.7242 0000000 331.7664  19.3264  1.00270000413667"
	tle, err := DecodeTLE("test", valladoLine1, line2)
	require.NoError(t, err)
	state, err := NewPropagatorState(tle, WGS72)
	require.NoError(t, err)
	require.Equal(t, RegimeDeepSpace, state.Regime())
	require.NotNil(t, state.deepSpace)
}

func TestNewPropagatorStateRejectsDecayedEpochPerigee(t *testing.T) {
	// Mean motion 16 rev/day with eccentricity 0.9 drives the recovered
	// semi-major axis and eccentricity combination to a perigee far below
	// the atmosphere, independent of the small J2 correction terms.
	line2 := "2 00005  34.2682 348.7242 9000000 331.7664  19.3264 16.00000000413667"
	tle, err := DecodeTLE("test", valladoLine1, line2)
	require.NoError(t, err)

	_, err = NewPropagatorState(tle, WGS72)
	require.Error(t, err)
	var decayed *DecayedError
	require.ErrorAs(t, err, &decayed)
}
