package sgp4

import "github.com/starorbit/sgp4/sgp4metrics"

// Propagate advances the state by minutesSinceEpoch minutes and returns the
// TEME position/velocity. For a deep-space state this allocates a fresh
// ResonanceCache per call, which is always correct but forgoes the
// integrator's between-call memory; callers making many calls against the
// same deep-space state should prefer PropagateWithCache.
func (s *PropagatorState) Propagate(minutesSinceEpoch float64) (SatelliteState, error) {
	var rc *ResonanceCache
	if s.regime == RegimeDeepSpace {
		rc = s.NewResonanceCache()
	}
	state, _, err := s.propagate(minutesSinceEpoch, rc)
	return state, err
}

// PropagateWithCache advances the state using a caller-owned ResonanceCache,
// letting the deep-space resonance integrator carry its working variables
// across repeated calls instead of restarting from epoch each time. rc is
// ignored for near-earth states.
func (s *PropagatorState) PropagateWithCache(minutesSinceEpoch float64, rc *ResonanceCache) (SatelliteState, error) {
	state, _, err := s.propagate(minutesSinceEpoch, rc)
	return state, err
}

// PropagateObserved behaves like PropagateWithCache but additionally reports
// the call's regime, outcome, and Kepler-solver iteration count to obs.
func (s *PropagatorState) PropagateObserved(minutesSinceEpoch float64, rc *ResonanceCache, obs sgp4metrics.Observer) (SatelliteState, error) {
	state, iterations, err := s.propagate(minutesSinceEpoch, rc)
	if obs != nil {
		obs.ObservePropagate(s.regime.String(), iterations, err)
	}
	return state, err
}

func (s *PropagatorState) propagate(minutesSinceEpoch float64, rc *ResonanceCache) (SatelliteState, int, error) {
	if s.regime == RegimeDeepSpace {
		if rc == nil {
			rc = s.NewResonanceCache()
		}
		return propagateDeepSpace(s, minutesSinceEpoch, rc)
	}
	return propagateNearEarth(s, minutesSinceEpoch)
}
