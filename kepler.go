package sgp4

import "math"

const (
	keplerMaxIterations = 10
	keplerTolerance     = 1.0e-12
	keplerStepClamp     = 0.95
)

// solveKeplerEquation finds E satisfying capU = E + ayn*cos(E) - axn*sin(E)
// by Newton-Raphson, starting from E = capU. Each step is clamped to
// |ΔE| ≤ 0.95 to prevent overshoot near e→1 and near axn, ayn ≈ 0 — this
// clamp is a deliberate part of the model, not an implementation detail,
// and must not be removed or relaxed.
//
// Non-convergence after keplerMaxIterations is not an error: the last
// iterate is returned along with the number of iterations taken, which a
// caller may feed to an observability hook.
func solveKeplerEquation(capU, axn, ayn float64) (e float64, iterations int) {
	e = capU
	for iterations = 0; iterations < keplerMaxIterations; iterations++ {
		sinE := math.Sin(e)
		cosE := math.Cos(e)
		denom := 1.0 - cosE*axn - sinE*ayn
		delta := (capU - ayn*cosE + axn*sinE - e) / denom
		if delta > keplerStepClamp {
			delta = keplerStepClamp
		} else if delta < -keplerStepClamp {
			delta = -keplerStepClamp
		}
		e += delta
		if math.Abs(delta) < keplerTolerance {
			iterations++
			break
		}
	}
	return e, iterations
}
