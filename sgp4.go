package sgp4

import "math"

// propagateNearEarth runs the SGP4 secular-update and short-period
// correction chain (spec §4.4, Steps A-F) for a near-earth state.
func propagateNearEarth(s *PropagatorState, tsince float64) (SatelliteState, int, error) {
	ne := &s.nearEarth

	xmdf := ne.meanAnomaly0 + ne.mdot*tsince
	omgadf := ne.argPerigee0 + ne.argpdot*tsince
	xnoddf := ne.raan0 + ne.nodedot*tsince

	omega := omgadf
	xmp := xmdf

	tsq := tsince * tsince
	xnode := xnoddf + ne.nodecf*tsq
	tempa := 1 - ne.c1*tsince
	tempe := ne.bstar * ne.c4 * tsince
	templ := ne.t2cof * tsq

	if !ne.isSimplified {
		delomg := ne.omgcof * tsince
		delmtemp := 1 + ne.eta*math.Cos(xmdf)
		delm := ne.xmcof * (delmtemp*delmtemp*delmtemp - ne.delmo)
		temp := delomg + delm
		xmp = xmdf + temp
		omega = omgadf - temp
		tcube := tsq * tsince
		tfour := tsq * tsq
		tempa = tempa - ne.d2*tsq - ne.d3*tcube - ne.d4*tfour
		tempe = tempe + ne.bstar*ne.c5*(math.Sin(xmp)-ne.sinmao)
		templ = templ + ne.t3cof*tcube + tfour*(ne.t4cof+tsince*ne.t5cof)
	}

	a := ne.a0dp * tempa * tempa
	e := ne.eccentricity0 - tempe
	if e >= 1 || e < -0.001 {
		return SatelliteState{}, 0, &DecayedError{Reason: "eccentricity out of range", MinutesSinceEpoch: tsince, Value: e}
	}
	if e < 1.0e-6 {
		e = 1.0e-6
	}

	xl := xmp + omega + xnode + ne.n0dp*templ

	return finalizeOrbit(ne, tsince, a, e, omega, xl, xnode, ne.inclination0)
}

// finalizeOrbit is the long-period, Kepler-solve and short-period stage
// shared by SGP4 and SDP4: everything downstream of the secular update
// (spec §4.4 Steps B-F) is identical once the caller has produced
// (a, e, omega, xl, xnode, xincl).
func finalizeOrbit(ne *nearEarthCoeffs, tsince, a, e, omega, xl, xnode, xincl float64) (SatelliteState, int, error) {
	if a < 0.95 {
		return SatelliteState{}, 0, &DecayedError{Reason: "semi-major axis below 0.95 earth radii", MinutesSinceEpoch: tsince, Value: a}
	}

	axn := e * math.Cos(omega)
	temp := 1.0 / (a * (1 - e*e))
	xlcofTerm := temp * ne.xlcof * axn
	aynl := temp * ne.aycof
	xlt := xl + xlcofTerm
	ayn := e*math.Sin(omega) + aynl

	capU := normalizeTwoPi(xlt - xnode)
	ecc, iterations := solveKeplerEquation(capU, axn, ayn)

	ecose := axn*math.Cos(ecc) + ayn*math.Sin(ecc)
	esine := axn*math.Sin(ecc) - ayn*math.Cos(ecc)
	elsq := axn*axn + ayn*ayn
	temp = 1 - elsq
	pl := a * temp
	if pl < 0 {
		return SatelliteState{}, iterations, &DecayedError{Reason: "negative semi-latus rectum", MinutesSinceEpoch: tsince, Value: pl}
	}

	r := a * (1 - ecose)
	rdot := ne.gravity.XKE * math.Sqrt(a) * esine / r
	rfdot := ne.gravity.XKE * math.Sqrt(pl) / r
	temp1 := esine / (1 + math.Sqrt(temp))
	cosu := a / r * (math.Cos(ecc) - axn + ayn*temp1)
	sinu := a / r * (math.Sin(ecc) - ayn - axn*temp1)
	u := math.Atan2(sinu, cosu)
	sin2u := 2 * sinu * cosu
	cos2u := 1 - 2*sinu*sinu
	temp = 1 / pl
	temp1 = ne.gravity.CK2 * temp
	temp2 := temp1 * temp
	betal := math.Sqrt(1 - elsq)

	rk := r*(1-1.5*temp2*betal*ne.con41) + 0.5*temp1*ne.x1mth2*cos2u
	uk := u - 0.25*temp2*ne.x7thm1*sin2u
	xnodek := xnode + 1.5*temp2*ne.cosio*sin2u
	xinck := xincl + 1.5*temp2*ne.cosio*ne.sinio*cos2u
	rdotk := rdot - ne.n0dp*temp1*ne.x1mth2*sin2u
	rfdotk := rfdot + ne.n0dp*temp1*(ne.x1mth2*cos2u+1.5*ne.con41)

	sinuk, cosuk := math.Sin(uk), math.Cos(uk)
	sinik, cosik := math.Sin(xinck), math.Cos(xinck)
	sinnok, cosnok := math.Sin(xnodek), math.Cos(xnodek)

	xmx := -sinnok * cosik
	xmy := cosnok * cosik
	ux := xmx*sinuk + cosnok*cosuk
	uy := xmy*sinuk + sinnok*cosuk
	uz := sinik * sinuk
	vx := xmx*cosuk - cosnok*sinuk
	vy := xmy*cosuk - sinnok*sinuk
	vz := sinik * cosuk

	re := ne.gravity.EarthRadiusKm
	vscale := re / 60.0 // rdotk and rfdotk are already in earth radii per minute

	state := SatelliteState{
		Position: Vector3{X: rk * ux * re, Y: rk * uy * re, Z: rk * uz * re},
		Velocity: Vector3{
			X: (rdotk*ux + rfdotk*vx) * vscale,
			Y: (rdotk*uy + rfdotk*vy) * vscale,
			Z: (rdotk*uz + rfdotk*vz) * vscale,
		},
		MinutesSinceEpoch: tsince,
	}
	return state, iterations, nil
}
