package sgp4

import "math"

// Angle constants for the resonance integrator (Spacetrack Report #3).
const (
	resonFasx2 = 0.13130908
	resonFasx4 = 2.8843198
	resonFasx6 = 0.37448087
	resonG22   = 5.7686396
	resonG32   = 0.95240898
	resonG44   = 1.8014998
	resonG52   = 1.0508330
	resonG54   = 4.4108898

	resonStepMinutes = 720.0
	resonHalfStepSq  = 259200.0 // 0.5 * resonStepMinutes^2, folded into the Euler-Maclaurin step
)

// propagateDeepSpace runs SGP4's secular/drag update, then layers the
// lunisolar secular drift and (where resonant) the stepped Euler-Maclaurin
// resonance integrator on top, before finishing through the same
// short-period correction chain used by the near-earth branch (spec §4.5).
func propagateDeepSpace(s *PropagatorState, tsince float64, rc *ResonanceCache) (SatelliteState, int, error) {
	ne := &s.nearEarth
	ds := s.deepSpace

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

	em := ne.eccentricity0
	inclm := ne.inclination0
	argpm := omega
	nodem := xnode
	mm := xmp + omega + xnode + ne.n0dp*templ
	xn := ne.n0dp

	em, inclm, argpm, nodem, mm, xn = applySecularAndResonance(ne, ds, rc, tsince, em, inclm, argpm, nodem, mm, xn)

	em = em - tempe
	if em >= 1 || em < -0.001 {
		return SatelliteState{}, 0, &DecayedError{Reason: "eccentricity out of range", MinutesSinceEpoch: tsince, Value: em}
	}
	if em < 1.0e-6 {
		em = 1.0e-6
	}

	em, inclm, argpm, nodem, mm = dpper(ds, ne, tsince, em, inclm, argpm, nodem, mm)

	if inclm < 0 {
		inclm = -inclm
		nodem += math.Pi
		argpm -= math.Pi
	}

	a := math.Pow(ne.gravity.XKE/xn, 2.0/3.0) * tempa * tempa

	return finalizeOrbit(ne, tsince, a, em, argpm, mm, nodem, inclm)
}

// applySecularAndResonance layers the lunisolar secular rates onto the
// near-earth-secular baseline and, for resonant satellites, advances the
// (xli, xni, atime) integrator state held in rc up to tsince.
func applySecularAndResonance(ne *nearEarthCoeffs, ds *deepSpaceCoeffs, rc *ResonanceCache, tsince,
	em, inclm, argpm, nodem, mm, xn float64) (float64, float64, float64, float64, float64, float64) {

	em += ds.sse * tsince
	inclm += ds.ssi * tsince
	argpm += ds.ssg * tsince
	nodem += ds.ssh * tsince
	mm += ds.ssl * tsince

	if ds.resonanceKind == ResonanceNone {
		return em, inclm, argpm, nodem, mm, xn
	}

	if rc.atime == 0 || tsince*rc.atime <= 0 || math.Abs(tsince) < math.Abs(rc.atime) {
		rc.atime = 0
		rc.xni = ne.n0dp
		rc.xli = ds.xlamo
	}

	delt := resonStepMinutes
	if tsince < 0 {
		delt = -resonStepMinutes
	}

	var xndt, xnddt, xldot, ft float64
	for {
		if ds.resonanceKind == ResonanceSynchronous {
			xndt = ds.del1*math.Sin(rc.xli-resonFasx2) +
				ds.del2*math.Sin(2*(rc.xli-resonFasx4)) +
				ds.del3*math.Sin(3*(rc.xli-resonFasx6))
			xldot = rc.xni + ds.xfact
			xnddt = ds.del1*math.Cos(rc.xli-resonFasx2) +
				2*ds.del2*math.Cos(2*(rc.xli-resonFasx4)) +
				3*ds.del3*math.Cos(3*(rc.xli-resonFasx6))
			xnddt *= xldot
		} else {
			xomi := ds.omegaq + ne.argpdot*rc.atime
			x2omi := xomi + xomi
			x2li := rc.xli + rc.xli
			xndt = ds.d2201*math.Sin(x2omi+rc.xli-resonG22) + ds.d2211*math.Sin(rc.xli-resonG22) +
				ds.d3210*math.Sin(xomi+rc.xli-resonG32) + ds.d3222*math.Sin(-xomi+rc.xli-resonG32) +
				ds.d4410*math.Sin(x2omi+x2li-resonG44) + ds.d4422*math.Sin(x2li-resonG44) +
				ds.d5220*math.Sin(xomi+rc.xli-resonG52) + ds.d5232*math.Sin(-xomi+rc.xli-resonG52) +
				ds.d5421*math.Sin(xomi+x2li-resonG54) + ds.d5433*math.Sin(-xomi+x2li-resonG54)
			xldot = rc.xni + ds.xfact
			xnddt = ds.d2201*math.Cos(x2omi+rc.xli-resonG22) + ds.d2211*math.Cos(rc.xli-resonG22) +
				ds.d3210*math.Cos(xomi+rc.xli-resonG32) + ds.d3222*math.Cos(-xomi+rc.xli-resonG32) +
				ds.d4410*math.Cos(x2omi+x2li-resonG44) + ds.d4422*math.Cos(x2li-resonG44) +
				ds.d5220*math.Cos(xomi+rc.xli-resonG52) + ds.d5232*math.Cos(-xomi+rc.xli-resonG52) +
				ds.d5421*math.Cos(xomi+x2li-resonG54) + ds.d5433*math.Cos(-xomi+x2li-resonG54)
			xnddt *= xldot
		}

		if math.Abs(tsince-rc.atime) < resonStepMinutes {
			ft = tsince - rc.atime
			break
		}

		rc.xli += xldot*delt + xndt*resonHalfStepSq
		rc.xni += xndt*delt + xnddt*resonHalfStepSq
		rc.atime += delt
	}

	xnFinal := rc.xni + xndt*ft + xnddt*ft*ft*0.5
	xl := rc.xli + xldot*ft + xndt*ft*ft*0.5

	theta := normalizeTwoPi(ds.gsto + tsince*thdt)
	if ds.resonanceKind == ResonanceSynchronous {
		mm = xl - nodem - argpm + theta
	} else {
		mm = xl - 2*nodem + 2*theta
	}
	xn = ne.n0dp + (xnFinal - ne.n0dp)

	return em, inclm, argpm, nodem, mm, xn
}

// dpper applies the lunisolar periodic corrections (always recomputed
// fresh; no caching of the 30-minute-stale values some implementations use)
// to the secularly-updated elements.
func dpper(ds *deepSpaceCoeffs, ne *nearEarthCoeffs, tsince, em, xinc, omgadf, xnode, xll float64) (float64, float64, float64, float64, float64) {
	sinis := math.Sin(xinc)
	cosis := math.Cos(xinc)

	zm := ds.zmos + zns*tsince
	zf := zm + 2*zes*math.Sin(zm)
	sinzf := math.Sin(zf)
	f2 := 0.5*sinzf*sinzf - 0.25
	f3 := -0.5 * sinzf * math.Cos(zf)
	ses := ds.se2*f2 + ds.se3*f3
	sis := ds.si2*f2 + ds.si3*f3
	sls := ds.sl2*f2 + ds.sl3*f3 + ds.sl4*sinzf
	sghs := ds.sgh2*f2 + ds.sgh3*f3 + ds.sgh4*sinzf
	shs := ds.sh2*f2 + ds.sh3*f3

	zm = ds.zmol + znl*tsince
	zf = zm + 2*zel*math.Sin(zm)
	sinzf = math.Sin(zf)
	f2 = 0.5*sinzf*sinzf - 0.25
	f3 = -0.5 * sinzf * math.Cos(zf)
	sel := ds.ee2*f2 + ds.e3*f3
	sil := ds.xi2*f2 + ds.xi3*f3
	sll := ds.xl2*f2 + ds.xl3*f3 + ds.xl4*sinzf
	sghl := ds.xgh2*f2 + ds.xgh3*f3 + ds.xgh4*sinzf
	shl := ds.xh2*f2 + ds.xh3*f3

	pe := ses + sel
	pinc := sis + sil
	pl := sls + sll
	pgh := sghs + sghl
	ph := shs + shl

	xinc += pinc
	em += pe

	if ne.inclination0 >= 0.2 {
		ph /= ne.sinio
		pgh -= ne.cosio * ph
		omgadf += pgh
		xnode += ph
		xll += pl
		return em, xinc, omgadf, xnode, xll
	}

	sinok := math.Sin(xnode)
	cosok := math.Cos(xnode)
	alfdp := sinis * sinok
	betdp := sinis * cosok
	dalf := ph*cosok + pinc*cosis*sinok
	dbet := -ph*sinok + pinc*cosis*cosok
	alfdp += dalf
	betdp += dbet

	xnodeMod := normalizeTwoPi(xnode)
	xls := xll + omgadf + cosis*xnodeMod
	dls := pl + pgh - pinc*xnodeMod*sinis
	xls += dls

	xnoh := xnodeMod
	xnodeNew := math.Atan2(alfdp, betdp)
	if math.Abs(xnoh-xnodeNew) > math.Pi {
		if xnodeNew < xnoh {
			xnodeNew += twoPi
		} else {
			xnodeNew -= twoPi
		}
	}

	xll += pl
	omgadf = xls - xll - cosis*xnodeNew

	return em, xinc, omgadf, xnodeNew, xll
}
