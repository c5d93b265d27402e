package sgp4

import "math"

const (
	// perigeeDecayFloorKm is the altitude below which a satellite is
	// considered to have already re-entered at epoch. NORAD's own
	// implementations vary between 78 km and 98 km; 90 km sits inside that
	// band and is comfortably below the lowest altitude any cataloged
	// object has a stable mean-element fit at.
	perigeeDecayFloorKm = 90.0

	// simplifiedDragFloorKm is the perigee altitude below which the
	// higher-order drag terms (d2..d4, t3cof..t5cof) are dropped.
	simplifiedDragFloorKm = 220.0

	// deepSpacePeriodFloorMin is the orbital period above which the
	// propagator must use the SDP4 lunisolar/resonance extension.
	deepSpacePeriodFloorMin = 225.0
)

// NewPropagatorState runs the one-time initialization of a TLE's mean
// elements against a gravity model, recovering the Brouwer mean motion and
// semi-major axis and precomputing every secular and drag coefficient the
// propagate step needs. It classifies the satellite as near-earth or
// deep-space by epoch period and, for the latter, additionally runs the
// lunisolar/resonance initializer.
func NewPropagatorState(tle *TLE, gm GravityModel) (*PropagatorState, error) {
	incl0 := tle.InclinationDeg * deg2rad
	raan0 := tle.RAANDeg * deg2rad
	argp0 := tle.ArgPerigeeDeg * deg2rad
	mano0 := tle.MeanAnomalyDeg * deg2rad
	ecc0 := tle.Eccentricity
	n0 := tle.MeanMotion * twoPi / minutesPerDay

	cosio := math.Cos(incl0)
	sinio := math.Sin(incl0)
	theta2 := cosio * cosio
	x3thm1 := 3*theta2 - 1
	eosq := ecc0 * ecc0
	betao2 := 1 - eosq
	betao := math.Sqrt(betao2)

	a1 := math.Pow(gm.XKE/n0, 2.0/3.0)
	del1 := 1.5 * gm.CK2 * x3thm1 / (a1 * a1 * betao * betao2)
	ao := a1 * (1 - del1*(1.0/3.0+del1*(1+134.0/81.0*del1)))
	delo := 1.5 * gm.CK2 * x3thm1 / (ao * ao * betao * betao2)
	n0dp := n0 / (1 + delo)
	a0dp := ao / (1 - delo)

	perigeeKm := (a0dp*(1-ecc0) - 1.0) * gm.EarthRadiusKm
	if perigeeKm < perigeeDecayFloorKm {
		return nil, &DecayedError{Reason: "epoch perigee below atmospheric floor", MinutesSinceEpoch: 0, Value: perigeeKm}
	}

	s4 := gm.S
	qoms24 := gm.QOMS2T
	if perigeeKm < 156.0 {
		sstar := perigeeKm - 78.0
		if sstar < 20.0 {
			sstar = 20.0
		}
		s4 = sstar/gm.EarthRadiusKm + 1.0
		qoms24 = math.Pow((120.0-sstar)/gm.EarthRadiusKm, 4.0)
	}

	pinvsq := 1.0 / (a0dp * a0dp * betao2 * betao2)
	tsi := 1.0 / (a0dp - s4)
	eta := a0dp * ecc0 * tsi
	etasq := eta * eta
	eeta := ecc0 * eta
	psisq := math.Abs(1.0 - etasq)
	coef := qoms24 * math.Pow(tsi, 4)
	coef1 := coef / math.Pow(psisq, 3.5)

	c2 := coef1 * n0dp * (a0dp*(1+1.5*etasq+eeta*(4+etasq)) +
		0.75*gm.CK2*tsi/psisq*x3thm1*(8+3*etasq*(8+etasq)))
	c1 := tle.Bstar * c2

	a3ovk2 := -2.0 * gm.J3OverJ2

	var c3 float64
	if ecc0 > 1.0e-4 {
		c3 = coef * tsi * a3ovk2 * n0dp * sinio / ecc0
	}

	x1mth2 := 1.0 - theta2
	c4 := 2.0 * n0dp * coef1 * a0dp * betao2 * (eta*(2+0.5*etasq) + ecc0*(0.5+2*etasq) -
		2.0*gm.CK2*tsi/(a0dp*psisq)*(-3*x3thm1*(1-2*eeta+etasq*(1.5-0.5*eeta))+
			0.75*x1mth2*(2*etasq-eeta*(1+etasq))*math.Cos(2*argp0)))
	c5 := 2.0 * coef1 * a0dp * betao2 * (1 + 2.75*(etasq+eeta) + eeta*etasq)

	theta4 := theta2 * theta2
	temp1 := 3 * gm.CK2 * pinvsq * n0dp
	temp2 := temp1 * gm.CK2 * pinvsq
	temp3 := 1.25 * gm.CK4 * pinvsq * pinvsq * n0dp

	mdot := n0dp + 0.5*temp1*betao*x3thm1 + 0.0625*temp2*betao*(13-78*theta2+137*theta4)
	x1m5th := 1 - 5*theta2
	argpdot := -0.5*temp1*x1m5th + 0.0625*temp2*(7-114*theta2+395*theta4) + temp3*(3-36*theta2+49*theta4)
	xhdot1 := -temp1 * cosio
	nodedot := xhdot1 + (0.5*temp2*(4-19*theta2)+2*temp3*(3-7*theta2))*cosio
	nodecf := 3.5 * betao2 * xhdot1 * c1
	t2cof := 1.5 * c1

	var xlcof float64
	if math.Abs(cosio+1) > 1.5e-12 {
		xlcof = 0.125 * a3ovk2 * sinio * (3 + 5*cosio) / (1 + cosio)
	} else {
		xlcof = 0.125 * a3ovk2 * sinio * (3 + 5*cosio) / 1.5e-12
	}
	aycof := 0.25 * a3ovk2 * sinio

	delmo := math.Pow(1+eta*math.Cos(mano0), 3)
	sinmao := math.Sin(mano0)
	x7thm1 := 7*theta2 - 1

	var omgcof, xmcof float64
	omgcof = tle.Bstar * c3 * math.Cos(argp0)
	if ecc0 > 1.0e-4 {
		xmcof = -2.0 / 3.0 * coef * tle.Bstar / eeta
	}

	isSimplified := perigeeKm < simplifiedDragFloorKm
	var d2, d3, d4, t3cof, t4cof, t5cof float64
	if !isSimplified {
		c1sq := c1 * c1
		d2 = 4 * a0dp * tsi * c1sq
		temp := d2 * tsi * c1 / 3.0
		d3 = (17*a0dp + s4) * temp
		d4 = 0.5 * temp * a0dp * tsi * (221*a0dp + 31*s4) * c1 / 3.0
		t3cof = d2 + 2*c1sq
		t4cof = 0.25 * (3*d3 + c1*(12*d2+10*c1sq))
		t5cof = 0.2 * (3*d4 + 12*c1*d3 + 6*d2*d2 + 15*c1sq*(2*d2+c1sq))
	}

	ne := nearEarthCoeffs{
		gravity:       gm,
		eccentricity0: ecc0,
		inclination0:  incl0,
		raan0:         raan0,
		argPerigee0:   argp0,
		meanAnomaly0:  mano0,
		bstar:         tle.Bstar,
		n0dp:          n0dp,
		a0dp:          a0dp,
		cosio:         cosio,
		sinio:         sinio,
		con41:         x3thm1,
		x1mth2:        x1mth2,
		x7thm1:        x7thm1,
		aycof:         aycof,
		xlcof:         xlcof,
		eta:           eta,
		c1:            c1,
		c2:            c2,
		c3:            c3,
		c4:            c4,
		c5:            c5,
		d2:            d2,
		d3:            d3,
		d4:            d4,
		t2cof:         t2cof,
		t3cof:         t3cof,
		t4cof:         t4cof,
		t5cof:         t5cof,
		mdot:          mdot,
		argpdot:       argpdot,
		nodedot:       nodedot,
		nodecf:        nodecf,
		omgcof:        omgcof,
		xmcof:         xmcof,
		delmo:         delmo,
		sinmao:        sinmao,
		isSimplified:  isSimplified,
	}

	state := &PropagatorState{tle: tle, regime: RegimeNearEarth, nearEarth: ne}

	periodMin := twoPi / n0dp
	if periodMin >= deepSpacePeriodFloorMin {
		state.regime = RegimeDeepSpace
		ds, err := newDeepSpaceCoeffs(tle, &ne)
		if err != nil {
			return nil, err
		}
		state.deepSpace = ds
	}

	return state, nil
}
