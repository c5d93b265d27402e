package sgp4

import (
	"math"
	"time"
)

// Lunisolar and resonance constants from Spacetrack Report #3 / Vallado's
// SDP4, used only by deep-space (period >= 225 min) satellites.
const (
	zns  = 1.19459e-5
	zes  = 0.01675
	znl  = 1.5835218e-4
	zel  = 0.05490
	c1ss = 2.9864797e-6
	c1l  = 4.7968065e-7
	thdt = 4.3752691e-3

	zcosgSolar  = 1.945905e-1
	zsingSolar  = -9.8088458e-1
	zcosiSolar  = 9.1744867e-1
	zsiniSolar  = 3.9785416e-1

	q22   = 1.7891679e-6
	q31   = 2.1460748e-6
	q33   = 2.2123015e-7
	root22 = 1.7891679e-6
	root32 = 3.7393792e-7
	root44 = 7.3636953e-9
	root52 = 1.1428639e-7
	root54 = 2.1765803e-9
)

// lunisolarTermSet is the common shape returned by computeLunisolarTerms,
// shared verbatim by the solar and lunar passes (they differ only in the
// z* constants fed in).
type lunisolarTermSet struct {
	se, si, sl, sgh, sh                            float64
	e2, e3, xi2, xi3, xl2, xl3, xl4, xgh2, xgh3, xgh4, xh2, xh3 float64
}

func computeLunisolarTerms(zcosg, zsing, zcosi, zsini, zcosh, zsinh, zn, ze, cc float64,
	eq, eosq, sinio, cosio, sing, cosg, betao, betao2 float64) lunisolarTermSet {

	a1 := zcosg*zcosi + zsing*zsini*cosio
	a3 := -zsing*zcosi + zcosg*zsini*cosio
	a7 := -zcosg*zsini + zsing*zcosi*cosio
	a8 := zsing * zsini
	a10 := zcosg * zcosi
	a2 := cosio*a7 + sinio*a8
	a4 := cosio*a1 + sinio*a10
	a5 := -sinio*a1 + cosio*a10
	a6 := -sinio*a7 + cosio*a8

	x1 := a1*cosg + a2*sing
	x2 := a3*cosg + a4*sing
	x3 := -a1*sing + a2*cosg
	x4 := -a3*sing + a4*cosg
	x5 := a5 * sing
	x6 := a6 * sing
	x7 := a5 * cosg
	x8 := a6 * cosg

	z31 := 12*x1*x1 - 3*x3*x3
	z32 := 24*x1*x2 - 6*x3*x4
	z33 := 12*x2*x2 - 3*x4*x4
	z1 := 3*(a1*a1+a2*a2) + z31*eosq
	z2 := 6*(a1*a3+a2*a4) + z32*eosq
	z3 := 3*(a3*a3+a4*a4) + z33*eosq
	z11 := -6*a1*a5 + eosq*(-24*x1*x7-6*x3*x5)
	z12 := -6*(a1*a6+a3*a5) + eosq*(-24*(x2*x7+x1*x8)-6*(x3*x6+x4*x5))
	z13 := -6*a3*a6 + eosq*(-24*x2*x8-6*x4*x6)
	z21 := 6*a2*a5 + eosq*(24*x1*x5-6*x3*x7)
	z22 := 6*(a4*a5+a2*a6) + eosq*(24*(x2*x5+x1*x6)-6*(x4*x7+x3*x8))
	z23 := 6*a4*a6 + eosq*(24*x2*x6-6*x4*x8)

	z1 = z1 + z1 + betao2*z31
	z2 = z2 + z2 + betao2*z32
	z3 = z3 + z3 + betao2*z33
	s3 := cc / sinio
	s2 := -0.5 * s3 / betao
	s4 := s3 * betao
	s1 := -15 * eq * s4
	s5 := x1*x3 + x2*x4
	s6 := x2*x3 + x1*x4

	se := s1 * zn * s5
	si := s2 * zn * (z11 + z13)
	sl := -zn * s3 * (z1 + z3 - 14 - 6*eosq)
	sgh := s4 * zn * (z31 + z33 - 6)
	sh := -zn * s2 * (z21 + z23)

	e2 := 2 * s1 * s6
	e3 := 2 * s2 * (z21 + z23)
	xi2 := 2 * s2 * z12
	xi3 := 2 * s3 * (z13 - z11)
	xl2 := -2 * s3 * z2
	xl3 := -2 * s3 * (z3 - z1)
	xl4 := -2 * s3 * (-21 - 9*eosq) * ze
	xgh2 := 2 * s4 * z32
	xgh3 := 2 * s4 * (z33 - z31)
	xgh4 := -18 * s4 * ze
	xh2 := -2 * s2 * z22
	xh3 := -2 * s2 * (z23 - z21)

	return lunisolarTermSet{
		se: se, si: si, sl: sl, sgh: sgh, sh: sh,
		e2: e2, e3: e3, xi2: xi2, xi3: xi3,
		xl2: xl2, xl3: xl3, xl4: xl4,
		xgh2: xgh2, xgh3: xgh3, xgh4: xgh4,
		xh2: xh2, xh3: xh3,
	}
}

// julianDate computes the Julian date of a UTC instant.
func julianDate(t time.Time) float64 {
	y := t.Year()
	m := int(t.Month())
	d := t.Day()
	jdn := float64(367*y-((7*(y+((m+9)/12)))/4)+((275*m)/9)+d) + 1721013.5
	dayFrac := (float64(t.Hour())*3600 + float64(t.Minute())*60 + float64(t.Second()) + float64(t.Nanosecond())/1e9) / 86400.0
	return jdn + dayFrac
}

// newDeepSpaceCoeffs runs the lunisolar (dscom) and resonance (dsinit)
// initializers for a satellite whose period classifies it as deep-space.
func newDeepSpaceCoeffs(tle *TLE, ne *nearEarthCoeffs) (*deepSpaceCoeffs, error) {
	jd := julianDate(tle.Epoch)
	ds50 := jd - 2433281.5
	gsto := normalizeTwoPi(6.3003880987*ds50 + 1.72944494)

	day := ds50 + 18261.5
	xnodce := 4.5236020 - 9.2422029e-4*day
	stem := math.Sin(xnodce)
	ctem := math.Cos(xnodce)
	zcosil := 0.91375164 - 0.03568096*ctem
	zsinil := math.Sqrt(1 - zcosil*zcosil)
	zsinhl := 0.089683511 * stem / zsinil
	zcoshl := math.Sqrt(1 - zsinhl*zsinhl)
	c := 4.7199672 + 0.22997150*day
	gam := 5.8351514 + 0.0019443680*day
	zmol := normalizeTwoPi(c - gam)
	zx := 0.39785416 * stem / zsinil
	zy := zcoshl*ctem + 0.91744867*zsinhl*stem
	zx = math.Atan2(zx, zy)
	zx = gam + zx - xnodce
	zcosgl := math.Cos(zx)
	zsingl := math.Sin(zx)
	zmos := normalizeTwoPi(6.2565837 + 0.017201977*day)

	sinq := math.Sin(ne.raan0)
	cosq := math.Cos(ne.raan0)
	sing := math.Sin(ne.argPerigee0)
	cosg := math.Cos(ne.argPerigee0)
	eosq := ne.eccentricity0 * ne.eccentricity0
	betao2 := 1 - eosq
	betao := math.Sqrt(betao2)

	solar := computeLunisolarTerms(zcosgSolar, zsingSolar, zcosiSolar, zsiniSolar, cosq, sinq,
		zns, zes, c1ss, ne.eccentricity0, eosq, ne.sinio, ne.cosio, sing, cosg, betao, betao2)

	lunarZcosh := zcoshl*cosq + zsinhl*sinq
	lunarZsinh := sinq*zcoshl - cosq*zsinhl
	lunar := computeLunisolarTerms(zcosgl, zsingl, zcosil, zsinil, lunarZcosh, lunarZsinh,
		znl, zel, c1l, ne.eccentricity0, eosq, ne.sinio, ne.cosio, sing, cosg, betao, betao2)

	sse := solar.se + lunar.se
	ssi := solar.si + lunar.si
	ssl := solar.sl + lunar.sl
	ssg := (solar.sgh - ne.cosio/ne.sinio*solar.sh) + (lunar.sgh - ne.cosio/ne.sinio*lunar.sh)
	ssh := solar.sh/ne.sinio + lunar.sh/ne.sinio

	ds := &deepSpaceCoeffs{
		gsto: gsto,
		se2:  solar.e2, se3: solar.e3,
		si2: solar.xi2, si3: solar.xi3,
		sl2: solar.xl2, sl3: solar.xl3, sl4: solar.xl4,
		sgh2: solar.xgh2, sgh3: solar.xgh3, sgh4: solar.xgh4,
		sh2: solar.xh2, sh3: solar.xh3,
		ee2: lunar.e2, e3: lunar.e3,
		xi2: lunar.xi2, xi3: lunar.xi3,
		xl2: lunar.xl2, xl3: lunar.xl3, xl4: lunar.xl4,
		xgh2: lunar.xgh2, xgh3: lunar.xgh3, xgh4: lunar.xgh4,
		xh2: lunar.xh2, xh3: lunar.xh3,
		zmos:   zmos,
		zmol:   zmol,
		sse:    sse,
		ssi:    ssi,
		ssl:    ssl,
		ssg:    ssg,
		ssh:    ssh,
		omegaq: ne.argPerigee0,
	}

	periodMin := twoPi / ne.n0dp
	isSync := math.Abs(periodMin/1440.0-1.0) < 0.0625
	isSemiSync := !isSync && math.Abs(periodMin/1440.0-0.5) < 0.0104

	eq := ne.eccentricity0
	theta2 := ne.cosio * ne.cosio
	aqnv := 1.0 / ne.a0dp
	var bfact float64

	switch {
	case isSemiSync:
		ds.resonanceKind = ResonanceSemiSynchronous
		eoc := eq * eosq
		g201 := -0.306 - (eq-0.64)*0.440

		var g211, g310, g322, g410, g422, g520 float64
		if eq <= 0.65 {
			g211 = 3.616 - 13.2470*eq + 16.2900*eosq
			g310 = -19.302 + 117.3900*eq - 228.4190*eosq + 156.5910*eoc
			g322 = -18.9068 + 109.7927*eq - 214.6334*eosq + 146.5816*eoc
			g410 = -41.122 + 242.6940*eq - 471.0940*eosq + 313.9530*eoc
			g422 = -146.407 + 841.8800*eq - 1629.014*eosq + 1083.4350*eoc
			g520 = -532.114 + 3017.977*eq - 5740.032*eosq + 3708.2760*eoc
		} else {
			g211 = -72.099 + 331.819*eq - 508.738*eosq + 266.724*eoc
			g310 = -346.844 + 1582.851*eq - 2415.925*eosq + 1246.113*eoc
			g322 = -342.585 + 1554.908*eq - 2366.899*eosq + 1215.972*eoc
			g410 = -1052.797 + 4758.686*eq - 7193.992*eosq + 3651.957*eoc
			g422 = -3581.690 + 16178.110*eq - 24462.770*eosq + 12422.520*eoc
			if eq <= 0.715 {
				g520 = 1464.740 - 4664.750*eq + 3763.640*eosq
			} else {
				g520 = -5149.66 + 29936.92*eq - 54087.36*eosq + 31324.56*eoc
			}
		}

		var g533, g521, g532 float64
		if eq < 0.7 {
			g533 = -919.22770 + 4988.6100*eq - 9064.7700*eosq + 5542.21*eoc
			g521 = -822.71072 + 4568.6173*eq - 8491.4146*eosq + 5337.524*eoc
			g532 = -853.66600 + 4690.2500*eq - 8624.7700*eosq + 5341.4*eoc
		} else {
			g533 = -37995.780 + 161616.52*eq - 229838.20*eosq + 109377.94*eoc
			g521 = -51752.104 + 218913.95*eq - 309468.16*eosq + 146349.42*eoc
			g532 = -40023.880 + 170470.89*eq - 242699.48*eosq + 115605.82*eoc
		}

		sini2 := ne.sinio * ne.sinio
		f220 := 0.75 * (1 + 2*ne.cosio + theta2)
		f221 := 1.5 * sini2
		f321 := 1.875 * ne.sinio * (1 - 2*ne.cosio - 3*theta2)
		f322 := -1.875 * ne.sinio * (1 + 2*ne.cosio - 3*theta2)
		f441 := 35 * sini2 * f220
		f442 := 39.375 * sini2 * sini2
		f522 := 9.84375 * ne.sinio * (sini2*(1-2*ne.cosio-5*theta2) + 0.3333333*(-2+4*ne.cosio+6*theta2))
		f523 := ne.sinio * (4.92187512*sini2*(-2-4*ne.cosio+10*theta2) + 6.56250012*(1+2*ne.cosio-3*theta2))
		f542 := 29.53125 * ne.sinio * (2 - 8*ne.cosio + theta2*(-12+8*ne.cosio+10*theta2))
		f543 := 29.53125 * ne.sinio * (-2 - 8*ne.cosio + theta2*(12+8*ne.cosio-10*theta2))

		xno2 := ne.n0dp * ne.n0dp
		ainv2 := aqnv * aqnv
		temp1 := 3 * xno2 * ainv2
		temp := temp1 * root22
		ds.d2201 = temp * f220 * g201
		ds.d2211 = temp * f221 * g211
		temp1 *= aqnv
		temp = temp1 * root32
		ds.d3210 = temp * f321 * g310
		ds.d3222 = temp * f322 * g322
		temp1 *= aqnv
		temp = 2 * temp1 * root44
		ds.d4410 = temp * f441 * g410
		ds.d4422 = temp * f442 * g422
		temp1 *= aqnv
		temp = temp1 * root52
		ds.d5220 = temp * f522 * g520
		ds.d5232 = temp * f523 * g532
		temp = 2 * temp1 * root54
		ds.d5421 = temp * f542 * g521
		ds.d5433 = temp * f543 * g533

		ds.xlamo = ne.meanAnomaly0 + ne.raan0 + ne.raan0 - gsto - gsto
		bfact = ne.mdot + ne.nodedot + ne.nodedot - thdt - thdt + ssl + ssh + ssh

	case isSync:
		ds.resonanceKind = ResonanceSynchronous
		g200 := 1 + eosq*(-2.5+0.8125*eosq)
		g310 := 1 + 2*eosq
		g300 := 1 + eosq*(-6+6.60937*eosq)
		f220 := 0.75 * (1 + ne.cosio) * (1 + ne.cosio)
		f311 := 0.9375*ne.sinio*ne.sinio*(1+3*ne.cosio) - 0.75*(1+ne.cosio)
		f330 := 1 + ne.cosio
		f330 = 1.875 * f330 * f330 * f330

		del1 := 3 * ne.n0dp * ne.n0dp * aqnv * aqnv
		del2 := 2 * del1 * f220 * g200 * q22
		del3 := 3 * del1 * f330 * g300 * q33 * aqnv
		del1 = del1 * f311 * g310 * q31 * aqnv

		ds.del1, ds.del2, ds.del3 = del1, del2, del3
		ds.xlamo = ne.meanAnomaly0 + ne.raan0 + ne.argPerigee0 - gsto
		bfact = ne.mdot + (ne.argpdot + ne.nodedot) - thdt + ssl + ssg + ssh

	default:
		ds.resonanceKind = ResonanceNone
	}

	if ds.resonanceKind != ResonanceNone {
		ds.xfact = bfact - ne.n0dp
	}

	return ds, nil
}
