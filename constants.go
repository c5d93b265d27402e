package sgp4

import "math"

// GravityModel is a frozen table of the Earth gravity constants an SGP4/SDP4
// initialization is performed against. The raw harmonics come from the
// source gravity field; the remaining fields are derived once and cached
// so that initialization does not recompute them per satellite.
//
// Only WGS-72 is provided: it is the gravity field NORAD element sets are
// generated against, and mixing a TLE with a different field silently
// produces a wrong propagation rather than an error.
type GravityModel struct {
	EarthRadiusKm float64 // equatorial radius, km
	Mu            float64 // gravitational parameter, km^3/s^2
	J2            float64 // second zonal harmonic
	J3            float64 // third zonal harmonic
	J4            float64 // fourth zonal harmonic

	// Derived.
	XKE      float64 // sqrt(GM) in (earth radii)^1.5 / minute
	CK2      float64 // 0.5 * J2
	CK4      float64 // -0.375 * J4
	J3OverJ2 float64
	QOMS2T   float64 // ((120-78)/Re)^4, the reference atmospheric-shell term
	S        float64 // 1 + 78/Re, the reference atmospheric-shell radius (earth radii)
}

func newGravityModel(earthRadiusKm, mu, j2, j3, j4 float64) GravityModel {
	gm := GravityModel{
		EarthRadiusKm: earthRadiusKm,
		Mu:            mu,
		J2:            j2,
		J3:            j3,
		J4:            j4,
	}
	gm.XKE = 60.0 / math.Sqrt(earthRadiusKm*earthRadiusKm*earthRadiusKm/mu)
	gm.CK2 = 0.5 * j2
	gm.CK4 = -0.375 * j4
	gm.J3OverJ2 = j3 / j2
	gm.QOMS2T = math.Pow((120.0-78.0)/earthRadiusKm, 4)
	gm.S = 1.0 + 78.0/earthRadiusKm
	return gm
}

// WGS72 is the gravity model NORAD two-line element sets are fit against.
var WGS72 = newGravityModel(6378.135, 398600.8, 0.001082616, -0.00000253881, -0.00000165597)
