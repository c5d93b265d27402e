package sgp4

import (
	"strconv"
	"strings"
	"time"
)

const tleLineLength = 69

// TLE is the semantic record produced by the decoder: immutable after
// construction. Angles are stored in degrees, matching the card format;
// the initializer is responsible for converting to radians.
type TLE struct {
	Name                    string
	CatalogNumber           int
	InternationalDesignator string
	Epoch                   time.Time

	MeanMotionDotOver2  float64 // rev/day^2
	MeanMotionDdotOver6 float64 // rev/day^3, implicit leading decimal
	Bstar               float64 // dimensionless drag-like coefficient

	InclinationDeg     float64
	RAANDeg            float64
	Eccentricity       float64 // [0, 1)
	ArgPerigeeDeg      float64
	MeanAnomalyDeg     float64
	MeanMotion         float64 // rev/day
	RevolutionNumber   int
}

// DecodeOptions configures DecodeTLE. The zero value is the NORAD-standard
// behavior: checksum digits are not read or verified.
type DecodeOptions struct {
	// StrictChecksum rejects a TLE whose modulo-10 line checksum does not
	// match its trailing digit. Off by default: published TLE sets
	// (including Vallado's own validation vectors) are known to carry
	// stale or incorrect checksums, and the checksum carries no bearing
	// on propagation correctness.
	StrictChecksum bool
}

// DecodeTLE parses a name plus two 69-character element lines under the
// default decode options (checksums ignored).
func DecodeTLE(name, line1, line2 string) (*TLE, error) {
	return DecodeTLEWithOptions(name, line1, line2, DecodeOptions{})
}

// DecodeTLEWithOptions parses a name plus two 69-character element lines.
func DecodeTLEWithOptions(name, line1, line2 string, opts DecodeOptions) (*TLE, error) {
	if len(line1) != tleLineLength {
		return nil, &BadLineLengthError{Which: "line1", Length: len(line1)}
	}
	if len(line2) != tleLineLength {
		return nil, &BadLineLengthError{Which: "line2", Length: len(line2)}
	}
	if line1[0] != '1' {
		return nil, &BadLinePrefixError{Which: "line1", Got: line1[0]}
	}
	if line2[0] != '2' {
		return nil, &BadLinePrefixError{Which: "line2", Got: line2[0]}
	}

	tle := &TLE{Name: strings.TrimSpace(name)}

	cat1, err := strconv.Atoi(fixedField(line1, 2, 5))
	if err != nil {
		return nil, &BadNumericError{Field: "catalog_number (line1)", Raw: fixedField(line1, 2, 5), Err: err}
	}
	cat2, err := strconv.Atoi(fixedField(line2, 2, 5))
	if err != nil {
		return nil, &BadNumericError{Field: "catalog_number (line2)", Raw: fixedField(line2, 2, 5), Err: err}
	}
	if cat1 != cat2 {
		return nil, &CatalogMismatchError{Line1: cat1, Line2: cat2}
	}
	tle.CatalogNumber = cat1

	tle.InternationalDesignator = fixedField(line1, 9, 8)

	yy, err := strconv.Atoi(fixedField(line1, 18, 2))
	if err != nil {
		return nil, &BadNumericError{Field: "epoch_year", Raw: fixedField(line1, 18, 2), Err: err}
	}
	dayField := fixedField(line1, 20, 12)
	day, err := strconv.ParseFloat(dayField, 64)
	if err != nil {
		return nil, &BadNumericError{Field: "epoch_day", Raw: dayField, Err: err}
	}
	year := yy + 1900
	if yy < 57 {
		year = yy + 2000
	}
	epoch, err := reconstructEpoch(year, day)
	if err != nil {
		return nil, err
	}
	tle.Epoch = epoch

	mmdField := fixedField(line1, 33, 10)
	mmd, err := strconv.ParseFloat(mmdField, 64)
	if err != nil {
		return nil, &BadNumericError{Field: "mean_motion_dot_over_2", Raw: mmdField, Err: err}
	}
	tle.MeanMotionDotOver2 = mmd

	mmddField := fixedField(line1, 44, 8)
	mmdd, err := parseImplicitMantissa(line1[44:52])
	if err != nil {
		return nil, &BadNumericError{Field: "mean_motion_ddot_over_6", Raw: mmddField, Err: err}
	}
	tle.MeanMotionDdotOver6 = mmdd

	bstarField := fixedField(line1, 53, 8)
	bstar, err := parseImplicitMantissa(line1[53:61])
	if err != nil {
		return nil, &BadNumericError{Field: "bstar", Raw: bstarField, Err: err}
	}
	tle.Bstar = bstar

	if opts.StrictChecksum {
		if err := verifyChecksum("line1", line1); err != nil {
			return nil, err
		}
	}

	incl, err := strconv.ParseFloat(fixedField(line2, 8, 8), 64)
	if err != nil {
		return nil, &BadNumericError{Field: "inclination", Raw: fixedField(line2, 8, 8), Err: err}
	}
	tle.InclinationDeg = incl

	raan, err := strconv.ParseFloat(fixedField(line2, 17, 8), 64)
	if err != nil {
		return nil, &BadNumericError{Field: "raan", Raw: fixedField(line2, 17, 8), Err: err}
	}
	tle.RAANDeg = raan

	eccField := fixedField(line2, 26, 7)
	ecc, err := strconv.ParseFloat("0."+eccField, 64)
	if err != nil {
		return nil, &BadNumericError{Field: "eccentricity", Raw: eccField, Err: err}
	}
	if ecc < 0 || ecc >= 1 {
		return nil, &BadEccentricityError{Value: ecc}
	}
	tle.Eccentricity = ecc

	argp, err := strconv.ParseFloat(fixedField(line2, 34, 8), 64)
	if err != nil {
		return nil, &BadNumericError{Field: "argument_of_perigee", Raw: fixedField(line2, 34, 8), Err: err}
	}
	tle.ArgPerigeeDeg = argp

	ma, err := strconv.ParseFloat(fixedField(line2, 43, 8), 64)
	if err != nil {
		return nil, &BadNumericError{Field: "mean_anomaly", Raw: fixedField(line2, 43, 8), Err: err}
	}
	tle.MeanAnomalyDeg = ma

	mm, err := strconv.ParseFloat(fixedField(line2, 52, 11), 64)
	if err != nil {
		return nil, &BadNumericError{Field: "mean_motion", Raw: fixedField(line2, 52, 11), Err: err}
	}
	tle.MeanMotion = mm

	rev, err := strconv.Atoi(fixedField(line2, 63, 5))
	if err != nil {
		return nil, &BadNumericError{Field: "revolution_number", Raw: fixedField(line2, 63, 5), Err: err}
	}
	tle.RevolutionNumber = rev

	if opts.StrictChecksum {
		if err := verifyChecksum("line2", line2); err != nil {
			return nil, err
		}
	}

	return tle, nil
}

func reconstructEpoch(year int, day float64) (time.Time, error) {
	if day < 1 || day >= 367 {
		return time.Time{}, &BadEpochError{Year: year, Day: day}
	}
	base := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	wholeDays := int(day)
	fracDay := day - float64(wholeDays)
	t := base.AddDate(0, 0, wholeDays-1)
	nanos := int64(fracDay * 86400.0 * 1e9)
	return t.Add(time.Duration(nanos)), nil
}

// verifyChecksum recomputes the modulo-10 checksum of the first 68
// characters of line (digits sum, '-' counts as 1) and compares it to the
// trailing digit.
func verifyChecksum(which, line string) error {
	sum := 0
	for i := 0; i < tleLineLength-1; i++ {
		c := line[i]
		switch {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	want, err := strconv.Atoi(string(line[tleLineLength-1]))
	if err != nil {
		return &BadNumericError{Field: "checksum", Raw: string(line[tleLineLength-1]), Err: err}
	}
	if got := sum % 10; got != want {
		return &ChecksumMismatchError{Which: which, Want: want, Computed: got}
	}
	return nil
}
