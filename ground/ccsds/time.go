// Package ccsds implements the CCSDS Space Packet wire format: CRC-16,
// the 6-byte primary header, and the time conversions secondary headers
// and the simulator both depend on.
package ccsds

import (
	"math"
	"time"
)

// gpsEpoch is 1980-01-06T00:00:00Z, the origin of GPS time.
var gpsEpoch = time.Date(1980, time.January, 6, 0, 0, 0, 0, time.UTC)

// taiUTCOffsetSeconds is the current (post-2017) TAI-UTC leap-second
// offset. Historical leap-second tables are out of scope: the
// simulation and codec only need a fixed, deterministic offset.
const taiUTCOffsetSeconds = 37

// gpsUTCOffsetSeconds is the current GPS-UTC offset (GPS is ahead of
// UTC and does not apply leap seconds after its 1980 epoch).
const gpsUTCOffsetSeconds = 18

// julianDateUnixEpoch is the Julian Date of the Unix epoch
// (1970-01-01T00:00:00Z).
const julianDateUnixEpoch = 2440587.5

// TAI returns t shifted by the fixed TAI-UTC leap-second offset.
func TAI(t time.Time) time.Time {
	return t.Add(taiUTCOffsetSeconds * time.Second)
}

// GPSSeconds returns the number of GPS seconds elapsed since the GPS
// epoch for the given UTC instant.
func GPSSeconds(t time.Time) float64 {
	return t.Add(gpsUTCOffsetSeconds * time.Second).Sub(gpsEpoch).Seconds()
}

// JulianDate returns the Julian Date for a UTC instant.
func JulianDate(t time.Time) float64 {
	unixSeconds := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return julianDateUnixEpoch + unixSeconds/86400.0
}

// J2000Centuries returns Julian centuries of Terrestrial Time since
// the J2000.0 epoch (JD 2451545.0), the standard argument for
// low-precision ephemerides and sidereal-time polynomials.
func J2000Centuries(jd float64) float64 {
	return (jd - 2451545.0) / 36525.0
}

// GMSTRadians returns the Greenwich Mean Sidereal Time, in radians,
// for the given Julian Date, via the IAU 1982 polynomial.
func GMSTRadians(jd float64) float64 {
	t := J2000Centuries(jd)
	gmstSeconds := 24110.54841 +
		8640184.812866*t +
		0.093104*t*t -
		6.2e-6*t*t*t
	// GMST above is referenced to UT1 days of 86400 SI seconds elapsed
	// since the preceding midnight; fold in the fractional day.
	fracDay := math.Mod(jd-0.5, 1.0)
	gmstSeconds += fracDay * 86400.0 * 1.00273790935
	gmstRad := math.Mod(gmstSeconds/86400.0*2*math.Pi, 2*math.Pi)
	if gmstRad < 0 {
		gmstRad += 2 * math.Pi
	}
	return gmstRad
}
