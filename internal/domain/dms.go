package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// dmsRe matches `27° 14' 07.52" S`. Whitespace between fields is optional.
var dmsRe = regexp.MustCompile(`(\d+)°\s*(\d+)'\s*([\d.]+)"\s*([NSEW])`)

// DefaultPosition is substituted for coordinates that cannot be parsed.
// It is the Acrasia-8 surface location in decimal degrees.
var DefaultPosition = Position{Lat: -27.2354, Lon: 140.9959}

// Position is a decimal-degree coordinate pair ready for plotting.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// Fallback is set when either axis was replaced by DefaultPosition.
	Fallback bool `json:"fallback,omitempty"`
}

// ParseDMS converts a degrees-minutes-seconds string to decimal degrees.
// South and west hemispheres are negative. The boolean is false when the
// string does not match the DMS pattern.
func ParseDMS(s string) (float64, bool) {
	m := dmsRe.FindStringSubmatch(s)
	if len(m) != 5 {
		return 0, false
	}

	deg, errD := strconv.ParseFloat(m[1], 64)
	mins, errM := strconv.ParseFloat(m[2], 64)
	secs, errS := strconv.ParseFloat(m[3], 64)
	if errD != nil || errM != nil || errS != nil {
		return 0, false
	}

	decimal := deg + mins/60 + secs/3600
	if m[4] == "S" || m[4] == "W" {
		decimal = -decimal
	}
	return decimal, true
}

// FormatDMS converts decimal degrees to a DMS string with seconds rounded to
// two decimals. isLatitude selects N/S instead of E/W. Rounding never leaves
// 60 in the seconds or minutes field: overflow carries into the next unit.
func FormatDMS(decimal float64, isLatitude bool) string {
	hemisphere := "E"
	switch {
	case isLatitude && decimal < 0:
		hemisphere = "S"
	case isLatitude:
		hemisphere = "N"
	case decimal < 0:
		hemisphere = "W"
	}

	abs := math.Abs(decimal)
	deg := math.Floor(abs)
	minutesFloat := (abs - deg) * 60
	mins := math.Floor(minutesFloat)
	secs := math.Round((minutesFloat-mins)*60*100) / 100

	if secs >= 60 {
		secs = 0
		mins++
	}
	if mins >= 60 {
		mins = 0
		deg++
	}

	return fmt.Sprintf(`%d° %02d' %05.2f" %s`, int(deg), int(mins), secs, hemisphere)
}

// ResolvePosition decodes a location for plotting. Each axis that fails to
// parse is replaced by the matching DefaultPosition axis and the result is
// flagged as a fallback so callers can surface the data-quality problem.
func ResolvePosition(loc Location) Position {
	pos := Position{}

	lat, okLat := ParseDMS(loc.Lat)
	if okLat {
		pos.Lat = lat
	} else {
		pos.Lat = DefaultPosition.Lat
	}

	lon, okLon := ParseDMS(loc.Long)
	if okLon {
		pos.Lon = lon
	} else {
		pos.Lon = DefaultPosition.Lon
	}

	pos.Fallback = !okLat || !okLon
	return pos
}
