package utils

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const metersPerMile = 1609.344

// MoveDistanceMiles estimates the straight-line distance of a move in miles
// from the geocoded origin and destination. It is a quoting aid, not a
// routing figure. Returns 0 when either endpoint is missing.
func MoveDistanceMiles(originLat, originLng, destLat, destLng *float64) float64 {
	if originLat == nil || originLng == nil || destLat == nil || destLng == nil {
		return 0
	}
	origin := orb.Point{*originLng, *originLat}
	dest := orb.Point{*destLng, *destLat}
	return geo.Distance(origin, dest) / metersPerMile
}
