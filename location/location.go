package location

// Point is a WGS84 coordinate pair
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Default is the city-center placeholder used when nothing better is known
var Default = Point{Lat: 6.9271, Lng: 79.8612}

// nearbyOffset nudges a fallback position off the exact pickup point so it
// reads as "near the restaurant" rather than "at the restaurant"
const nearbyOffset = 0.01

// Fallback produces a best-effort position when the courier has reported no
// coordinates. With a known pickup point it returns that point offset by
// +0.01 degrees in both axes; otherwise the fixed city-center default. This
// is a degraded-mode placeholder, not an estimate — it never consults any
// positioning source.
func Fallback(pickup *Point) Point {
	if pickup != nil {
		return Point{Lat: pickup.Lat + nearbyOffset, Lng: pickup.Lng + nearbyOffset}
	}
	return Default
}
