package domain

import "fmt"

// Immutable geographic coordinates (longitude, latitude) as returned by geocoders.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates in (lat, lon) order, as expected by distance formulas.
func (c Coordinates) LatLon() (float64, float64) { return c.Lat, c.Lon }

func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f %.6f", c.Lon, c.Lat)
}
