// Package transform converts between the coordinate systems used by Chinese
// mapping services: WGS84 (GPS), GCJ02 (Mars, used by Amap and most Chinese
// services) and BD09 (Baidu). All functions are pure math over (lon, lat)
// pairs in degrees.
package transform

import "math"

// Coordinate transformation constants
const (
	xPi = math.Pi * 3000.0 / 180.0

	// Krasovsky 1940 ellipsoid parameters used by GCJ02
	semiMajorAxis  = 6378245.0
	eccentricitySq = 0.00669342162296594323
)

// GCJ02ToBD09 converts GCJ02 (Mars) coordinates to BD09 (Baidu) coordinates
func GCJ02ToBD09(lon, lat float64) (float64, float64) {
	z := math.Sqrt(lon*lon+lat*lat) + 0.00002*math.Sin(lat*xPi)
	theta := math.Atan2(lat, lon) + 0.000003*math.Cos(lon*xPi)
	return z*math.Cos(theta) + 0.0065, z*math.Sin(theta) + 0.006
}

// BD09ToGCJ02 converts BD09 (Baidu) coordinates to GCJ02 (Mars) coordinates
func BD09ToGCJ02(lon, lat float64) (float64, float64) {
	x := lon - 0.0065
	y := lat - 0.006
	z := math.Sqrt(x*x+y*y) - 0.00002*math.Sin(y*xPi)
	theta := math.Atan2(y, x) - 0.000003*math.Cos(x*xPi)
	return z * math.Cos(theta), z * math.Sin(theta)
}

// WGS84ToGCJ02 converts WGS84 (GPS) coordinates to GCJ02 (Mars) coordinates.
// Coordinates outside China pass through unchanged.
func WGS84ToGCJ02(lon, lat float64) (float64, float64) {
	if OutOfChina(lon, lat) {
		return lon, lat
	}

	dLon, dLat := delta(lon, lat)
	return lon + dLon, lat + dLat
}

// GCJ02ToWGS84 converts GCJ02 (Mars) coordinates to WGS84 (GPS) coordinates.
// Coordinates outside China pass through unchanged.
func GCJ02ToWGS84(lon, lat float64) (float64, float64) {
	if OutOfChina(lon, lat) {
		return lon, lat
	}

	dLon, dLat := delta(lon, lat)
	return lon*2 - (lon + dLon), lat*2 - (lat + dLat)
}

// BD09ToWGS84 converts BD09 coordinates to WGS84 via GCJ02
func BD09ToWGS84(lon, lat float64) (float64, float64) {
	return GCJ02ToWGS84(BD09ToGCJ02(lon, lat))
}

// WGS84ToBD09 converts WGS84 coordinates to BD09 via GCJ02
func WGS84ToBD09(lon, lat float64) (float64, float64) {
	return GCJ02ToBD09(WGS84ToGCJ02(lon, lat))
}

// OutOfChina reports whether the coordinate lies outside Chinese territory,
// where no deflection is applied
func OutOfChina(lon, lat float64) bool {
	return !(lon > 73.66 && lon < 135.05 && lat > 3.86 && lat < 53.55)
}

// delta computes the GCJ02 deflection for a WGS84 coordinate
func delta(lon, lat float64) (float64, float64) {
	dLat := transformLat(lon-105.0, lat-35.0)
	dLon := transformLon(lon-105.0, lat-35.0)

	radLat := lat / 180.0 * math.Pi
	magic := math.Sin(radLat)
	magic = 1 - eccentricitySq*magic*magic
	sqrtMagic := math.Sqrt(magic)

	dLat = (dLat * 180.0) / ((semiMajorAxis * (1 - eccentricitySq)) / (magic * sqrtMagic) * math.Pi)
	dLon = (dLon * 180.0) / (semiMajorAxis / sqrtMagic * math.Cos(radLat) * math.Pi)

	return dLon, dLat
}

func transformLat(lon, lat float64) float64 {
	ret := -100.0 + 2.0*lon + 3.0*lat + 0.2*lat*lat +
		0.1*lon*lat + 0.2*math.Sqrt(math.Abs(lon))
	ret += (20.0*math.Sin(6.0*lon*math.Pi) + 20.0*math.Sin(2.0*lon*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(lat*math.Pi) + 40.0*math.Sin(lat/3.0*math.Pi)) * 2.0 / 3.0
	ret += (160.0*math.Sin(lat/12.0*math.Pi) + 320*math.Sin(lat*math.Pi/30.0)) * 2.0 / 3.0
	return ret
}

func transformLon(lon, lat float64) float64 {
	ret := 300.0 + lon + 2.0*lat + 0.1*lon*lon +
		0.1*lon*lat + 0.1*math.Sqrt(math.Abs(lon))
	ret += (20.0*math.Sin(6.0*lon*math.Pi) + 20.0*math.Sin(2.0*lon*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(lon*math.Pi) + 40.0*math.Sin(lon/3.0*math.Pi)) * 2.0 / 3.0
	ret += (150.0*math.Sin(lon/12.0*math.Pi) + 300.0*math.Sin(lon/30.0*math.Pi)) * 2.0 / 3.0
	return ret
}
