package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Beijing city center, a representative in-China coordinate
const (
	beijingLon = 116.404
	beijingLat = 39.915
)

func TestWGS84GCJ02RoundTrip(t *testing.T) {
	gcjLon, gcjLat := WGS84ToGCJ02(beijingLon, beijingLat)

	// The offset is real but small
	assert.NotEqual(t, beijingLon, gcjLon)
	assert.InDelta(t, beijingLon, gcjLon, 0.01)
	assert.InDelta(t, beijingLat, gcjLat, 0.01)

	backLon, backLat := GCJ02ToWGS84(gcjLon, gcjLat)
	assert.InDelta(t, beijingLon, backLon, 1e-4)
	assert.InDelta(t, beijingLat, backLat, 1e-4)
}

func TestGCJ02BD09RoundTrip(t *testing.T) {
	bdLon, bdLat := GCJ02ToBD09(beijingLon, beijingLat)
	assert.NotEqual(t, beijingLon, bdLon)

	backLon, backLat := BD09ToGCJ02(bdLon, bdLat)
	assert.InDelta(t, beijingLon, backLon, 1e-4)
	assert.InDelta(t, beijingLat, backLat, 1e-4)
}

func TestBD09ToWGS84Chain(t *testing.T) {
	bdLon, bdLat := WGS84ToBD09(beijingLon, beijingLat)
	backLon, backLat := BD09ToWGS84(bdLon, bdLat)

	assert.InDelta(t, beijingLon, backLon, 1e-3)
	assert.InDelta(t, beijingLat, backLat, 1e-3)
}

func TestOutOfChinaPassthrough(t *testing.T) {
	// Tokyo: the GCJ02 obfuscation only applies inside China
	lon, lat := 139.69, 35.68
	assert.True(t, OutOfChina(lon, lat))

	outLon, outLat := WGS84ToGCJ02(lon, lat)
	assert.Equal(t, lon, outLon)
	assert.Equal(t, lat, outLat)

	outLon, outLat = GCJ02ToWGS84(lon, lat)
	assert.Equal(t, lon, outLon)
	assert.Equal(t, lat, outLat)
}

func TestOutOfChinaBounds(t *testing.T) {
	assert.False(t, OutOfChina(beijingLon, beijingLat))
	assert.True(t, OutOfChina(-0.12, 51.5))  // London
	assert.True(t, OutOfChina(116.404, 2.0)) // south of the box
}
