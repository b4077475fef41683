package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstwx07/routeto-backend-go/internal/spatial"
)

// gridPoints builds a deterministic spread of points around downtown Toronto.
func gridPoints(n int) []spatial.Point {
	points := make([]spatial.Point, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, spatial.Point{
			Lat: 43.6 + float64(i%25)*0.004,
			Lng: -79.5 + float64(i/25)*0.004,
		})
	}
	return points
}

func TestKMeansEmptyInput(t *testing.T) {
	assert.Nil(t, KMeans(nil, 10))
	assert.Nil(t, KMeans([]spatial.Point{}, 10))
}

func TestKMeansClusterCount(t *testing.T) {
	points := gridPoints(200)

	clusters := KMeans(points, 12)
	assert.LessOrEqual(t, len(clusters), 12)
	assert.NotEmpty(t, clusters)
}

func TestKMeansCountsSumToInput(t *testing.T) {
	points := gridPoints(317)

	for _, k := range []int{1, 5, 30, 100} {
		clusters := KMeans(points, k)
		total := 0
		for _, c := range clusters {
			total += c.Count
			assert.Greater(t, c.Count, 0, "empty clusters must be dropped")
		}
		assert.Equal(t, len(points), total, "k=%d", k)
	}
}

func TestKMeansMoreClustersThanPoints(t *testing.T) {
	points := gridPoints(4)

	clusters := KMeans(points, 50)
	require.Len(t, clusters, 4, "k >= n degenerates to one cluster per point")
	for i, c := range clusters {
		assert.Equal(t, 1, c.Count)
		assert.Equal(t, points[i].Lat, c.CenterLat)
		assert.Equal(t, points[i].Lng, c.CenterLng)
	}
}

func TestKMeansDeterministic(t *testing.T) {
	points := gridPoints(500)

	first := KMeans(points, 20)
	for run := 0; run < 3; run++ {
		assert.Equal(t, first, KMeans(points, 20), "identical input must give identical clusters")
	}
}

func TestKMeansSeparatesDistantGroups(t *testing.T) {
	var points []spatial.Point
	for i := 0; i < 10; i++ {
		points = append(points, spatial.Point{Lat: 43.60 + float64(i)*0.0001, Lng: -79.50})
	}
	for i := 0; i < 10; i++ {
		points = append(points, spatial.Point{Lat: 43.80 + float64(i)*0.0001, Lng: -79.20})
	}

	clusters := KMeans(points, 2)
	require.Len(t, clusters, 2)
	for _, c := range clusters {
		assert.Equal(t, 10, c.Count)
	}
}

func TestKMeansRadiusBounds(t *testing.T) {
	points := gridPoints(600)

	for _, k := range []int{1, 3, 60} {
		for _, c := range KMeans(points, k) {
			assert.GreaterOrEqual(t, c.Radius, 8.0)
			assert.LessOrEqual(t, c.Radius, 30.0)
		}
	}
}

func TestDownsample(t *testing.T) {
	points := gridPoints(1000)

	kept := Downsample(points, 100)
	assert.Len(t, kept, 100)
	assert.Equal(t, points[0], kept[0], "stride sampling keeps the first point")

	assert.Equal(t, points, Downsample(points, 1000), "no-op when already within budget")
	assert.Equal(t, points, Downsample(points, 0), "non-positive budget disables sampling")

	// Deterministic
	assert.Equal(t, kept, Downsample(points, 100))
}
