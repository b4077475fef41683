package analysis

import (
	"math"
	"sort"

	"github.com/jstwx07/routeto-backend-go/internal/models"
	"github.com/jstwx07/routeto-backend-go/internal/spatial"
)

const (
	// KMax bounds the requested cluster count.
	KMax = 200

	convergenceEpsilon = 1e-6
	maxIterations      = 100
)

// Downsample reduces the input to at most max points by deterministic
// stride sampling, preserving input order and spatial spread.
func Downsample(points []spatial.Point, max int) []spatial.Point {
	if max <= 0 || len(points) <= max {
		return points
	}

	out := make([]spatial.Point, 0, max)
	step := float64(len(points)) / float64(max)
	for i := 0; i < max; i++ {
		out = append(out, points[int(float64(i)*step)])
	}
	return out
}

// KMeans partitions the points into at most min(k, len(points)) spatial
// clusters using iterative centroid refinement over the (lng, lat) plane.
// Euclidean distance in degree space is an acceptable approximation at
// city scale; it skews over continental extents.
//
// Initialization is deterministic (evenly spaced quantiles of the input
// sorted by longitude then latitude) so identical queries produce stable
// cluster placements. Member counts always sum to len(points).
func KMeans(points []spatial.Point, k int) []models.Cluster {
	if len(points) == 0 {
		return nil
	}
	if k < 1 {
		k = 1
	}
	if k > KMax {
		k = KMax
	}
	if k >= len(points) {
		// One cluster per point, no iteration needed
		clusters := make([]models.Cluster, len(points))
		for i, p := range points {
			clusters[i] = models.Cluster{
				CenterLat: p.Lat,
				CenterLng: p.Lng,
				Count:     1,
				Radius:    models.SuggestedRadius(1),
			}
		}
		return clusters
	}

	centroids := seedCentroids(points, k)
	assignment := make([]int, len(points))

	for iter := 0; iter < maxIterations; iter++ {
		// Assign each point to its nearest centroid
		for i, p := range points {
			best := 0
			bestDist := math.Inf(1)
			for c, ctr := range centroids {
				d := degreeDistSq(p, ctr)
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			assignment[i] = best
		}

		// Recompute centroids
		sumLat := make([]float64, k)
		sumLng := make([]float64, k)
		counts := make([]int, k)
		for i, p := range points {
			c := assignment[i]
			sumLat[c] += p.Lat
			sumLng[c] += p.Lng
			counts[c]++
		}

		maxMove := 0.0
		for c := range centroids {
			if counts[c] == 0 {
				// Centroid lost all members; keep it in place, it is
				// dropped from the output below
				continue
			}
			next := spatial.Point{
				Lat: sumLat[c] / float64(counts[c]),
				Lng: sumLng[c] / float64(counts[c]),
			}
			if move := math.Sqrt(degreeDistSq(centroids[c], next)); move > maxMove {
				maxMove = move
			}
			centroids[c] = next
		}

		if maxMove < convergenceEpsilon {
			break
		}
	}

	// Build output, skipping empty clusters
	counts := make([]int, k)
	for _, c := range assignment {
		counts[c]++
	}

	clusters := make([]models.Cluster, 0, k)
	for c, ctr := range centroids {
		if counts[c] == 0 {
			continue
		}
		clusters = append(clusters, models.Cluster{
			CenterLat: ctr.Lat,
			CenterLng: ctr.Lng,
			Count:     counts[c],
			Radius:    models.SuggestedRadius(counts[c]),
		})
	}
	return clusters
}

// seedCentroids picks k initial centroids at evenly spaced quantiles of the
// input ordered by longitude then latitude.
func seedCentroids(points []spatial.Point, k int) []spatial.Point {
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := points[order[a]], points[order[b]]
		if pa.Lng != pb.Lng {
			return pa.Lng < pb.Lng
		}
		return pa.Lat < pb.Lat
	})

	centroids := make([]spatial.Point, k)
	if k == 1 {
		centroids[0] = points[order[len(order)/2]]
		return centroids
	}
	for i := 0; i < k; i++ {
		idx := i * (len(order) - 1) / (k - 1)
		centroids[i] = points[order[idx]]
	}
	return centroids
}

func degreeDistSq(a, b spatial.Point) float64 {
	dLat := a.Lat - b.Lat
	dLng := a.Lng - b.Lng
	return dLat*dLat + dLng*dLng
}
