package model

import (
	"errors"
	"math"
	"math/rand"
)

// KMeans partitions data points into K clusters with Lloyd's algorithm and
// k-means++ seeding. The random source is explicit so a fixed seed gives a
// reproducible fit.
type KMeans struct {
	K       int
	MaxIter int
	rng     *rand.Rand

	Centroids [][]float64
	Labels    []int
	Inertia   float64 // sum of squared distances to the assigned centroid
}

// NewKMeans creates a KMeans model with the given cluster count, iteration
// cap and seed.
func NewKMeans(k, maxIter int, seed int64) *KMeans {
	return &KMeans{
		K:       k,
		MaxIter: maxIter,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Fit clusters X, leaving the assignments in Labels, the final centers in
// Centroids and the sum of squared distances in Inertia. It fails when X
// is empty or has fewer rows than K.
func (m *KMeans) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("input data cannot be empty")
	}
	n, p := len(X), len(X[0])
	if n < m.K {
		return errors.New("number of data points is less than K")
	}

	m.initCenters(X)
	assign := make([]int, n)

	for it := 0; it < m.MaxIter; it++ {
		changed := false

		// Assignment step: nearest centroid per point.
		for i := 0; i < n; i++ {
			best, bestdSq := -1, math.MaxFloat64
			for k := 0; k < m.K; k++ {
				dSq := euclidSquared(X[i], m.Centroids[k])
				if dSq < bestdSq {
					bestdSq = dSq
					best = k
				}
			}
			if assign[i] != best {
				changed = true
			}
			assign[i] = best
		}

		// Update step: centroids move to the mean of their points.
		sums := make([][]float64, m.K)
		counts := make([]int, m.K)
		for k := 0; k < m.K; k++ {
			sums[k] = make([]float64, p)
		}
		for i := 0; i < n; i++ {
			k := assign[i]
			counts[k]++
			for j := 0; j < p; j++ {
				sums[k][j] += X[i][j]
			}
		}
		for k := 0; k < m.K; k++ {
			if counts[k] == 0 {
				continue // empty cluster keeps its centroid
			}
			for j := 0; j < p; j++ {
				m.Centroids[k][j] = sums[k][j] / float64(counts[k])
			}
		}

		if !changed && it > 0 {
			break
		}
	}

	// Final inertia against the converged centroids.
	m.Inertia = 0
	for i := 0; i < n; i++ {
		m.Inertia += euclidSquared(X[i], m.Centroids[assign[i]])
	}
	m.Labels = assign
	return nil
}

// initCenters seeds the centroids with k-means++: the first at random, the
// rest weighted by squared distance to the nearest already-chosen center.
func (m *KMeans) initCenters(X [][]float64) {
	n, d := len(X), len(X[0])
	m.Centroids = make([][]float64, m.K)

	idx := m.rng.Intn(n)
	m.Centroids[0] = append([]float64{}, X[idx]...)

	for k := 1; k < m.K; k++ {
		distSq := make([]float64, n)
		total := 0.0
		for i, x := range X {
			minDist := math.MaxFloat64
			for _, c := range m.Centroids[:k] {
				d2 := 0.0
				for j := 0; j < d; j++ {
					dx := x[j] - c[j]
					d2 += dx * dx
				}
				if d2 < minDist {
					minDist = d2
				}
			}
			distSq[i] = minDist
			total += minDist
		}

		if total == 0 {
			// All points coincide with a chosen center; any point works.
			m.Centroids[k] = append([]float64{}, X[m.rng.Intn(n)]...)
			continue
		}

		r := m.rng.Float64() * total
		cumulative := 0.0
		for i, d2 := range distSq {
			cumulative += d2
			if cumulative >= r {
				m.Centroids[k] = append([]float64{}, X[i]...)
				break
			}
		}
		if m.Centroids[k] == nil {
			m.Centroids[k] = append([]float64{}, X[n-1]...)
		}
	}
}

func euclidSquared(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}
