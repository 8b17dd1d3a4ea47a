package analyze

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Raliaaaaamadou/model-your-data/pkg/model"
	"github.com/Raliaaaaamadou/model-your-data/pkg/render"
	"github.com/Raliaaaaamadou/model-your-data/pkg/table"
)

const kmeansMaxIter = 300

// runClustering standardizes the clustering feature set (all numeric
// columns unless the request narrows it), fits k-means, and renders the
// first two feature dimensions colored by assignment with centroids in
// original units.
func runClustering(t *table.Table, params Params) (*Result, error) {
	numeric := table.NumericColumns(t)
	if len(numeric) < 2 {
		return nil, &NoNumericDataError{Op: string(OpClustering), Need: 2, Have: len(numeric)}
	}

	features := numeric
	if len(params.Features) > 0 {
		isNumeric := make(map[string]bool, len(numeric))
		for _, n := range numeric {
			isNumeric[n] = true
		}
		for _, f := range params.Features {
			if !isNumeric[f] {
				return nil, &InvalidParameterError{Name: "features", Value: f, Reason: "not a numeric column"}
			}
		}
		features = params.Features
	}

	rows := table.CompleteRows(t, features)
	if len(rows) < params.Clusters {
		return nil, &InsufficientDataError{Op: string(OpClustering), Need: params.Clusters, Have: len(rows)}
	}

	// Standardize before fitting: squared euclidean distance is
	// scale-sensitive.
	scaler := model.NewStandardScaler()
	scaled, err := scaler.FitTransform(rows)
	if err != nil {
		return nil, fmt.Errorf("clustering scale: %w", err)
	}

	km := model.NewKMeans(params.Clusters, kmeansMaxIter, params.Seed)
	if err := km.Fit(scaled); err != nil {
		return nil, fmt.Errorf("clustering fit: %w", err)
	}

	// Centroids go back to original units for reporting and plotting.
	centroids := scaler.InverseTransform(km.Centroids)

	p := plotBase(fmt.Sprintf("K-Means Clustering (k=%d)", params.Clusters), features[0], features[1])
	sizes := make([]int, params.Clusters)
	for k := 0; k < params.Clusters; k++ {
		var pts plotter.XYs
		for i, label := range km.Labels {
			if label == k {
				pts = append(pts, plotter.XY{X: rows[i][0], Y: rows[i][1]})
			}
		}
		sizes[k] = len(pts)
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("clustering figure: %w", err)
		}
		s.Color = clusterColors[k%len(clusterColors)]
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("cluster %d", k), s)
	}

	centroidPts := make(plotter.XYs, len(centroids))
	for i, c := range centroids {
		centroidPts[i] = plotter.XY{X: c[0], Y: c[1]}
	}
	cs, err := plotter.NewScatter(centroidPts)
	if err != nil {
		return nil, fmt.Errorf("clustering figure: %w", err)
	}
	cs.Shape = draw.CrossGlyph{}
	cs.Radius = vg.Points(6)
	p.Add(cs)
	p.Legend.Add("centroids", cs)

	art, err := render.EncodePlot(p, render.SingleWidth, render.SingleHeight)
	if err != nil {
		return nil, fmt.Errorf("clustering render: %w", err)
	}

	return &Result{
		Op:    OpClustering,
		Image: art,
		Stats: Stats{
			"n_clusters":    params.Clusters,
			"n_samples":     len(rows),
			"features_used": features,
			"inertia":       km.Inertia,
			"centroids":     centroids,
			"cluster_sizes": sizes,
		},
	}, nil
}
