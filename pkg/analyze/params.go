package analyze

import (
	"strconv"
	"strings"
)

// DefaultClusters is the cluster count used when the request does not set
// n_clusters.
const DefaultClusters = 3

// defaultSeed mirrors the fixed random state of the original clustering
// behavior so repeated requests over the same data agree.
const defaultSeed = 42

// Params are the validated, strongly-typed operation parameters coerced
// from the raw request mapping.
type Params struct {
	Clusters int
	Features []string // clustering feature subset; empty means all numeric columns
	Seed     int64
}

// parseParams validates the raw string parameters. Unknown keys are
// ignored; bad values fail with *InvalidParameterError rather than a raw
// parsing error.
func parseParams(raw map[string]string) (Params, error) {
	p := Params{Clusters: DefaultClusters, Seed: defaultSeed}

	if v, ok := raw["n_clusters"]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return p, &InvalidParameterError{Name: "n_clusters", Value: v, Reason: "must be an integer"}
		}
		if n < 1 {
			return p, &InvalidParameterError{Name: "n_clusters", Value: v, Reason: "must be a positive integer"}
		}
		p.Clusters = n
	}

	if v, ok := raw["features"]; ok {
		for _, f := range strings.Split(v, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			p.Features = append(p.Features, f)
		}
		if len(p.Features) < 2 {
			return p, &InvalidParameterError{Name: "features", Value: v, Reason: "needs at least two column names"}
		}
	}

	return p, nil
}
