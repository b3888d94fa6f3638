/*
The rank package implements the rank engine: power iteration over a directed
link graph, producing a stationary visitation-probability vector over nodes.

Global() computes the generic rank, where the random jump lands uniformly on
any node. Personalized() biases the random jump toward a seed set, yielding the
topic-specific variant.

# REFERENCES

[1] T. Haveliwala; "Topic-Sensitive PageRank"
URL: http://www-cs-students.stanford.edu/~taherh/papers/topic-sensitive-pagerank.pdf
*/
package rank

import (
	"context"
	"errors"

	"github.com/linklab/rankengine/pkg/models"
)

type Options struct {
	// Damping is the probability that the random walk continues via links
	// rather than jumping. It must be in (0,1).
	Damping float64

	// Tolerance is the L1 distance between successive rank vectors below
	// which the iteration is considered converged.
	Tolerance float64

	// MaxIterations caps the number of iterations. Reaching the cap before
	// the tolerance is met is not an error; the capped vector is still returned.
	MaxIterations int
}

// DefaultOptions() returns the conventional engine parameters.
func DefaultOptions() Options {
	return Options{
		Damping:       0.85,
		Tolerance:     1e-6,
		MaxIterations: 100,
	}
}

// Validate() returns the appropriate error if one of the options is out of range.
func (o Options) Validate() error {
	if o.Damping <= 0 || o.Damping >= 1 {
		return ErrInvalidDamping
	}

	if o.Tolerance <= 0 {
		return ErrInvalidTolerance
	}

	if o.MaxIterations <= 0 {
		return ErrInvalidMaxIterations
	}

	return nil
}

// Result contains the computed rank vector and which stop condition fired.
type Result struct {
	Ranks      models.RankVector
	Iterations int
	Converged  bool

	// Distance is the L1 distance between the last two rank vectors.
	Distance float64
}

// Global() computes the rank vector of the whole graph, with uniform random jumps.
func Global(ctx context.Context, DB models.Database, opts Options) (*Result, error) {

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	nodeIDs, succ, err := loadGraph(ctx, DB)
	if err != nil {
		return nil, err
	}

	// uniform teleport vector: 1/N for each node
	teleport := make(models.RankVector, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		teleport[nodeID] = 1.0 / float64(len(nodeIDs))
	}

	ranks := copyVector(teleport)
	return powerIteration(nodeIDs, succ, teleport, ranks, opts), nil
}

// Personalized() computes the topic-specific rank vector, with random jumps
// biased toward the seed set.
func Personalized(ctx context.Context, DB models.Database, seed SeedSet, opts Options) (*Result, error) {

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	nodeIDs, succ, err := loadGraph(ctx, DB)
	if err != nil {
		return nil, err
	}

	if err := seed.Validate(ctx, DB); err != nil {
		return nil, err
	}

	// teleport vector: the normalized seed weights, 0 outside the seed set
	normalized := seed.Normalized()
	teleport := make(models.RankVector, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		teleport[nodeID] = normalized[nodeID]
	}

	ranks := copyVector(teleport)
	return powerIteration(nodeIDs, succ, teleport, ranks, opts), nil
}

// loadGraph() reads the whole graph once up front, so the iterations are a pure
// function of the previous rank vector and the immutable adjacency.
func loadGraph(ctx context.Context, DB models.Database) ([]uint32, [][]uint32, error) {

	if DB == nil {
		return nil, nil, models.ErrNilDB
	}

	if err := DB.Validate(); err != nil {
		return nil, nil, err
	}

	nodeIDs, err := DB.AllNodes(ctx)
	if err != nil {
		return nil, nil, err
	}

	if len(nodeIDs) == 0 {
		return nil, nil, models.ErrEmptyDB
	}

	succ, err := DB.Successors(ctx, nodeIDs...)
	if err != nil {
		return nil, nil, err
	}

	return nodeIDs, succ, nil
}

/*
powerIteration() repeatedly applies the rank update until the L1 distance between
successive vectors drops below the tolerance, or the iteration cap is reached.

Each iteration computes, for every node n:

	newRank(n) = (1-d) * teleport(n) + d * sum_{m --> n} rank(m) / outDegree(m)

The rank mass of dangling nodes (outDegree 0) is redistributed according to the
teleport vector, so the total mass stays 1.
*/
func powerIteration(nodeIDs []uint32, succ [][]uint32,
	teleport, ranks models.RankVector, opts Options) *Result {

	var distance float64
	for iteration := 1; iteration <= opts.MaxIterations; iteration++ {

		newRanks := step(nodeIDs, succ, teleport, ranks, opts.Damping)
		distance = models.Distance(ranks, newRanks)
		ranks = newRanks

		if distance < opts.Tolerance {
			return &Result{
				Ranks:      ranks,
				Iterations: iteration,
				Converged:  true,
				Distance:   distance,
			}
		}
	}

	return &Result{
		Ranks:      ranks,
		Iterations: opts.MaxIterations,
		Converged:  false,
		Distance:   distance,
	}
}

// step() computes the next rank vector. The previous vector is left untouched.
func step(nodeIDs []uint32, succ [][]uint32,
	teleport, ranks models.RankVector, damping float64) models.RankVector {

	// the rank mass held by dangling nodes
	danglingMass := 0.0
	for i, nodeID := range nodeIDs {
		if len(succ[i]) == 0 {
			danglingMass += ranks[nodeID]
		}
	}

	// base component: random jumps plus the redistributed dangling mass
	newRanks := make(models.RankVector, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		newRanks[nodeID] = (1-damping)*teleport[nodeID] + damping*danglingMass*teleport[nodeID]
	}

	// distribute each node's rank through its outbound links
	for i, nodeID := range nodeIDs {
		if len(succ[i]) == 0 {
			continue
		}

		share := damping * ranks[nodeID] / float64(len(succ[i]))
		for _, succID := range succ[i] {
			newRanks[succID] += share
		}
	}

	return newRanks
}

func copyVector(v models.RankVector) models.RankVector {
	c := make(models.RankVector, len(v))
	for key, val := range v {
		c[key] = val
	}
	return c
}

// ---------------------------------ERROR-CODES--------------------------------

var ErrInvalidDamping = errors.New("damping should be a number between 0 and 1 (excluded)")
var ErrInvalidTolerance = errors.New("tolerance should be greater than zero")
var ErrInvalidMaxIterations = errors.New("maxIterations should be greater than zero")
