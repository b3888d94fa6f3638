/*
The walks package implements a Monte Carlo estimate of the rank vector: a fixed
number of random walks is generated from each node, and the visit frequencies
approximate the stationary visitation probabilities computed by the rank engine.

The estimate serves as an independent cross-check of the power iteration, and
converges to it as walksPerNode grows.

# REFERENCES

[1] B. Bahmani, A. Chowdhury, A. Goel; "Fast Incremental and Personalized PageRank"
URL: http://snap.stanford.edu/class/cs224w-readings/bahmani10pagerank.pdf
*/
package walks

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"slices"

	"github.com/linklab/rankengine/pkg/models"
	"github.com/linklab/rankengine/pkg/utils/counter"
)

// RandomWalk represents the slice of nodeIDs visited during the walk (e.g. {1,2,77,5})
type RandomWalk []uint32

// Estimator generates random walks over a graph database and estimates node ranks.
type Estimator struct {
	// Alpha is the probability that a walk continues via links at each step.
	Alpha float64

	// WalksPerNode is the number of walks started from each node.
	WalksPerNode int
}

// NewEstimator() returns an Estimator after validating its parameters.
func NewEstimator(alpha float64, walksPerNode int) (*Estimator, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, ErrInvalidAlpha
	}

	if walksPerNode <= 0 {
		return nil, ErrInvalidWalksPerNode
	}

	return &Estimator{
		Alpha:        alpha,
		WalksPerNode: walksPerNode,
	}, nil
}

/*
performs a walk step and returns `nextNodeID` and `shouldStop`.

`shouldStop` is true if and only if:

- successorIDs is empty (dangling node)

- nextNodeID was already visited in one of the previous steps (cycle)
*/
func WalkStep(successorIDs, walk []uint32, rng *rand.Rand) (uint32, bool) {

	if len(successorIDs) == 0 {
		return math.MaxUint32, true
	}

	// randomly select the next node
	randomIndex := rng.Intn(len(successorIDs))
	nextNodeID := successorIDs[randomIndex]

	// if there is a cycle, stop
	if slices.Contains(walk, nextNodeID) {
		return math.MaxUint32, true
	}

	return nextNodeID, false
}

/*
Generate() generates a single RandomWalk from a specified starting node.
The function returns an error if the DB cannot find the successors of a node.

The walk breaks early when a cycle is encountered. This means a walk visits a
node at most once, which also mitigates self-boosting link rings. Since cycle
occurrences are improbable on large graphs, the estimate is not affected much.
*/
func (e *Estimator) Generate(ctx context.Context, DB models.Database,
	startingNodeID uint32, rng *rand.Rand) (RandomWalk, error) {

	if !DB.ContainsNode(ctx, startingNodeID) {
		return nil, models.ErrNodeNotFoundDB
	}

	var shouldBreak bool
	currentNodeID := startingNodeID
	walk := RandomWalk{currentNodeID}

	for {
		// stop with probability 1-alpha
		if rng.Float64() > e.Alpha {
			break
		}

		succ, err := DB.Successors(ctx, currentNodeID)
		if err != nil {
			return nil, err
		}

		currentNodeID, shouldBreak = WalkStep(succ[0], walk, rng)
		if shouldBreak {
			break
		}

		walk = append(walk, currentNodeID)
	}

	return walk, nil
}

/*
Estimate() generates WalksPerNode random walks from each node in the DB and
returns the visit frequencies as a RankVector. The total number of visits is
tracked with an atomic counter, and the returned vector sums to 1.
*/
func (e *Estimator) Estimate(ctx context.Context, DB models.Database,
	rng *rand.Rand) (models.RankVector, error) {

	if DB == nil {
		return nil, models.ErrNilDB
	}

	if err := DB.Validate(); err != nil {
		return nil, err
	}

	nodeIDs, err := DB.AllNodes(ctx)
	if err != nil {
		return nil, err
	}

	if len(nodeIDs) == 0 {
		return nil, models.ErrEmptyDB
	}

	visits := make(map[uint32]int64, len(nodeIDs))
	totalVisits := counter.NewInt()

	for _, nodeID := range nodeIDs {
		for i := 0; i < e.WalksPerNode; i++ {

			walk, err := e.Generate(ctx, DB, nodeID, rng)
			if err != nil {
				return nil, err
			}

			for _, visited := range walk {
				visits[visited]++
			}
			totalVisits.Add(int64(len(walk)))
		}
	}

	// normalize the visit counts into frequencies
	ranks := make(models.RankVector, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		ranks[nodeID] = float64(visits[nodeID]) / float64(totalVisits.Load())
	}

	return ranks, nil
}

// ---------------------------------ERROR-CODES--------------------------------

var ErrInvalidAlpha = errors.New("alpha should be a number between 0 and 1 (excluded)")
var ErrInvalidWalksPerNode = errors.New("walksPerNode should be greater than zero")
