package rank

import (
	"context"
	"errors"
	"fmt"

	"github.com/linklab/rankengine/pkg/models"
)

// SeedSet associates each seed nodeID with its prior weight.
// A valid SeedSet is non-empty and has strictly positive weights.
type SeedSet map[uint32]float64

// UniformSeed() returns a SeedSet with equal weight on each of the nodeIDs.
func UniformSeed(nodeIDs ...uint32) SeedSet {
	seed := make(SeedSet, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		seed[nodeID] = 1.0
	}
	return seed
}

// Validate() returns the appropriate error if the seed set is empty, contains
// non-positive weights, or references nodes not found in the DB.
func (s SeedSet) Validate(ctx context.Context, DB models.Database) error {
	if len(s) == 0 {
		return ErrEmptySeed
	}

	for nodeID, weight := range s {
		if weight <= 0 {
			return fmt.Errorf("%w: node %d has weight %v", ErrInvalidSeedWeight, nodeID, weight)
		}

		if !DB.ContainsNode(ctx, nodeID) {
			return fmt.Errorf("%w: node %d", ErrUnknownSeedNode, nodeID)
		}
	}

	return nil
}

// Normalized() returns a copy of the seed set with the weights scaled to sum to 1.
func (s SeedSet) Normalized() SeedSet {
	total := 0.0
	for _, weight := range s {
		total += weight
	}

	normalized := make(SeedSet, len(s))
	for nodeID, weight := range s {
		normalized[nodeID] = weight / total
	}

	return normalized
}

// ---------------------------------ERROR-CODES--------------------------------

var ErrEmptySeed = errors.New("the seed set is empty")
var ErrInvalidSeedWeight = errors.New("seed weights should be positive")
var ErrUnknownSeedNode = errors.New("seed node not found in the database")
