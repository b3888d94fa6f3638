package walks

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"slices"
	"testing"

	"github.com/linklab/rankengine/pkg/database/memdb"
	"github.com/linklab/rankengine/pkg/models"
)

func TestNewEstimator(t *testing.T) {
	testCases := []struct {
		name          string
		alpha         float64
		walksPerNode  int
		expectedError error
	}{
		{
			name:          "alpha too low",
			alpha:         0.0,
			walksPerNode:  10,
			expectedError: ErrInvalidAlpha,
		},
		{
			name:          "alpha too high",
			alpha:         1.0,
			walksPerNode:  10,
			expectedError: ErrInvalidAlpha,
		},
		{
			name:          "non-positive walksPerNode",
			alpha:         0.85,
			walksPerNode:  0,
			expectedError: ErrInvalidWalksPerNode,
		},
		{
			name:          "valid",
			alpha:         0.85,
			walksPerNode:  10,
			expectedError: nil,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewEstimator(test.alpha, test.walksPerNode)

			if !errors.Is(err, test.expectedError) {
				t.Errorf("NewEstimator(): expected %v, got %v", test.expectedError, err)
			}
		})
	}
}

func TestWalkStep(t *testing.T) {
	rng := rand.New(rand.NewSource(69))

	t.Run("dangling node", func(t *testing.T) {
		_, shouldStop := WalkStep([]uint32{}, []uint32{0}, rng)

		if !shouldStop {
			t.Errorf("WalkStep(): expected stop on dangling node")
		}
	})

	t.Run("cycle", func(t *testing.T) {
		_, shouldStop := WalkStep([]uint32{1}, []uint32{0, 1}, rng)

		if !shouldStop {
			t.Errorf("WalkStep(): expected stop on cycle")
		}
	})

	t.Run("valid step", func(t *testing.T) {
		successors := []uint32{1, 2, 3}

		nextNodeID, shouldStop := WalkStep(successors, []uint32{0}, rng)
		if shouldStop {
			t.Fatalf("WalkStep(): expected no stop, got stop")
		}

		if !slices.Contains(successors, nextNodeID) {
			t.Errorf("WalkStep(): expected nextNodeID in %v, got %d", successors, nextNodeID)
		}
	})
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(69))

	estimator, err := NewEstimator(0.85, 1)
	if err != nil {
		t.Fatalf("NewEstimator(): expected nil, got %v", err)
	}

	t.Run("node not found", func(t *testing.T) {
		DB := memdb.SetupDB("empty")

		_, err := estimator.Generate(ctx, DB, 0, rng)
		if !errors.Is(err, models.ErrNodeNotFoundDB) {
			t.Errorf("Generate(): expected %v, got %v", models.ErrNodeNotFoundDB, err)
		}
	})

	t.Run("dangling node", func(t *testing.T) {
		DB := memdb.SetupDB("dandling")

		walk, err := estimator.Generate(ctx, DB, 0, rng)
		if err != nil {
			t.Fatalf("Generate(): expected nil, got %v", err)
		}

		if !reflect.DeepEqual(walk, RandomWalk{0}) {
			t.Errorf("Generate(): expected walk {0}, got %v", walk)
		}
	})

	t.Run("self loop breaks the walk", func(t *testing.T) {
		DB := memdb.SetupDB("one-node0")

		walk, err := estimator.Generate(ctx, DB, 0, rng)
		if err != nil {
			t.Fatalf("Generate(): expected nil, got %v", err)
		}

		if !reflect.DeepEqual(walk, RandomWalk{0}) {
			t.Errorf("Generate(): expected walk {0}, got %v", walk)
		}
	})

	t.Run("triangle visits nodes at most once", func(t *testing.T) {
		DB := memdb.SetupDB("triangle")

		for i := 0; i < 100; i++ {
			walk, err := estimator.Generate(ctx, DB, 0, rng)
			if err != nil {
				t.Fatalf("Generate(): expected nil, got %v", err)
			}

			if len(walk) > 3 {
				t.Errorf("Generate(): expected walk of length at most 3, got %v", walk)
			}

			if len(sliceUnique(walk)) != len(walk) {
				t.Errorf("Generate(): expected no repeated visits, got %v", walk)
			}
		}
	})
}

func sliceUnique(walk RandomWalk) map[uint32]struct{} {
	unique := make(map[uint32]struct{}, len(walk))
	for _, nodeID := range walk {
		unique[nodeID] = struct{}{}
	}
	return unique
}

func TestEstimateErrors(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(69))

	estimator, err := NewEstimator(0.85, 1)
	if err != nil {
		t.Fatalf("NewEstimator(): expected nil, got %v", err)
	}

	testCases := []struct {
		name          string
		DBType        string
		expectedError error
	}{
		{
			name:          "nil DB",
			DBType:        "nil",
			expectedError: models.ErrNilDB,
		},
		{
			name:          "empty DB",
			DBType:        "empty",
			expectedError: models.ErrEmptyDB,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			DB := memdb.SetupDB(test.DBType)

			_, err := estimator.Estimate(ctx, DB, rng)
			if !errors.Is(err, test.expectedError) {
				t.Errorf("Estimate(): expected %v, got %v", test.expectedError, err)
			}
		})
	}
}

func TestEstimateTriangle(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(69))
	DB := memdb.SetupDB("triangle")

	// by symmetry the rank vector is exactly uniform
	expectedRanks := models.RankVector{0: 1.0 / 3, 1: 1.0 / 3, 2: 1.0 / 3}

	estimator, err := NewEstimator(0.85, 5000)
	if err != nil {
		t.Fatalf("NewEstimator(): expected nil, got %v", err)
	}

	ranks, err := estimator.Estimate(ctx, DB, rng)
	if err != nil {
		t.Fatalf("Estimate(): expected nil, got %v", err)
	}

	distance := models.Distance(expectedRanks, ranks)
	if distance > 0.02 {
		t.Errorf("Estimate(): expected %v, got %v (distance %v)", expectedRanks, ranks, distance)
	}
}

func TestEstimateDandlings(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(69))

	// five isolated nodes: every walk is a single visit, so the estimate is exactly uniform
	DB := memdb.New()
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		if _, err := DB.AddNode(ctx, name); err != nil {
			t.Fatalf("AddNode(%s): expected nil, got %v", name, err)
		}
	}

	estimator, err := NewEstimator(0.85, 10)
	if err != nil {
		t.Fatalf("NewEstimator(): expected nil, got %v", err)
	}

	ranks, err := estimator.Estimate(ctx, DB, rng)
	if err != nil {
		t.Fatalf("Estimate(): expected nil, got %v", err)
	}

	for nodeID, rank := range ranks {
		if rank != 0.2 {
			t.Errorf("Estimate(): expected rank 0.2 for node %d, got %v", nodeID, rank)
		}
	}
}
