/*
The models package defines the fundamental structures and interfaces used in this project.

Interfaces:

Database:
The Database interface abstracts the basic graph database functionalities, allowing for
multiple implementations (in-memory, Redis).
*/
package models

import "math"

const (
	KeyID   string = "id"
	KeyName string = "name"
	KeyRank string = "rank"
)

// NodeMeta contains the metadata about a node, meaning everything that is not a relationship
type NodeMeta struct {
	ID   uint32  `redis:"id,omitempty"`
	Name string  `redis:"name,omitempty"`
	Rank float64 `redis:"rank,omitempty"`
}

// RankVector associates each nodeID with its visitation probability.
// After each iteration of the engine, the values sum to 1.0 (within floating-point tolerance).
type RankVector map[uint32]float64

// Distance() computes the L1 distance between two vectors who are supposed to have the same keys.
// If v1 is nil or empty, it returns 0.0
func Distance(v1, v2 RankVector) float64 {
	distance := 0.0
	for key := range v1 {
		distance += math.Abs(v1[key] - v2[key])
	}
	return distance
}
