package models

import (
	"context"
	"errors"
)

// The Database interface abstracts the graph DB basic functions.
// The graph is built once from input and is treated as immutable by the rank engine.
type Database interface {
	// Size() returns the number of nodes in the DB (ignores errors).
	Size(ctx context.Context) int

	// ContainsNode() returns whether a specified nodeID is found in the DB
	ContainsNode(ctx context.Context, nodeID uint32) bool

	// Validate() returns the appropriate error if the DB is nil or empty
	Validate() error

	// AddNode() adds a node with the specified name to the DB and returns its assigned nodeID
	AddNode(ctx context.Context, name string) (uint32, error)

	// AddEdges() adds directed edges from nodeID to each of the succIDs.
	AddEdges(ctx context.Context, nodeID uint32, succIDs ...uint32) error

	// NodeByID() retrieves a node by its nodeID.
	NodeByID(ctx context.Context, nodeID uint32) (*NodeMeta, error)

	// NodeByName() retrieves a node by its name.
	NodeByName(ctx context.Context, name string) (*NodeMeta, error)

	// Successors() returns a slice that contains the successors of each nodeID.
	Successors(ctx context.Context, nodeIDs ...uint32) ([][]uint32, error)

	// Predecessors() returns a slice that contains the predecessors of each nodeID.
	Predecessors(ctx context.Context, nodeIDs ...uint32) ([][]uint32, error)

	// NodeIDs() returns a slice of nodeIDs that correspond with the given slice of names.
	// If a name is not found, nil is returned
	NodeIDs(ctx context.Context, names ...string) ([]interface{}, error)

	// Names() returns a slice of names that correspond with the given slice of nodeIDs.
	// If a nodeID is not found, nil is returned
	Names(ctx context.Context, nodeIDs ...uint32) ([]interface{}, error)

	// AllNodes() returns a slice with the IDs of all nodes in the DB.
	AllNodes(ctx context.Context) ([]uint32, error)

	// SetRanks() sets the rank of each node in the DB according to the RankVector
	SetRanks(ctx context.Context, ranks RankVector) error
}

//--------------------------ERROR-CODES--------------------------

var ErrNilDB = errors.New("database pointer is nil")
var ErrEmptyDB = errors.New("database is empty")
var ErrNodeNotFoundDB = errors.New("node not found in the database")
var ErrNodeAlreadyInDB = errors.New("node already in the database")

var ErrNilClientPointer = errors.New("nil client pointer")
