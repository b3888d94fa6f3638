// The memdb package defines an in-memory graph database that fulfills the
// Database interface in models.
package memdb

import (
	"context"
	"math"
	"math/rand"
	"slices"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/linklab/rankengine/pkg/models"
)

type NodeSet mapset.Set[uint32]

// Database fulfills the Database interface defined in models
type Database struct {

	// a map that associates each node name with a unique nodeID
	NameIndex map[string]uint32

	// a map that associates each nodeID with its node metadata
	NodeIndex map[uint32]*models.NodeMeta

	// maps that associate each nodeID with the set of its successors/predecessors
	Succ map[uint32]NodeSet
	Pred map[uint32]NodeSet

	// the next nodeID to be used. When a new node is added, this field is incremented by one
	LastNodeID int
}

// New() creates and returns a new Database instance.
func New() *Database {
	return &Database{
		NameIndex:  make(map[string]uint32),
		NodeIndex:  make(map[uint32]*models.NodeMeta),
		Succ:       make(map[uint32]NodeSet),
		Pred:       make(map[uint32]NodeSet),
		LastNodeID: -1, // the first nodeID will be 0
	}
}

// Validate() returns an error if the DB is nil
func (DB *Database) Validate() error {
	if DB == nil {
		return models.ErrNilDB
	}

	return nil
}

// Size() returns the number of nodes in the DB. In case of errors, it returns 0.
func (DB *Database) Size(ctx context.Context) int {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return 0
	}

	return len(DB.NodeIndex)
}

// ContainsNode() returns whether nodeID is found in the DB
func (DB *Database) ContainsNode(ctx context.Context, nodeID uint32) bool {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return false
	}

	_, exist := DB.NodeIndex[nodeID]
	return exist
}

// AddNode() adds a node to the database and returns its assigned nodeID.
// In case of errors, it returns MaxUint32 as the nodeID.
func (DB *Database) AddNode(ctx context.Context, name string) (uint32, error) {
	_ = ctx
	if DB == nil {
		return math.MaxUint32, models.ErrNilDB
	}

	if _, exist := DB.NameIndex[name]; exist {
		return math.MaxUint32, models.ErrNodeAlreadyInDB
	}

	// add the node to the NameIndex
	DB.LastNodeID++
	nodeID := uint32(DB.LastNodeID)
	DB.NameIndex[name] = nodeID

	// add successors and predecessors of the node
	DB.Succ[nodeID] = mapset.NewSet[uint32]()
	DB.Pred[nodeID] = mapset.NewSet[uint32]()

	// add the node to the NodeIndex
	DB.NodeIndex[nodeID] = &models.NodeMeta{
		ID:   nodeID,
		Name: name,
	}

	return nodeID, nil
}

// AddEdges() adds directed edges from nodeID to each of the succIDs.
func (DB *Database) AddEdges(ctx context.Context, nodeID uint32, succIDs ...uint32) error {
	if err := DB.Validate(); err != nil {
		return err
	}

	if !DB.ContainsNode(ctx, nodeID) {
		return models.ErrNodeNotFoundDB
	}

	for _, succ := range succIDs {
		if !DB.ContainsNode(ctx, succ) {
			return models.ErrNodeNotFoundDB
		}
	}

	DB.Succ[nodeID].Append(succIDs...)
	for _, succ := range succIDs {
		DB.Pred[succ].Add(nodeID)
	}

	return nil
}

// NodeByID() retrieves a node by its nodeID.
func (DB *Database) NodeByID(ctx context.Context, nodeID uint32) (*models.NodeMeta, error) {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	node, exists := DB.NodeIndex[nodeID]
	if !exists {
		return nil, models.ErrNodeNotFoundDB
	}

	return node, nil
}

// NodeByName() retrieves a node by its name.
func (DB *Database) NodeByName(ctx context.Context, name string) (*models.NodeMeta, error) {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	nodeID, exists := DB.NameIndex[name]
	if !exists {
		return nil, models.ErrNodeNotFoundDB
	}

	return DB.NodeIndex[nodeID], nil
}

// Successors() returns a slice that contains the successors of each nodeID.
// The successors are sorted, for reproducibility.
func (DB *Database) Successors(ctx context.Context, nodeIDs ...uint32) ([][]uint32, error) {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	succ := make([][]uint32, 0, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		succSet, exists := DB.Succ[nodeID]
		if !exists {
			return nil, models.ErrNodeNotFoundDB
		}

		succSlice := succSet.ToSlice()
		slices.Sort(succSlice)
		succ = append(succ, succSlice)
	}

	return succ, nil
}

// Predecessors() returns a slice that contains the predecessors of each nodeID.
// The predecessors are sorted, for reproducibility.
func (DB *Database) Predecessors(ctx context.Context, nodeIDs ...uint32) ([][]uint32, error) {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	pred := make([][]uint32, 0, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		predSet, exists := DB.Pred[nodeID]
		if !exists {
			return nil, models.ErrNodeNotFoundDB
		}

		predSlice := predSet.ToSlice()
		slices.Sort(predSlice)
		pred = append(pred, predSlice)
	}

	return pred, nil
}

// NodeIDs() returns a slice of nodeIDs that correspond with the given slice of names.
// If a name is not found, nil is returned
func (DB *Database) NodeIDs(ctx context.Context, names ...string) ([]interface{}, error) {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	nodeIDs := make([]interface{}, 0, len(names))
	for _, name := range names {

		nodeID, exists := DB.NameIndex[name]
		if !exists {
			nodeIDs = append(nodeIDs, nil)
			continue
		}

		nodeIDs = append(nodeIDs, nodeID)
	}

	return nodeIDs, nil
}

// Names() returns a slice of names that correspond with the given slice of nodeIDs.
// If a nodeID is not found, nil is returned
func (DB *Database) Names(ctx context.Context, nodeIDs ...uint32) ([]interface{}, error) {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	names := make([]interface{}, 0, len(nodeIDs))
	for _, nodeID := range nodeIDs {

		node, exists := DB.NodeIndex[nodeID]
		if !exists {
			names = append(names, nil)
			continue
		}

		names = append(names, node.Name)
	}

	return names, nil
}

// AllNodes() returns a slice with the IDs of all nodes in the DB.
func (DB *Database) AllNodes(ctx context.Context) ([]uint32, error) {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	nodeIDs := make([]uint32, 0, len(DB.NodeIndex))
	for nodeID := range DB.NodeIndex {
		nodeIDs = append(nodeIDs, nodeID)
	}

	slices.Sort(nodeIDs)
	return nodeIDs, nil
}

// SetRanks() sets the rank of each node in the DB according to the RankVector
func (DB *Database) SetRanks(ctx context.Context, ranks models.RankVector) error {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return err
	}

	for nodeID, rank := range ranks {
		node, exists := DB.NodeIndex[nodeID]
		if !exists {
			return models.ErrNodeNotFoundDB
		}

		node.Rank = rank
	}

	return nil
}

// ------------------------------HELPERS------------------------------

// SetupDB() returns a DB setup based on the DBType. Used in tests.
func SetupDB(DBType string) *Database {
	switch DBType {
	case "nil":
		return nil

	case "empty":
		return New()

	case "one-node0":
		DB := New()
		DB.NodeIndex[0] = &models.NodeMeta{ID: 0, Name: "0"}
		DB.NameIndex["0"] = 0
		DB.Succ[0] = mapset.NewSet[uint32](0)
		DB.Pred[0] = mapset.NewSet[uint32](0)
		DB.LastNodeID = 0
		return DB

	case "dandling":
		DB := New()
		DB.NodeIndex[0] = &models.NodeMeta{ID: 0, Name: "0"}
		DB.NameIndex["0"] = 0
		DB.Succ[0] = mapset.NewSet[uint32]()
		DB.Pred[0] = mapset.NewSet[uint32]()
		DB.LastNodeID = 0
		return DB

	case "triangle":
		DB := New()
		for nodeID := uint32(0); nodeID < 3; nodeID++ {
			name := strconv.Itoa(int(nodeID))
			DB.NodeIndex[nodeID] = &models.NodeMeta{ID: nodeID, Name: name}
			DB.NameIndex[name] = nodeID
		}

		DB.Succ[0] = mapset.NewSet[uint32](1)
		DB.Succ[1] = mapset.NewSet[uint32](2)
		DB.Succ[2] = mapset.NewSet[uint32](0)
		DB.Pred[0] = mapset.NewSet[uint32](2)
		DB.Pred[1] = mapset.NewSet[uint32](0)
		DB.Pred[2] = mapset.NewSet[uint32](1)
		DB.LastNodeID = 2
		return DB

	default:
		return nil
	}
}

// GenerateDB() generates a random DB with the specified number of nodes, each
// with edgesPerNode random successors. Used in benchmarks.
func GenerateDB(nodes, edgesPerNode int, rng *rand.Rand) *Database {
	DB := New()
	ctx := context.Background()

	for i := 0; i < nodes; i++ {
		if _, err := DB.AddNode(ctx, "node"+strconv.Itoa(i)); err != nil {
			panic(err)
		}
	}

	for i := 0; i < nodes; i++ {
		succIDs := make([]uint32, 0, edgesPerNode)
		for j := 0; j < edgesPerNode; j++ {
			succIDs = append(succIDs, uint32(rng.Intn(nodes)))
		}

		if err := DB.AddEdges(ctx, uint32(i), succIDs...); err != nil {
			panic(err)
		}
	}

	return DB
}
