// The redisdb package defines a Redis graph database that fulfills the
// Database interface in models.
package redisdb

import (
	"context"
	"fmt"
	"math"

	"github.com/redis/go-redis/v9"

	"github.com/linklab/rankengine/pkg/models"
	"github.com/linklab/rankengine/pkg/utils/redisutils"
)

const (
	KeyDatabase        string = "database"
	KeyLastNodeID      string = "lastNodeID"
	KeyNameIndex       string = "nameIndex"
	KeyNodePrefix      string = "node:"
	KeyLinksPrefix     string = "links:"
	KeyBacklinksPrefix string = "backlinks:"
)

// KeyNode() returns the Redis key for the node with the specified nodeID
func KeyNode(nodeID uint32) string {
	return KeyNodePrefix + redisutils.FormatID(nodeID)
}

// KeyLinks() returns the Redis key for the successors of the specified nodeID
func KeyLinks(nodeID uint32) string {
	return KeyLinksPrefix + redisutils.FormatID(nodeID)
}

// KeyBacklinks() returns the Redis key for the predecessors of the specified nodeID
func KeyBacklinks(nodeID uint32) string {
	return KeyBacklinksPrefix + redisutils.FormatID(nodeID)
}

// Database fulfills the Database interface defined in models
type Database struct {
	client *redis.Client
}

// DatabaseFields are the fields of the Database in Redis. This struct is used for serialize and deserialize.
type DatabaseFields struct {
	LastNodeID int `redis:"lastNodeID"`
}

// NewConnection() returns a Database connected to an already initialized Redis instance.
func NewConnection(ctx context.Context, cl *redis.Client) (*Database, error) {
	_ = ctx
	if cl == nil {
		return nil, models.ErrNilClientPointer
	}

	return &Database{client: cl}, nil
}

// New() creates and returns a new Database instance.
func New(ctx context.Context, cl *redis.Client) (*Database, error) {
	if cl == nil {
		return nil, models.ErrNilClientPointer
	}

	fields := DatabaseFields{
		LastNodeID: -1, // the first ID will be 0, since we increment and return with HIncrBy
	}

	if err := cl.HSet(ctx, KeyDatabase, fields).Err(); err != nil {
		return nil, err
	}

	return &Database{client: cl}, nil
}

// Validate() checks if DB and client are nil and returns the appropriate error
func (DB *Database) Validate() error {
	if DB == nil {
		return models.ErrNilDB
	}

	if DB.client == nil {
		return models.ErrNilClientPointer
	}

	return nil
}

// Size() returns the number of nodes in the DB (ignores errors).
func (DB *Database) Size(ctx context.Context) int {
	if err := DB.Validate(); err != nil {
		return 0
	}

	size, err := DB.client.HLen(ctx, KeyNameIndex).Result()
	if err != nil {
		return 0
	}

	return int(size)
}

// ContainsNode() returns whether the DB contains nodeID. In case of errors returns false.
func (DB *Database) ContainsNode(ctx context.Context, nodeID uint32) bool {
	if err := DB.Validate(); err != nil {
		return false
	}

	exists, err := DB.client.Exists(ctx, KeyNode(nodeID)).Result()
	if err != nil {
		return false
	}

	return exists == 1
}

// AddNode() adds a node to the database and returns its assigned nodeID.
// In case of errors, it returns MaxUint32 as the nodeID.
func (DB *Database) AddNode(ctx context.Context, name string) (uint32, error) {

	if err := DB.Validate(); err != nil {
		return math.MaxUint32, err
	}

	// check if the name already exists in the DB
	exist, err := DB.client.HExists(ctx, KeyNameIndex, name).Result()
	if err != nil {
		return math.MaxUint32, err
	}
	if exist {
		return math.MaxUint32, models.ErrNodeAlreadyInDB
	}

	// get the nodeID outside the transaction. This implies that there might
	// be "holes", meaning IDs not associated with any node
	lastNodeID, err := DB.client.HIncrBy(ctx, KeyDatabase, KeyLastNodeID, 1).Result()
	if err != nil {
		return math.MaxUint32, err
	}
	nodeID := uint32(lastNodeID)

	node := models.NodeMeta{
		ID:   nodeID,
		Name: name,
	}

	pipe := DB.client.TxPipeline()
	pipe.HSetNX(ctx, KeyNameIndex, name, lastNodeID)
	pipe.HSet(ctx, KeyNode(nodeID), node)

	if _, err := pipe.Exec(ctx); err != nil {
		return math.MaxUint32, err
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

	strSuccIDs := redisutils.FormatIDs(succIDs)
	if len(strSuccIDs) == 0 {
		return nil
	}

	pipe := DB.client.TxPipeline()

	// add the successors to the links set of nodeID
	pipe.SAdd(ctx, KeyLinks(nodeID), strSuccIDs)

	// add nodeID to the backlinks of the successors
	for _, succID := range succIDs {
		pipe.SAdd(ctx, KeyBacklinks(succID), redisutils.FormatID(nodeID))
	}

	_, err := pipe.Exec(ctx)
	return err
}

// NodeByID() retrieves a node by its nodeID.
func (DB *Database) NodeByID(ctx context.Context, nodeID uint32) (*models.NodeMeta, error) {

	if err := DB.Validate(); err != nil {
		return nil, err
	}

	cmd := DB.client.HGetAll(ctx, KeyNode(nodeID))
	if cmd.Err() != nil {
		return nil, cmd.Err()
	}

	// if an empty map is returned, it means the node was not found
	if len(cmd.Val()) == 0 {
		return nil, models.ErrNodeNotFoundDB
	}

	var node models.NodeMeta
	if err := cmd.Scan(&node); err != nil {
		return nil, err
	}

	return &node, nil
}

// NodeByName() retrieves a node by its name.
func (DB *Database) NodeByName(ctx context.Context, name string) (*models.NodeMeta, error) {

	if err := DB.Validate(); err != nil {
		return nil, err
	}

	strNodeID, err := DB.client.HGet(ctx, KeyNameIndex, name).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, models.ErrNodeNotFoundDB
		}
		return nil, err
	}

	nodeID, err := redisutils.ParseID(strNodeID)
	if err != nil {
		return nil, err
	}

	return DB.NodeByID(ctx, nodeID)
}

// Successors() returns a slice that contains the successors of each nodeID.
func (DB *Database) Successors(ctx context.Context, nodeIDs ...uint32) ([][]uint32, error) {
	return DB.members(ctx, KeyLinks, nodeIDs...)
}

// Predecessors() returns a slice that contains the predecessors of each nodeID.
func (DB *Database) Predecessors(ctx context.Context, nodeIDs ...uint32) ([][]uint32, error) {
	return DB.members(ctx, KeyBacklinks, nodeIDs...)
}

// members() fetches the adjacency sets addressed by keyFunc with one pipeline.
func (DB *Database) members(ctx context.Context, keyFunc func(uint32) string, nodeIDs ...uint32) ([][]uint32, error) {

	if err := DB.Validate(); err != nil {
		return nil, err
	}

	pipe := DB.client.Pipeline()
	cmds := make([]*redis.StringSliceCmd, len(nodeIDs))
	for i, nodeID := range nodeIDs {
		cmds[i] = pipe.SMembers(ctx, keyFunc(nodeID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	var keys []string
	adjacency := make([][]uint32, 0, len(nodeIDs))
	for i, cmd := range cmds {

		strIDs := cmd.Val()
		if len(strIDs) == 0 { // an empty set might mean the node was not found.
			keys = append(keys, KeyNode(nodeIDs[i]))
			adjacency = append(adjacency, []uint32{})
			continue
		}

		IDs, err := redisutils.ParseIDs(strIDs)
		if err != nil {
			return nil, err
		}

		adjacency = append(adjacency, IDs)
	}

	// check if some of the dangling nodes were in reality not found in the DB
	if len(keys) > 0 {
		countExists, err := DB.client.Exists(ctx, keys...).Result()
		if err != nil {
			return nil, err
		}

		if int(countExists) < len(keys) {
			return nil, fmt.Errorf("%w: some of these nodes: %v", models.ErrNodeNotFoundDB, keys)
		}
	}

	return adjacency, nil
}

// NodeIDs() returns a slice of nodeIDs that correspond with the given slice of names.
// If a name is not found, nil is returned
func (DB *Database) NodeIDs(ctx context.Context, names ...string) ([]interface{}, error) {

	if err := DB.Validate(); err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return []interface{}{}, nil
	}

	nodeIDs, err := DB.client.HMGet(ctx, KeyNameIndex, names...).Result()
	if err != nil {
		return nil, err
	}

	for i, strNodeID := range nodeIDs {
		// whatever is not nil, parse it to uint32
		if strNodeID != nil {
			nodeID, err := redisutils.ParseID(strNodeID.(string))
			if err != nil {
				return nil, err
			}
			nodeIDs[i] = nodeID
		}
	}

	return nodeIDs, nil
}

// Names() returns a slice of names that correspond with the given slice of nodeIDs.
// If a nodeID is not found, nil is returned
func (DB *Database) Names(ctx context.Context, nodeIDs ...uint32) ([]interface{}, error) {

	if err := DB.Validate(); err != nil {
		return nil, err
	}

	if len(nodeIDs) == 0 {
		return []interface{}{}, nil
	}

	pipe := DB.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(nodeIDs))
	for i, nodeID := range nodeIDs {
		cmds[i] = pipe.HGet(ctx, KeyNode(nodeID), models.KeyName)
	}

	// if the error is redis.Nil, deal with it later
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}

	names := make([]interface{}, 0, len(nodeIDs))
	for _, cmd := range cmds {

		if cmd.Err() == redis.Nil {
			names = append(names, nil)
			continue
		}
		names = append(names, cmd.Val())
	}

	return names, nil
}

// AllNodes() returns a slice with the IDs of all nodes in the DB
func (DB *Database) AllNodes(ctx context.Context) ([]uint32, error) {

	if err := DB.Validate(); err != nil {
		return nil, err
	}

	strIDs, err := DB.client.HVals(ctx, KeyNameIndex).Result()
	if err != nil {
		return nil, err
	}

	return redisutils.ParseIDs(strIDs)
}

// SetRanks() sets the rank of each node in the DB according to the RankVector
func (DB *Database) SetRanks(ctx context.Context, ranks models.RankVector) error {

	if err := DB.Validate(); err != nil {
		return err
	}

	pipe := DB.client.TxPipeline()
	for nodeID, rank := range ranks {
		pipe.HSet(ctx, KeyNode(nodeID), models.KeyRank, rank)
	}

	_, err := pipe.Exec(ctx)
	return err
}
