// The parse package builds the graph database from the supported input
// formats (edge lists and XML page sets), and constructs seed sets for the
// topic-specific rank.
package parse

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/linklab/rankengine/pkg/models"
	"github.com/linklab/rankengine/pkg/utils/counter"
	"github.com/linklab/rankengine/pkg/utils/sliceutils"
)

// Stats tracks what the parsers read.
type Stats struct {
	Lines   *counter.Int
	Nodes   *counter.Int
	Edges   *counter.Int
	Skipped *counter.Int
}

// NewStats() returns initialized parser counters.
func NewStats() *Stats {
	return &Stats{
		Lines:   counter.NewInt(),
		Nodes:   counter.NewInt(),
		Edges:   counter.NewInt(),
		Skipped: counter.NewInt(),
	}
}

type edge struct {
	from string
	to   string
}

/*
EdgeList() reads line-oriented `from to` records from r and builds the graph in
the DB. Blank lines and lines starting with `#` are skipped.

Node names are normalized to nodeIDs once, in input order. Edge targets that
never appear as a source are rejected in strict mode, and registered as
dangling nodes otherwise.
*/
func EdgeList(ctx context.Context, DB models.Database, r io.Reader, strict bool) (*Stats, error) {

	if err := DB.Validate(); err != nil {
		return nil, err
	}

	stats := NewStats()
	sources := mapset.NewSet[string]()
	var edges []edge

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		stats.Lines.Add(1)

		if line == "" || strings.HasPrefix(line, "#") {
			stats.Skipped.Add(1)
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedEdge, stats.Lines.Load(), line)
		}

		sources.Add(fields[0])
		edges = append(edges, edge{from: fields[0], to: fields[1]})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// nodeIDs are assigned in input order: sources first, then lax targets
	names := make([]string, 0, len(edges))
	for _, e := range edges {
		names = append(names, e.from)
	}

	for _, e := range edges {
		if sources.Contains(e.to) {
			continue
		}

		if strict {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEdgeTarget, e.to)
		}

		names = append(names, e.to)
	}

	for _, name := range sliceutils.Unique(names) {
		if _, err := DB.AddNode(ctx, name); err != nil {
			return nil, err
		}
		stats.Nodes.Add(1)
	}

	for _, e := range edges {
		if err := addEdge(ctx, DB, e.from, e.to); err != nil {
			return nil, err
		}
		stats.Edges.Add(1)
	}

	return stats, nil
}

// addEdge() resolves the names of an edge and adds it to the DB.
func addEdge(ctx context.Context, DB models.Database, from, to string) error {

	nodeIDs, err := DB.NodeIDs(ctx, from, to)
	if err != nil {
		return err
	}

	fromID, ok := nodeIDs[0].(uint32)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEdgeTarget, from)
	}

	toID, ok := nodeIDs[1].(uint32)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEdgeTarget, to)
	}

	return DB.AddEdges(ctx, fromID, toID)
}

// ---------------------------------ERROR-CODES--------------------------------

var ErrMalformedEdge = errors.New("malformed edge record")
var ErrUnknownEdgeTarget = errors.New("edge references an unknown node")
