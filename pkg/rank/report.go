package rank

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/linklab/rankengine/pkg/models"
)

// Entry is one row of the rank report.
type Entry struct {
	ID   uint32
	Name string
	Rank float64
	In   int
	Out  int
}

// Report() returns the (node, rank) pairs sorted by descending rank, together
// with the in/out degree of each node. Ties are broken by ascending nodeID,
// so the order is deterministic.
func Report(ctx context.Context, DB models.Database, ranks models.RankVector) ([]Entry, error) {

	if err := DB.Validate(); err != nil {
		return nil, err
	}

	nodeIDs := make([]uint32, 0, len(ranks))
	for nodeID := range ranks {
		nodeIDs = append(nodeIDs, nodeID)
	}

	slices.SortFunc(nodeIDs, func(a, b uint32) int {
		switch {
		case ranks[a] > ranks[b]:
			return -1
		case ranks[a] < ranks[b]:
			return 1
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})

	names, err := DB.Names(ctx, nodeIDs...)
	if err != nil {
		return nil, err
	}

	succ, err := DB.Successors(ctx, nodeIDs...)
	if err != nil {
		return nil, err
	}

	pred, err := DB.Predecessors(ctx, nodeIDs...)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(nodeIDs))
	for i, nodeID := range nodeIDs {

		name, ok := names[i].(string)
		if !ok {
			return nil, fmt.Errorf("%w: node %d", models.ErrNodeNotFoundDB, nodeID)
		}

		entries = append(entries, Entry{
			ID:   nodeID,
			Name: name,
			Rank: ranks[nodeID],
			In:   len(pred[i]),
			Out:  len(succ[i]),
		})
	}

	return entries, nil
}

// WriteReport() writes the ordered rank report to w, followed by the network totals.
func WriteReport(ctx context.Context, w io.Writer, DB models.Database, ranks models.RankVector) error {

	entries, err := Report(ctx, DB, ranks)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Rankings:\n")
	for _, e := range entries {
		fmt.Fprintf(w, "%s: %.4f (in: %d, out: %d)\n", e.Name, e.Rank, e.In, e.Out)
	}

	totalLinks := 0
	totalRank := 0.0
	for _, e := range entries {
		totalLinks += e.Out
		totalRank += e.Rank
	}

	fmt.Fprintf(w, "\nNetwork statistics:\n")
	fmt.Fprintf(w, "total nodes: %d\n", len(entries))
	fmt.Fprintf(w, "total links: %d\n", totalLinks)
	if len(entries) > 0 {
		fmt.Fprintf(w, "average rank: %.4f\n", totalRank/float64(len(entries)))
	}

	return nil
}
