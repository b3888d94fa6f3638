package parse

import (
	"context"
	"fmt"
	"strings"

	"github.com/linklab/rankengine/pkg/models"
	"github.com/linklab/rankengine/pkg/rank"
)

/*
TopicSeed() builds a seed set from the pages whose title or content contains
any of the keywords (case-insensitive). If no page matches, the seed falls
back to the uniform distribution over all pages, which makes the
topic-specific rank coincide with the generic one.
*/
func TopicSeed(pages []Page, keywords []string) rank.SeedSet {

	lowered := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" {
			lowered = append(lowered, keyword)
		}
	}

	seed := make(rank.SeedSet, len(pages))
	for _, page := range pages {
		text := strings.ToLower(page.Title + " " + page.Content)

		for _, keyword := range lowered {
			if strings.Contains(text, keyword) {
				seed[page.ID] = 1.0
				break
			}
		}
	}

	// no page matched: uniform prior over all pages
	if len(seed) == 0 {
		for _, page := range pages {
			seed[page.ID] = 1.0
		}
	}

	return seed
}

// SeedFromNames() resolves node names into a uniform seed set.
func SeedFromNames(ctx context.Context, DB models.Database, names ...string) (rank.SeedSet, error) {

	if len(names) == 0 {
		return nil, rank.ErrEmptySeed
	}

	nodeIDs, err := DB.NodeIDs(ctx, names...)
	if err != nil {
		return nil, err
	}

	seed := make(rank.SeedSet, len(names))
	for i, nodeID := range nodeIDs {

		ID, ok := nodeID.(uint32)
		if !ok {
			return nil, fmt.Errorf("%w: %q", rank.ErrUnknownSeedNode, names[i])
		}

		seed[ID] = 1.0
	}

	return seed, nil
}
