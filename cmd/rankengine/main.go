package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/linklab/rankengine/pkg/database/memdb"
	"github.com/linklab/rankengine/pkg/database/redisdb"
	"github.com/linklab/rankengine/pkg/models"
	"github.com/linklab/rankengine/pkg/parse"
	"github.com/linklab/rankengine/pkg/rank"
	"github.com/linklab/rankengine/pkg/utils/redisutils"
)

func main() {
	// the .env file is optional; the environment takes precedence anyway
	_ = godotenv.Load()

	config, err := LoadConfig()
	if err != nil {
		fmt.Printf("error loading the config: %v\n", err)
		os.Exit(1)
	}
	defer config.CloseLogs()

	if config.InputPath == "" {
		config.Log.Error("INPUT is required")
		os.Exit(1)
	}

	ctx := context.Background()
	DB, err := setupDB(ctx, config)
	if err != nil {
		config.Log.Error("error setting up the database: %v", err)
		os.Exit(1)
	}

	pages, stats, err := buildGraph(ctx, config, DB)
	if err != nil {
		config.Log.Error("error building the graph: %v", err)
		os.Exit(1)
	}
	config.Log.Info("parsed %d nodes and %d edges", stats.Nodes.Load(), stats.Edges.Load())

	seed, err := buildSeed(ctx, config, DB, pages)
	if err != nil {
		config.Log.Error("error building the seed set: %v", err)
		os.Exit(1)
	}

	var result *rank.Result
	switch {
	case seed != nil:
		result, err = rank.Personalized(ctx, DB, seed, config.Rank)
	default:
		result, err = rank.Global(ctx, DB, config.Rank)
	}

	if err != nil {
		config.Log.Error("error computing the ranks: %v", err)
		os.Exit(1)
	}

	switch {
	case result.Converged:
		config.Log.Info("converged after %d iterations (distance: %v)", result.Iterations, result.Distance)
	default:
		config.Log.Warn("iteration cap (%d) reached before convergence (distance: %v)", result.Iterations, result.Distance)
	}

	if err := DB.SetRanks(ctx, result.Ranks); err != nil {
		config.Log.Error("error storing the ranks: %v", err)
		os.Exit(1)
	}

	if err := writeReport(ctx, config, DB, result.Ranks); err != nil {
		config.Log.Error("error writing the report: %v", err)
		os.Exit(1)
	}

	if config.DisplayStats {
		config.Print()
		fmt.Printf("  Lines: %d\n", stats.Lines.Load())
		fmt.Printf("  Skipped: %d\n", stats.Skipped.Load())
	}
}

// setupDB() returns the configured Database implementation.
func setupDB(ctx context.Context, config *Config) (models.Database, error) {
	if config.RedisAddress == "" {
		return memdb.New(), nil
	}

	cl := redisutils.SetupClient(config.RedisAddress)
	return redisdb.New(ctx, cl)
}

// buildGraph() parses the input file into the DB. The returned pages are nil
// unless the input is an XML page set.
func buildGraph(ctx context.Context, config *Config, DB models.Database) ([]parse.Page, *parse.Stats, error) {

	file, err := os.Open(config.InputPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	switch config.InputFormat {
	case FormatXML:
		return parse.XML(ctx, DB, file, config.StrictGraph)

	default:
		stats, err := parse.EdgeList(ctx, DB, file, config.StrictGraph)
		return nil, stats, err
	}
}

// buildSeed() returns the seed set for the topic-specific rank, or nil when
// the generic rank is requested.
func buildSeed(ctx context.Context, config *Config, DB models.Database, pages []parse.Page) (rank.SeedSet, error) {
	switch {
	case len(config.TopicKeywords) > 0:
		if pages == nil {
			return nil, fmt.Errorf("TOPIC_KEYWORDS requires an XML page set as input")
		}
		return parse.TopicSeed(pages, config.TopicKeywords), nil

	case len(config.SeedNodes) > 0:
		return parse.SeedFromNames(ctx, DB, config.SeedNodes...)

	default:
		return nil, nil
	}
}

// writeReport() writes the ordered rank report to the configured output.
func writeReport(ctx context.Context, config *Config, DB models.Database, ranks models.RankVector) error {

	out := os.Stdout
	if config.OutputPath != "" {
		file, err := os.Create(config.OutputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	return rank.WriteReport(ctx, out, DB, ranks)
}
