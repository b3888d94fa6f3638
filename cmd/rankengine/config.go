package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/linklab/rankengine/pkg/rank"
	"github.com/linklab/rankengine/pkg/utils/logger"
)

const (
	FormatEdgeList string = "edgelist"
	FormatXML      string = "xml"
)

// The configuration parameters for the engine run.
type Config struct {
	Log       *logger.Aggregate
	LogWriter io.Writer

	InputPath   string
	InputFormat string
	OutputPath  string // empty means stdout

	StrictGraph  bool
	DisplayStats bool

	// when set, the graph is stored in Redis instead of in memory
	RedisAddress string

	SeedNodes     []string
	TopicKeywords []string

	Rank rank.Options
}

// NewConfig() returns a config with default parameters.
func NewConfig() *Config {
	return &Config{
		LogWriter:   os.Stdout,
		InputFormat: FormatEdgeList,
		Rank:        rank.DefaultOptions(),
	}
}

func (c *Config) Print() {
	fmt.Println("Config:")
	fmt.Printf("  InputPath: %s\n", c.InputPath)
	fmt.Printf("  InputFormat: %s\n", c.InputFormat)
	fmt.Printf("  OutputPath: %s\n", c.OutputPath)
	fmt.Printf("  StrictGraph: %t\n", c.StrictGraph)
	fmt.Printf("  RedisAddress: %s\n", c.RedisAddress)
	fmt.Printf("  SeedNodes: %v\n", c.SeedNodes)
	fmt.Printf("  TopicKeywords: %v\n", c.TopicKeywords)
	fmt.Printf("  Damping: %v\n", c.Rank.Damping)
	fmt.Printf("  Tolerance: %v\n", c.Rank.Tolerance)
	fmt.Printf("  MaxIterations: %d\n", c.Rank.MaxIterations)
}

// LoadConfig() reads the variables from the environment and parses them into a config struct.
func LoadConfig() (*Config, error) {
	var config = NewConfig()
	var err error

	for _, item := range os.Environ() {
		keyVal := strings.SplitN(item, "=", 2)
		key, val := keyVal[0], keyVal[1]

		switch key {
		case "LOGS":
			// LogWriter gets updated if a .log file is specified; otherwise it remains os.Stdout
			if strings.HasSuffix(val, ".log") {
				config.LogWriter, err = os.OpenFile(val, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
				if err != nil {
					return nil, fmt.Errorf("error opening file \"%v\": %v", val, err)
				}
			}

		case "INPUT":
			config.InputPath = val

		case "INPUT_FORMAT":
			if val != FormatEdgeList && val != FormatXML {
				return nil, fmt.Errorf("unknown input format \"%v\"", val)
			}
			config.InputFormat = val

		case "OUTPUT":
			config.OutputPath = val

		case "DAMPING":
			config.Rank.Damping, err = strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "TOLERANCE":
			config.Rank.Tolerance, err = strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "MAX_ITERATIONS":
			config.Rank.MaxIterations, err = strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "STRICT_GRAPH":
			config.StrictGraph, err = strconv.ParseBool(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "DISPLAY_STATS":
			config.DisplayStats, err = strconv.ParseBool(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "REDIS_ADDRESS":
			config.RedisAddress = val

		case "SEED_NODES":
			config.SeedNodes = splitList(val)

		case "TOPIC_KEYWORDS":
			config.TopicKeywords = splitList(val)
		}
	}

	if err := config.Rank.Validate(); err != nil {
		return nil, err
	}

	config.Log = logger.New(config.LogWriter)
	return config, nil
}

// splitList() splits a comma-separated env value, dropping empty elements.
func splitList(val string) []string {
	var list []string
	for _, element := range strings.Split(val, ",") {
		element = strings.TrimSpace(element)
		if element != "" {
			list = append(list, element)
		}
	}
	return list
}

// CloseLogs() closes the config.LogWriter if that is a file.
func (c *Config) CloseLogs() {
	if file, ok := c.LogWriter.(*os.File); ok && file != os.Stdout {
		file.Close()
	}
}
