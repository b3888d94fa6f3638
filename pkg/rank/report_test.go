package rank

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/linklab/rankengine/pkg/models"
)

func TestReport(t *testing.T) {
	DB := buildDB(t, map[string][]string{"A": {"B"}, "B": {"C"}, "C": {"A"}})

	t.Run("descending rank order", func(t *testing.T) {
		ranks := models.RankVector{0: 0.2, 1: 0.5, 2: 0.3}

		entries, err := Report(context.Background(), DB, ranks)
		if err != nil {
			t.Fatalf("Report(): expected nil, got %v", err)
		}

		expected := []Entry{
			{ID: 1, Name: "B", Rank: 0.5, In: 1, Out: 1},
			{ID: 2, Name: "C", Rank: 0.3, In: 1, Out: 1},
			{ID: 0, Name: "A", Rank: 0.2, In: 1, Out: 1},
		}

		if !reflect.DeepEqual(entries, expected) {
			t.Errorf("Report(): expected %v, got %v", expected, entries)
		}
	})

	t.Run("ties broken by ascending nodeID", func(t *testing.T) {
		ranks := models.RankVector{0: 0.25, 1: 0.25, 2: 0.5}

		entries, err := Report(context.Background(), DB, ranks)
		if err != nil {
			t.Fatalf("Report(): expected nil, got %v", err)
		}

		if entries[0].ID != 2 || entries[1].ID != 0 || entries[2].ID != 1 {
			t.Errorf("Report(): unexpected order: %v", entries)
		}
	})
}

func TestWriteReport(t *testing.T) {
	DB := buildDB(t, map[string][]string{"A": {"B"}, "B": {}})
	ranks := models.RankVector{0: 0.35, 1: 0.65}

	var buffer bytes.Buffer
	if err := WriteReport(context.Background(), &buffer, DB, ranks); err != nil {
		t.Fatalf("WriteReport(): expected nil, got %v", err)
	}

	report := buffer.String()
	for _, expected := range []string{
		"B: 0.6500 (in: 1, out: 0)",
		"A: 0.3500 (in: 0, out: 1)",
		"total nodes: 2",
		"total links: 1",
	} {
		if !strings.Contains(report, expected) {
			t.Errorf("WriteReport(): expected %q in report:\n%s", expected, report)
		}
	}

	// B is ranked above A
	if strings.Index(report, "B:") > strings.Index(report, "A:") {
		t.Errorf("WriteReport(): expected B before A in report:\n%s", report)
	}
}
