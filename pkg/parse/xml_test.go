package parse

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/linklab/rankengine/pkg/database/memdb"
	"github.com/linklab/rankengine/pkg/models"
)

const samplePageSet = `<webpages>
  <page id="A">
    <title>Graph ranking</title>
    <content>An introduction to link analysis.</content>
    <links>
      <link>B</link>
      <link>C</link>
      <link>B</link>
    </links>
  </page>
  <page id="B">
    <title>Power iteration</title>
    <content>Numerical methods for eigenvectors.</content>
    <links>
      <link>C</link>
    </links>
  </page>
  <page id="C">
    <title>Cooking</title>
    <content>Recipes and kitchen notes.</content>
  </page>
</webpages>`

func TestXML(t *testing.T) {
	ctx := context.Background()
	DB := memdb.New()

	pages, stats, err := XML(ctx, DB, strings.NewReader(samplePageSet), true)
	if err != nil {
		t.Fatalf("XML(): expected nil, got %v", err)
	}

	expectedPages := []Page{
		{ID: 0, Name: "A", Title: "Graph ranking", Content: "An introduction to link analysis."},
		{ID: 1, Name: "B", Title: "Power iteration", Content: "Numerical methods for eigenvectors."},
		{ID: 2, Name: "C", Title: "Cooking", Content: "Recipes and kitchen notes."},
	}

	if !reflect.DeepEqual(pages, expectedPages) {
		t.Errorf("XML(): expected pages %v, got %v", expectedPages, pages)
	}

	if stats.Nodes.Load() != 3 || stats.Edges.Load() != 3 {
		t.Errorf("XML(): expected 3 nodes and 3 edges, got %d and %d",
			stats.Nodes.Load(), stats.Edges.Load())
	}

	succ, err := DB.Successors(ctx, 0, 1, 2)
	if err != nil {
		t.Fatalf("Successors(): expected nil, got %v", err)
	}

	// the duplicate A --> B link is collapsed
	expectedSucc := [][]uint32{{1, 2}, {2}, {}}
	if !reflect.DeepEqual(succ, expectedSucc) {
		t.Errorf("XML(): expected successors %v, got %v", expectedSucc, succ)
	}
}

func TestXMLErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("nil DB", func(t *testing.T) {
		_, _, err := XML(ctx, memdb.SetupDB("nil"), strings.NewReader(samplePageSet), true)

		if !errors.Is(err, models.ErrNilDB) {
			t.Errorf("XML(): expected %v, got %v", models.ErrNilDB, err)
		}
	})

	t.Run("malformed markup", func(t *testing.T) {
		_, _, err := XML(ctx, memdb.New(), strings.NewReader("<webpages><page"), true)

		if err == nil {
			t.Errorf("XML(): expected an error, got nil")
		}
	})

	t.Run("strict mode rejects undeclared links", func(t *testing.T) {
		input := `<webpages><page id="A"><links><link>ghost</link></links></page></webpages>`

		_, _, err := XML(ctx, memdb.New(), strings.NewReader(input), true)
		if !errors.Is(err, ErrUnknownEdgeTarget) {
			t.Errorf("XML(): expected %v, got %v", ErrUnknownEdgeTarget, err)
		}
	})

	t.Run("lax mode registers undeclared links", func(t *testing.T) {
		input := `<webpages><page id="A"><links><link>ghost</link></links></page></webpages>`
		DB := memdb.New()

		_, stats, err := XML(ctx, DB, strings.NewReader(input), false)
		if err != nil {
			t.Fatalf("XML(): expected nil, got %v", err)
		}

		if stats.Nodes.Load() != 2 {
			t.Errorf("XML(): expected 2 nodes, got %d", stats.Nodes.Load())
		}

		if !DB.ContainsNode(ctx, 1) {
			t.Errorf("XML(): expected the undeclared link target to be registered")
		}
	})
}
