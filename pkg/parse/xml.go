package parse

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/linklab/rankengine/pkg/models"
	"github.com/linklab/rankengine/pkg/utils/sliceutils"
)

// Page holds the metadata of one page in an XML page set.
// The page id attribute becomes the node name; Title and Content are kept
// for topic matching.
type Page struct {
	ID      uint32
	Name    string
	Title   string
	Content string
}

type xmlPage struct {
	ID      string   `xml:"id,attr"`
	Title   string   `xml:"title"`
	Content string   `xml:"content"`
	Links   []string `xml:"links>link"`
}

type xmlWebpages struct {
	XMLName xml.Name  `xml:"webpages"`
	Pages   []xmlPage `xml:"page"`
}

/*
XML() reads a page set from r and builds the hyperlink graph in the DB.

The expected markup is:

	<webpages>
	  <page id="A">
	    <title>...</title>
	    <content>...</content>
	    <links>
	      <link>B</link>
	    </links>
	  </page>
	</webpages>

Links to page ids not declared in the document are rejected in strict mode,
and registered as dangling nodes otherwise. The parsed pages are returned for
topic seed construction.
*/
func XML(ctx context.Context, DB models.Database, r io.Reader, strict bool) ([]Page, *Stats, error) {

	if err := DB.Validate(); err != nil {
		return nil, nil, err
	}

	var doc xmlWebpages
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("failed to decode the page set: %w", err)
	}

	stats := NewStats()
	declared := make(map[string]bool, len(doc.Pages))
	for _, page := range doc.Pages {
		declared[strings.TrimSpace(page.ID)] = true
	}

	// register the declared pages first, in document order
	pages := make([]Page, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		name := strings.TrimSpace(page.ID)

		nodeID, err := DB.AddNode(ctx, name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to add page %q: %w", name, err)
		}
		stats.Nodes.Add(1)

		pages = append(pages, Page{
			ID:      nodeID,
			Name:    name,
			Title:   strings.TrimSpace(page.Title),
			Content: strings.TrimSpace(page.Content),
		})
	}

	// then register the lax link targets, and add the edges
	for _, page := range doc.Pages {
		name := strings.TrimSpace(page.ID)

		links := make([]string, 0, len(page.Links))
		for _, link := range page.Links {
			link = strings.TrimSpace(link)
			if link == "" {
				stats.Skipped.Add(1)
				continue
			}

			links = append(links, link)
		}

		for _, link := range sliceutils.Unique(links) {
			if !declared[link] {
				if strict {
					return nil, nil, fmt.Errorf("%w: %q", ErrUnknownEdgeTarget, link)
				}

				if _, err := DB.AddNode(ctx, link); err != nil {
					return nil, nil, err
				}

				declared[link] = true
				stats.Nodes.Add(1)
			}

			if err := addEdge(ctx, DB, name, link); err != nil {
				return nil, nil, err
			}
			stats.Edges.Add(1)
		}
	}

	return pages, stats, nil
}
