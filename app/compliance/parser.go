package compliance

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/mmcdole/gofeed"
)

// Parser extracts flat policy items from loosely-structured feed text.
type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses feed data into items. Malformed input yields an empty slice,
// never an error: a broken feed must not abort a sync run.
func (p *Parser) Run(data []byte) []FeedItem {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		slog.Warn("Feed parse failed, returning no items", "error", err)
		return nil
	}

	items := make([]FeedItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		items = append(items, p.normalizeItem(item))
	}

	return items
}

func (p *Parser) normalizeItem(item *gofeed.Item) FeedItem {
	link := item.Link
	if link == "" {
		link = item.GUID
	}
	normalized := FeedItem{
		Title:       item.Title,
		Description: item.Description,
		Link:        link,
	}

	if item.PublishedParsed != nil {
		normalized.PublishedAt = item.PublishedParsed.UTC()
	} else if item.UpdatedParsed != nil {
		normalized.PublishedAt = item.UpdatedParsed.UTC()
	} else {
		normalized.PublishedAt = time.Now().UTC()
	}

	return normalized
}
