package feed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"
)

// ErrNoItems is returned when the document holds no feed item.
var ErrNoItems = errors.New("feed has no items")

// Parse reads a feed document and returns its items in document order.
//
// RSS, Atom and JSON feeds are read with gofeed. A document gofeed does not
// recognise, such as a feed saved from a browser as an html page, is scanned
// for <item> elements instead.
func Parse(r io.Reader) ([]Item, error) {
	doc, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	items, err := parseFeed(doc)
	if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
		items, err = scanItems(doc)
	}
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrNoItems
	}

	return items, nil
}

func parseFeed(doc []byte) ([]Item, error) {
	f, err := gofeed.NewParser().Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(f.Items))
	for _, fi := range f.Items {
		it := Item{
			Title:       strings.TrimSpace(fi.Title),
			Date:        strings.TrimSpace(fi.Published),
			Link:        strings.TrimSpace(fi.Link),
			Description: Text(fi.Description),
		}

		if dc := fi.DublinCoreExt; dc != nil {
			if len(dc.Date) > 0 {
				it.Date = strings.TrimSpace(dc.Date[0])
			}
			if len(dc.Creator) > 0 {
				it.Creator = strings.TrimSpace(dc.Creator[0])
			}
		}
		if it.Creator == "" && len(fi.Authors) > 0 && fi.Authors[0] != nil {
			it.Creator = strings.TrimSpace(fi.Authors[0].Name)
			if it.Creator == "" {
				it.Creator = strings.TrimSpace(fi.Authors[0].Email)
			}
		}

		items = append(items, it)
	}

	return items, nil
}

func scanItems(doc []byte) ([]Item, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var items []Item
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "item" {
			items = append(items, itemFromNode(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return items, nil
}

func itemFromNode(n *html.Node) Item {
	var it Item
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}

		switch c.Data {
		case "title":
			it.Title = strings.TrimSpace(nodeText(c))
		case "link":
			// html treats <link> as a void element: the url ends up in the
			// text node right after it.
			it.Link = strings.TrimSpace(nodeText(c))
			if it.Link == "" && c.NextSibling != nil && c.NextSibling.Type == html.TextNode {
				it.Link = strings.TrimSpace(c.NextSibling.Data)
			}
		case "dc:date":
			it.Date = strings.TrimSpace(nodeText(c))
		case "pubdate":
			if it.Date == "" {
				it.Date = strings.TrimSpace(nodeText(c))
			}
		case "dc:creator":
			it.Creator = strings.TrimSpace(nodeText(c))
		case "description":
			it.Description = Text(nodeText(c))
		}
	}
	return it
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
