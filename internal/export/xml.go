package export

import (
	"encoding/xml"
	"time"

	"github.com/utafrali/finsearch/internal/domain"
)

// FeedDocument is the serializable XML envelope of an export result. The
// schema is a fixed external contract; element and attribute names must not
// change.
type FeedDocument struct {
	XMLName xml.Name  `xml:"findologic"`
	Version string    `xml:"version,attr"`
	Items   FeedItems `xml:"items"`
}

// FeedItems carries the exported items with paging attributes.
type FeedItems struct {
	Start int        `xml:"start,attr"`
	Count int        `xml:"count,attr"`
	Total int        `xml:"total,attr"`
	Items []FeedItem `xml:"item"`
}

// FeedItem is the XML shape of one exported product.
type FeedItem struct {
	ID             string      `xml:"id,attr"`
	Name           string      `xml:"name"`
	Summary        string      `xml:"summary,omitempty"`
	Description    string      `xml:"description,omitempty"`
	DateAdded      string      `xml:"dateAdded"`
	SalesFrequency int         `xml:"salesFrequency"`
	OrderNumbers   []string    `xml:"ordernumbers>ordernumber"`
	Prices         []FeedPrice `xml:"prices>price"`
}

// FeedPrice is one price element, keyed by usergroup hash. The base price
// carries no usergroup attribute.
type FeedPrice struct {
	Usergroup string `xml:"usergroup,attr,omitempty"`
	Value     string `xml:",chardata"`
}

// NewFeedDocument builds the XML envelope from an export result.
func NewFeedDocument(start int, result *domain.ExportResult) FeedDocument {
	doc := FeedDocument{
		Version: "1.0",
		Items: FeedItems{
			Start: start,
			Count: result.Count,
			Total: result.Total,
		},
	}

	for _, item := range result.Items {
		feedItem := FeedItem{
			ID:             item.ID,
			Name:           item.Name,
			Summary:        item.Summary,
			Description:    item.Description,
			DateAdded:      item.DateAdded.Format(time.RFC3339),
			SalesFrequency: item.SalesFrequency,
			OrderNumbers:   item.OrderNumbers,
		}
		for _, price := range item.Prices {
			feedItem.Prices = append(feedItem.Prices, FeedPrice{
				Usergroup: price.UsergroupHash,
				Value:     price.Value,
			})
		}
		doc.Items.Items = append(doc.Items.Items, feedItem)
	}

	return doc
}
