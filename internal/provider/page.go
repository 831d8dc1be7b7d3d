// internal/provider/page.go
package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/SurveyRanker/internal/videoid"
	"github.com/valpere/SurveyRanker/pkg/types"
)

// PageProvider is the general-purpose extraction provider. It fetches the
// page behind a URL and reads metadata from standard markup (OpenGraph
// tags, document title, watch links), handling both single videos and
// mylist/playlist collections. Slower than the platform lookup and used
// only when that one cannot serve.
type PageProvider struct {
	client *HTTPClient
}

// NewPageProvider creates a provider using the given HTTP client.
func NewPageProvider(client *HTTPClient) *PageProvider {
	return &PageProvider{client: client}
}

// Extract resolves a URL into one record per contained video. A direct
// link yields a single record; a collection link yields one record per
// entry discovered in the page. Fields that the page does not expose are
// left empty for the resolver to fill with sentinels.
func (p *PageProvider) Extract(ctx context.Context, rawURL string) ([]types.VideoRecord, error) {
	resp, err := p.client.Get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("page request failed: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("page for %s could not be parsed: %w", rawURL, err)
	}

	if id := directVideoID(rawURL, doc); id != "" {
		return []types.VideoRecord{singleRecord(id, rawURL, doc)}, nil
	}

	entries := collectionEntries(rawURL, doc)
	if len(entries) == 0 {
		return nil, ErrUnsupported
	}
	return entries, nil
}

// directVideoID decides whether the URL points at a single video, checking
// the URL itself first and the page's canonical og:url second.
func directVideoID(rawURL string, doc *goquery.Document) string {
	if id := videoid.First(rawURL); id != "" {
		return id
	}
	return videoid.First(metaProperty(doc, "og:url"))
}

// singleRecord builds the record of a direct video page.
func singleRecord(id, rawURL string, doc *goquery.Document) types.VideoRecord {
	title := metaProperty(doc, "og:title")
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	uploader := metaProperty(doc, "og:video:director")
	if uploader == "" {
		uploader, _ = doc.Find(`meta[name="author"]`).Attr("content")
	}

	date := metaProperty(doc, "video:release_date")
	if date == "" {
		date, _ = doc.Find(`meta[itemprop="uploadDate"]`).Attr("content")
	}

	return types.VideoRecord{
		VideoID:    id,
		Title:      title,
		Uploader:   strings.TrimSpace(uploader),
		UploadDate: strings.TrimSpace(date),
		SourceURL:  rawURL,
	}
}

// collectionEntries discovers the videos contained in a mylist/playlist
// page by walking its watch links, preserving page order and dropping
// duplicate ids.
func collectionEntries(rawURL string, doc *goquery.Document) []types.VideoRecord {
	base, _ := url.Parse(rawURL)

	var records []types.VideoRecord
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.Contains(href, "/watch/") {
			return
		}
		id := videoid.First(href)
		if id == "" || seen[id] {
			return
		}
		seen[id] = true

		records = append(records, types.VideoRecord{
			VideoID:   id,
			Title:     strings.TrimSpace(sel.Text()),
			SourceURL: absoluteURL(base, href),
		})
	})

	return records
}

// metaProperty reads the content of a <meta property="..."> tag.
func metaProperty(doc *goquery.Document, property string) string {
	content, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).Attr("content")
	return strings.TrimSpace(content)
}

// absoluteURL resolves href against the page URL when possible.
func absoluteURL(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
