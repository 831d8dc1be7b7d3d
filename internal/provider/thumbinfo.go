// internal/provider/thumbinfo.go
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/antchfx/xmlquery"

	"github.com/valpere/SurveyRanker/pkg/types"
)

// thumbInfoEndpoint is the lightweight per-video XML metadata endpoint.
const thumbInfoEndpoint = "https://ext.nicovideo.jp/api/getthumbinfo/"

// ThumbInfoProvider is the platform-specific lookup provider backed by the
// getthumbinfo XML endpoint. It returns title, uploader, and a publish
// timestamp with seconds precision.
type ThumbInfoProvider struct {
	client   *HTTPClient
	endpoint string
}

// NewThumbInfoProvider creates a provider using the given HTTP client.
func NewThumbInfoProvider(client *HTTPClient) *ThumbInfoProvider {
	return &ThumbInfoProvider{
		client:   client,
		endpoint: thumbInfoEndpoint,
	}
}

// Lookup fetches and parses the metadata of one video by identifier.
func (p *ThumbInfoProvider) Lookup(ctx context.Context, id string) (types.VideoRecord, error) {
	resp, err := p.client.Get(ctx, p.endpoint+id)
	if err != nil {
		return types.VideoRecord{}, fmt.Errorf("thumbinfo request for %s failed: %w", id, err)
	}
	defer resp.Body.Close()

	doc, err := xmlquery.Parse(resp.Body)
	if err != nil {
		return types.VideoRecord{}, fmt.Errorf("thumbinfo response for %s is not valid XML: %w", id, err)
	}

	return parseThumbInfo(doc, id)
}

// parseThumbInfo extracts a VideoRecord from a getthumbinfo document.
// Deleted, private, and unknown videos answer with status="fail".
func parseThumbInfo(doc *xmlquery.Node, id string) (types.VideoRecord, error) {
	root := xmlquery.FindOne(doc, "/nicovideo_thumb_response")
	if root == nil {
		return types.VideoRecord{}, fmt.Errorf("thumbinfo response for %s has no recognizable root element", id)
	}
	if status := root.SelectAttr("status"); status != "ok" {
		return types.VideoRecord{}, fmt.Errorf("thumbinfo lookup for %s answered status %q", id, status)
	}

	thumb := xmlquery.FindOne(root, "thumb")
	if thumb == nil {
		return types.VideoRecord{}, fmt.Errorf("thumbinfo response for %s is missing the thumb element", id)
	}

	videoID := elementText(thumb, "video_id")
	if videoID == "" {
		videoID = id
	}

	// Channel uploads carry ch_name instead of user_nickname.
	uploader := elementText(thumb, "user_nickname")
	if uploader == "" {
		uploader = elementText(thumb, "ch_name")
	}

	return types.VideoRecord{
		VideoID:    videoID,
		Title:      elementText(thumb, "title"),
		Uploader:   uploader,
		UploadDate: formatPublishTime(elementText(thumb, "first_retrieve")),
	}, nil
}

// elementText returns the trimmed inner text of a direct child element.
func elementText(node *xmlquery.Node, name string) string {
	child := xmlquery.FindOne(node, name)
	if child == nil {
		return ""
	}
	return child.InnerText()
}

// formatPublishTime converts the endpoint's RFC 3339 timestamp into the
// display form used throughout the ranking. Unknown shapes pass through
// unchanged rather than being corrupted.
func formatPublishTime(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02 15:04:05")
}
