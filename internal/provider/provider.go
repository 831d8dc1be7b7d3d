// internal/provider/provider.go

// Package provider implements the pluggable metadata providers consulted
// during URL resolution. Providers are treated as unreliable collaborators:
// any network error, timeout, or malformed response is reported as an error
// to the resolver, which maps it to a failure outcome instead of
// propagating it.
package provider

import (
	"context"

	"github.com/valpere/SurveyRanker/internal/utils"
	"github.com/valpere/SurveyRanker/pkg/types"
)

// LookupProvider is the platform-specific provider: a fast, structured
// metadata lookup keyed by video identifier.
type LookupProvider interface {
	// Lookup fetches the metadata of one video by its platform identifier.
	Lookup(ctx context.Context, id string) (types.VideoRecord, error)
}

// ExtractProvider is the general-purpose provider: it handles both direct
// video links and collection/playlist links, returning one record per
// contained video. Extraction is metadata-only, nothing is downloaded.
type ExtractProvider interface {
	Extract(ctx context.Context, rawURL string) ([]types.VideoRecord, error)
}

// ErrUnsupported is returned when a provider cannot make sense of the URL
// or identifier it was given.
var ErrUnsupported = utils.NewStructuredError(utils.ErrCodeUnsupportedURL, "provider does not support this reference")
