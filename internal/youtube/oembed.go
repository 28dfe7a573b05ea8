package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultOEmbedEndpoint is YouTube's public oEmbed provider.
const DefaultOEmbedEndpoint = "https://www.youtube.com/oembed"

// oembedTimeout bounds a single embed-markup lookup. Preview markup is
// decorative; a slow provider must not stall video import.
const oembedTimeout = 10 * time.Second

// OEmbedClient resolves embeddable preview markup for a watch URL via the
// oEmbed provider endpoint.
type OEmbedClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewOEmbedClient creates an OEmbedClient. Empty endpoint selects the
// public provider; nil httpClient selects a default with a short timeout.
func NewOEmbedClient(endpoint string, httpClient *http.Client) *OEmbedClient {
	if endpoint == "" {
		endpoint = DefaultOEmbedEndpoint
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: oembedTimeout}
	}

	return &OEmbedClient{endpoint: endpoint, httpClient: httpClient}
}

// oembedResponse is the subset of the oEmbed JSON document consumed here.
type oembedResponse struct {
	HTML string `json:"html"`
}

// EmbedHTML fetches the embeddable markup for a watch URL. Callers treat
// failure as non-fatal and store an empty embed.
func (o *OEmbedClient) EmbedHTML(ctx context.Context, watchURL string) (string, error) {
	q := url.Values{}
	q.Set("url", watchURL)
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("youtube: building oembed request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("youtube: oembed lookup for %s: %w", watchURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("youtube: oembed lookup for %s: status %d", watchURL, resp.StatusCode)
	}

	var doc oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("youtube: decoding oembed response: %w", err)
	}

	return doc.HTML, nil
}
