// Package wiki looks up reference thumbnails from the Wikipedia pageimages
// API. A specimen with no article (or a flaky network) degrades to "no
// image" — this client never owes the caller a picture.
package wiki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

const (
	DefaultEndpoint = "https://en.wikipedia.org/w/api.php"
	// DefaultSize fits result cards; the comparison view asks for 600.
	DefaultSize = 300
)

type Client struct {
	http     *http.Client
	endpoint string
}

func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.Logger = nil
	return &Client{http: rc.StandardClient(), endpoint: endpoint}
}

// Thumbnail returns the article thumbnail URL for a name, or "" when
// Wikipedia has no matching page or no page image.
func (c *Client) Thumbnail(ctx context.Context, name string, size int) (string, error) {
	if name == "" {
		return "", nil
	}
	if size <= 0 {
		size = DefaultSize
	}

	q := url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("prop", "pageimages")
	q.Set("titles", name)
	q.Set("pithumbsize", strconv.Itoa(size))
	q.Set("origin", "*")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("wikipedia lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia lookup: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("wikipedia lookup: %w", err)
	}

	// pages is keyed by page id; "-1" means no match
	var thumb string
	gjson.GetBytes(body, "query.pages").ForEach(func(key, page gjson.Result) bool {
		if key.String() == "-1" {
			return false
		}
		thumb = page.Get("thumbnail.source").String()
		return false
	})
	return thumb, nil
}
