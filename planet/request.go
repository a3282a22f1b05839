package planet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	log "github.com/sirupsen/logrus"

	"github.com/hashicorp/go-retryablehttp"
)

// QuickSearch queries the /quick-search data API endpoint. Non-2xx statuses
// surface as HTTPError with the raw response body; network failures as
// TransportError.
func (c *Client) QuickSearch(ctx context.Context, apiKey string, req *Request) (*Response, error) {
	j, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	log.Debugf("Making quick-search request %q", string(j))

	v := make(url.Values)
	v.Add("_sort", "acquired desc")
	r, err := retryablehttp.NewRequest("POST", c.DataURL+"/quick-search?"+v.Encode(), j)
	if err != nil {
		return nil, err
	}
	r.Header.Set("Content-Type", "application/json")
	r.SetBasicAuth(apiKey, "")

	res, err := planetHTTP().Do(r.WithContext(ctx))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return nil, &HTTPError{Status: res.StatusCode, Message: string(body)}
	}

	resp := &Response{}
	if err := json.NewDecoder(res.Body).Decode(resp); err != nil {
		return nil, fmt.Errorf("quick-search decode: %v", err)
	}
	return resp, nil
}

// FilterByAsset keeps the features whose asset list contains asset. An empty
// asset keeps everything; server order is preserved.
func FilterByAsset(features []*Feature, asset string) []*Feature {
	if asset == "" {
		return features
	}
	var out []*Feature
	for _, f := range features {
		for _, a := range f.Assets {
			if a == asset {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
