package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"planet-explorer/planet"

	"github.com/hashicorp/go-retryablehttp"
	log "github.com/sirupsen/logrus"
)

// SearchService issues catalog searches.
type SearchService interface {
	Search(ctx context.Context, body *planet.SearchBody) ([]*planet.Feature, error)
}

// OrderService places download orders.
type OrderService interface {
	Order(ctx context.Context, body *planet.OrderBody) (json.RawMessage, error)
}

// Remote posts wire bodies to the proxy search and order endpoints. Endpoint
// locations are fixed at construction.
type Remote struct {
	SearchURL string
	OrderURL  string

	client *retryablehttp.Client
}

func NewRemote(base string) *Remote {
	c := retryablehttp.NewClient()
	c.Logger = nil
	if log.GetLevel() >= log.DebugLevel {
		c.Logger = log.StandardLogger()
	}
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	// Failures are terminal for the request; the controller surfaces them.
	c.RetryMax = 0
	return &Remote{
		SearchURL: base + "/planet/search",
		OrderURL:  base + "/planet/download",
		client:    c,
	}
}

func (r *Remote) post(ctx context.Context, url string, body interface{}) ([]byte, error) {
	j, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := retryablehttp.NewRequest("POST", url, j)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := r.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, &planet.TransportError{Err: err}
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &planet.HTTPError{Status: res.StatusCode, Message: string(raw)}
	}
	return raw, nil
}

// Search posts the body to the search endpoint and decodes the result set.
func (r *Remote) Search(ctx context.Context, body *planet.SearchBody) ([]*planet.Feature, error) {
	raw, err := r.post(ctx, r.SearchURL, body)
	if err != nil {
		return nil, err
	}
	return DecodeResults(raw)
}

// Order posts the body to the order endpoint. The response is passed through
// unmodified.
func (r *Remote) Order(ctx context.Context, body *planet.OrderBody) (json.RawMessage, error) {
	raw, err := r.post(ctx, r.OrderURL, body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

// DecodeResults accepts both wire forms of a search response: an envelope
// with an "items" array, and the legacy object mapping item keys to items.
// Object key order is preserved by walking the token stream.
func DecodeResults(raw []byte) ([]*planet.Feature, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("search response decode: %v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("search response is not an object")
	}

	var out []*planet.Feature
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("search response decode: %v", err)
		}
		key, _ := keyTok.(string)
		switch key {
		case "status", "message", "count":
			var skip interface{}
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("search response decode: %v", err)
			}
		case "items":
			if err := dec.Decode(&out); err != nil {
				return nil, fmt.Errorf("search response items: %v", err)
			}
		default:
			f := &planet.Feature{}
			if err := dec.Decode(f); err != nil {
				return nil, fmt.Errorf("search response item %q: %v", key, err)
			}
			out = append(out, f)
		}
	}
	return out, nil
}
