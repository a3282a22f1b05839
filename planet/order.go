package planet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"planet-explorer/geom"

	"github.com/paulmach/orb/geojson"
	log "github.com/sirupsen/logrus"

	"github.com/hashicorp/go-retryablehttp"
)

type OrderProduct struct {
	ItemIDs       []string `json:"item_ids"`
	ItemType      string   `json:"item_type"`
	ProductBundle string   `json:"product_bundle"`
}

type OrderRequest struct {
	Name     string                   `json:"name"`
	Products []*OrderProduct          `json:"products"`
	Tools    []map[string]interface{} `json:"tools,omitempty"`
}

// BuildOrder translates a proxy order body into an orders API request. The
// drawn region becomes a clip tool AOI; scenes are composited and harmonized
// against Sentinel-2.
func BuildOrder(name string, b *OrderBody) (*OrderRequest, error) {
	var ids []string
	for _, id := range strings.Split(b.ItemList, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("empty item list")
	}

	req := &OrderRequest{
		Name: name,
		Products: []*OrderProduct{{
			ItemIDs:       ids,
			ItemType:      b.ItemType,
			ProductBundle: b.ProductBundle,
		}},
		Tools: []map[string]interface{}{
			{"composite": map[string]interface{}{}},
			{"harmonize": map[string]interface{}{"target_sensor": "Sentinel-2"}},
		},
	}

	if b.Geometry != "" {
		g, err := geom.Parse(b.Geometry)
		if err != nil {
			return nil, err
		}
		clip := map[string]interface{}{
			"clip": map[string]interface{}{"aoi": geojson.NewGeometry(g)},
		}
		req.Tools = append([]map[string]interface{}{clip}, req.Tools...)
	}

	return req, nil
}

// CreateOrder posts the order and returns the orders API response unmodified.
func (c *Client) CreateOrder(ctx context.Context, apiKey string, req *OrderRequest) (json.RawMessage, error) {
	j, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	log.Debugf("Making order request %q", string(j))

	r, err := retryablehttp.NewRequest("POST", c.OrdersURL, j)
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

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &HTTPError{Status: res.StatusCode, Message: string(body)}
	}
	return json.RawMessage(body), nil
}
