package planet

import (
	"context"
	"fmt"
	"io"
	"net/url"

	log "github.com/sirupsen/logrus"

	"github.com/hashicorp/go-retryablehttp"
)

// FetchThumb copies the scene thumbnail for the item into w.
func (c *Client) FetchThumb(ctx context.Context, itemType, id, apiKey string, w io.Writer) error {
	v := make(url.Values)
	v.Add("api_key", apiKey)
	u := fmt.Sprintf("%s/item-types/%s/items/%s/thumb?%s", c.TilesURL, itemType, id, v.Encode())

	log.Debugf("Fetching thumbnail %q", id)
	r, err := retryablehttp.NewRequest("GET", u, nil)
	if err != nil {
		return err
	}
	res, err := planetHTTP().Do(r.WithContext(ctx))
	if err != nil {
		return &TransportError{Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		body, _ := io.ReadAll(res.Body)
		return &HTTPError{Status: res.StatusCode, Message: string(body)}
	}
	_, err = io.Copy(w, res.Body)
	return err
}
