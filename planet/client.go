package planet

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"planet-explorer/util"

	"cloud.google.com/go/datastore"
	"github.com/hashicorp/go-retryablehttp"
	log "github.com/sirupsen/logrus"
)

var (
	httpClient *retryablehttp.Client
	once       sync.Once
)

func planetHTTP() *retryablehttp.Client {
	once.Do(func() {
		httpClient = retryablehttp.NewClient()
		httpClient.Logger = nil
		if log.GetLevel() >= log.DebugLevel {
			httpClient.Logger = log.StandardLogger()
		}
		httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
		// Failures are surfaced to the caller, never retried behind its back.
		httpClient.RetryMax = 0
	})
	return httpClient
}

// Client talks to the Planet data and orders APIs. Endpoint locations are
// fixed at startup. A datastore-backed default API key covers requests that
// arrive without a credential.
type Client struct {
	DataURL   string
	OrdersURL string
	TilesURL  string

	key  string
	lock sync.Mutex
}

func New(ctx context.Context, dataURL, ordersURL, tilesURL string) *Client {
	c := &Client{
		DataURL:   dataURL,
		OrdersURL: ordersURL,
		TilesURL:  tilesURL,
		key:       util.EnvOrDefault("PLANET_API_KEY", ""),
	}
	go c.DefaultKey(ctx) // warm up key
	return c
}

type appSettings struct {
	PlanetAPIKey string `datastore:"planet_api_key"`
}

// DefaultKey returns the stored default API key, fetching it from datastore
// on first use.
func (c *Client) DefaultKey(pctx context.Context) string {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.key != "" {
		return c.key
	}

	ctx, cancel := context.WithDeadline(pctx, time.Now().Add(30*time.Second))
	defer cancel()

	log.Infof("Fetching default API key from datastore")
	ds, err := datastore.NewClient(ctx, util.EnvOrDefault("PROJECT_ID", "planet-explorer"))
	if err != nil {
		log.Errorf("Failed to connect to datastore: %v", err)
		return ""
	}
	var settings appSettings

	key := datastore.NameKey("settings", "settings", nil)
	if err := ds.Get(ctx, key, &settings); err != nil {
		log.Errorf("datastore settings Get: %v", err)
		return ""
	}

	c.key = settings.PlanetAPIKey
	return c.key
}

// SaveDefaultKey stores key as the default credential and persists it in the
// background.
func (c *Client) SaveDefaultKey(pctx context.Context, key string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.key = key
	go func(pctx context.Context) {
		ctx, cancel := context.WithDeadline(pctx, time.Now().Add(30*time.Second))
		defer cancel()

		log.Infof("Persisting default API key to datastore")
		ds, err := datastore.NewClient(ctx, util.EnvOrDefault("PROJECT_ID", "planet-explorer"))
		if err != nil {
			log.Errorf("Failed to connect to datastore: %v", err)
			return
		}

		var settings appSettings
		c.lock.Lock()
		settings.PlanetAPIKey = c.key
		c.lock.Unlock()

		key := datastore.NameKey("settings", "settings", nil)
		if _, err := ds.Put(ctx, key, &settings); err != nil {
			log.Errorf("datastore settings Put: %v", err)
		}
	}(pctx)
}

// ServeKeySaveHandler accepts a form POST with the key to store as default.
func (c *Client) ServeKeySaveHandler(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	key := r.Form.Get("key")
	if key == "" {
		http.Error(w, "missing key", http.StatusBadRequest)
		return
	}
	// TODO validate the key against the API before persisting it.
	log.Infof("Saving default API key %q", key)
	c.SaveDefaultKey(context.Background(), key)
}

// ServeKeyStatusHandler reports whether a default key is configured. The key
// itself is never returned.
func (c *Client) ServeKeyStatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]bool{"has_key": c.DefaultKey(r.Context()) != ""}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Errorf("key status encode: %v", err)
	}
}

// Credential picks the request-supplied key when present, otherwise the
// stored default.
func (c *Client) Credential(ctx context.Context, requestKey string) string {
	if requestKey != "" {
		return requestKey
	}
	return c.DefaultKey(ctx)
}
