package searchserver

import (
	"encoding/json"
	"net/http"

	"planet-explorer/planet"
	"planet-explorer/searchcache"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
)

// SearchServer serves POST catalog searches, translating the wire body into
// quick-search filters and caching upstream results.
type SearchServer struct {
	Client *planet.Client
	Cache  *searchcache.Cache
}

func New(c *planet.Client, cache *searchcache.Cache) *SearchServer {
	return &SearchServer{
		Client: c,
		Cache:  cache,
	}
}

type searchResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Items   []*planet.Feature `json:"items"`
}

func (s *SearchServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	jsonError := func(err error, code int) {
		w.WriteHeader(code)
		sr := &searchResponse{Status: "error", Message: err.Error(), Items: []*planet.Feature{}}
		if err := json.NewEncoder(w).Encode(sr); err != nil {
			log.Errorf("search error encode: %v", err)
		}
	}

	body := &planet.SearchBody{}
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		log.Errorf("search body decode: %v", err)
		jsonError(err, http.StatusBadRequest)
		return
	}

	req, err := planet.RequestFromBody(body)
	if err != nil {
		log.Errorf("search request build: %v", err)
		jsonError(err, http.StatusBadRequest)
		return
	}
	log.Debugf("Search request: %s", spew.Sdump(req))

	features, ok := s.Cache.Get(req)
	if !ok {
		apiKey := s.Client.Credential(r.Context(), body.APIKey)
		resp, err := s.Client.QuickSearch(r.Context(), apiKey, req)
		if err != nil {
			log.Errorf("search QuickSearch: %v", err)
			if he, isHTTP := err.(*planet.HTTPError); isHTTP {
				// Relay the upstream status and message.
				jsonError(he, he.Status)
				return
			}
			jsonError(err, http.StatusBadGateway)
			return
		}
		features = resp.Features
		s.Cache.Put(req, features)
	}

	items := planet.FilterByAsset(features, body.Asset)
	if items == nil {
		items = []*planet.Feature{}
	}
	if err := json.NewEncoder(w).Encode(&searchResponse{Status: "ok", Items: items}); err != nil {
		log.Errorf("search encode: %v", err)
	}
}
