package orderserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"planet-explorer/planet"

	log "github.com/sirupsen/logrus"
)

// OrderServer serves POST download orders and relays the orders API
// response unmodified.
type OrderServer struct {
	Client *planet.Client
}

func New(c *planet.Client) *OrderServer {
	return &OrderServer{Client: c}
}

type orderError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *OrderServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	jsonError := func(err error, code int) {
		w.WriteHeader(code)
		oe := &orderError{Status: "error", Message: err.Error()}
		if err := json.NewEncoder(w).Encode(oe); err != nil {
			log.Errorf("order error encode: %v", err)
		}
	}

	body := &planet.OrderBody{}
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		log.Errorf("order body decode: %v", err)
		jsonError(err, http.StatusBadRequest)
		return
	}

	req, err := planet.BuildOrder(orderName(body), body)
	if err != nil {
		log.Errorf("order build: %v", err)
		jsonError(err, http.StatusBadRequest)
		return
	}

	apiKey := s.Client.Credential(r.Context(), body.APIKey)
	raw, err := s.Client.CreateOrder(r.Context(), apiKey, req)
	if err != nil {
		log.Errorf("order create: %v", err)
		if he, isHTTP := err.(*planet.HTTPError); isHTTP {
			jsonError(he, he.Status)
			return
		}
		jsonError(err, http.StatusBadGateway)
		return
	}

	if _, err := w.Write(raw); err != nil {
		log.Errorf("order relay: %v", err)
	}
}

func orderName(b *planet.OrderBody) string {
	base := filepath.Base(b.OrderDir)
	if base == "." || base == "/" || base == "" {
		base = "explorer"
	}
	return fmt.Sprintf("%s-%s", base, time.Now().Format("20060102-150405"))
}
