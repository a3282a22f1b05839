// Package sessionserver exposes the explorer controller over HTTP. Each
// session owns one controller; user actions arrive as typed commands and
// every response is the controller's current view.
package sessionserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"planet-explorer/catalog"
	"planet-explorer/explorer"
	"planet-explorer/geom"
	"planet-explorer/util"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	log "github.com/sirupsen/logrus"
)

const (
	// IdleExpiry is how long a session survives without activity.
	IdleExpiry = 30 * time.Minute
)

type session struct {
	controller *explorer.Controller
	lastSeen   time.Time
}

type SessionServer struct {
	Catalog *catalog.Catalog

	search explorer.SearchService
	orders explorer.OrderService

	mu       sync.Mutex
	sessions map[string]*session
}

func New(cat *catalog.Catalog, search explorer.SearchService, orders explorer.OrderService) *SessionServer {
	return &SessionServer{
		Catalog:  cat,
		search:   search,
		orders:   orders,
		sessions: make(map[string]*session),
	}
}

// sweepLocked drops sessions idle past expiry. Called with the lock held on
// every access, same as trimming a cache on read.
func (s *SessionServer) sweepLocked() {
	for id, sess := range s.sessions {
		if time.Since(sess.lastSeen) > IdleExpiry {
			log.Debugf("Expiring idle session %s", id)
			delete(s.sessions, id)
		}
	}
}

func (s *SessionServer) lookup(id string) (*explorer.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = time.Now()
	return sess.controller, true
}

func jsonError(w http.ResponseWriter, err error, code int) {
	w.WriteHeader(code)
	resp := map[string]string{"status": "error", "message": err.Error()}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Errorf("session error encode: %v", err)
	}
}

// ServeCreate opens a new session.
func (s *SessionServer) ServeCreate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := uuid.NewString()
	s.mu.Lock()
	s.sweepLocked()
	s.sessions[id] = &session{
		controller: explorer.New(s.search, s.orders),
		lastSeen:   time.Now(),
	}
	s.mu.Unlock()
	log.Infof("Opened session %s", id)
	json.NewEncoder(w).Encode(map[string]string{"session": id})
}

type commandForm struct {
	Type string `json:"type"`

	// search form controls
	Credential   string  `json:"api_key,omitempty"`
	ItemType     string  `json:"item_type,omitempty"`
	Asset        string  `json:"asset,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	CloudPercent int     `json:"cloud_percent,omitempty"`

	// drawn region, coordinate string form
	Geometry string `json:"geometry,omitempty"`

	// selection toggle
	ID      string `json:"id,omitempty"`
	Checked bool   `json:"checked,omitempty"`

	// order
	SavePath string `json:"save_path,omitempty"`
	Bundle   string `json:"product_bundle,omitempty"`
}

func parseDay(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", *s, util.LocationOrDie())
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func buildCommand(f *commandForm) (explorer.Command, error) {
	switch f.Type {
	case "draw":
		g, err := geom.Parse(f.Geometry)
		if err != nil {
			return nil, err
		}
		return &explorer.Draw{Geometry: g}, nil
	case "clear_drawing":
		return &explorer.ClearDrawing{}, nil
	case "search":
		start, err := parseDay(f.StartDate)
		if err != nil {
			return nil, fmt.Errorf("bad start_date: %v", err)
		}
		end, err := parseDay(f.EndDate)
		if err != nil {
			return nil, fmt.Errorf("bad end_date: %v", err)
		}
		var g orb.Geometry
		if f.Geometry != "" {
			if g, err = geom.Parse(f.Geometry); err != nil {
				return nil, err
			}
		}
		filter := explorer.FilterFromForm(f.Credential, f.ItemType, f.Asset, start, end, f.CloudPercent, g)
		return &explorer.Search{Filter: filter}, nil
	case "next_page":
		return &explorer.NextPage{}, nil
	case "prev_page":
		return &explorer.PrevPage{}, nil
	case "toggle_select":
		return &explorer.ToggleSelect{ID: f.ID, Checked: f.Checked}, nil
	case "submit_order":
		return &explorer.SubmitOrder{SavePath: f.SavePath, Bundle: f.Bundle}, nil
	default:
		return nil, fmt.Errorf("unknown command type %q", f.Type)
	}
}

// ServeCommand applies one command to the session's controller and returns
// the resulting view.
func (s *SessionServer) ServeCommand(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctrl, ok := s.lookup(mux.Vars(r)["id"])
	if !ok {
		jsonError(w, fmt.Errorf("unknown session"), http.StatusNotFound)
		return
	}

	form := &commandForm{}
	if err := json.NewDecoder(r.Body).Decode(form); err != nil {
		jsonError(w, err, http.StatusBadRequest)
		return
	}
	cmd, err := buildCommand(form)
	if err != nil {
		log.Errorf("session command: %v", err)
		jsonError(w, err, http.StatusBadRequest)
		return
	}

	view := ctrl.Apply(r.Context(), cmd)
	if err := json.NewEncoder(w).Encode(view); err != nil {
		log.Errorf("session view encode: %v", err)
	}
}

// ServeFootprint returns the selection footprint as GeoJSON.
func (s *SessionServer) ServeFootprint(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctrl, ok := s.lookup(mux.Vars(r)["id"])
	if !ok {
		jsonError(w, fmt.Errorf("unknown session"), http.StatusNotFound)
		return
	}

	resp := map[string]interface{}{"footprint": nil}
	if g := ctrl.SelectionFootprint(); g != nil {
		resp["footprint"] = geojson.NewGeometry(g)
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Errorf("footprint encode: %v", err)
	}
}

// ServeBundles lists the product bundles available for a mission and asset.
func (s *SessionServer) ServeBundles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	r.ParseForm()
	itemType := r.Form.Get("item_type")
	asset := r.Form.Get("asset")
	if itemType == "" || asset == "" {
		jsonError(w, fmt.Errorf("missing item_type or asset"), http.StatusBadRequest)
		return
	}
	bundles := s.Catalog.BundlesFor(itemType, asset)
	if bundles == nil {
		bundles = []string{}
	}
	json.NewEncoder(w).Encode(map[string][]string{"bundles": bundles})
}

// ServeCatalog lists the missions and their asset types.
func (s *SessionServer) ServeCatalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	type missionEntry struct {
		ItemType string   `json:"item_type"`
		Assets   []string `json:"assets"`
	}
	var missions []*missionEntry
	for _, m := range s.Catalog.Missions() {
		missions = append(missions, &missionEntry{
			ItemType: m,
			Assets:   s.Catalog.AssetsFor(m),
		})
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"missions": missions})
}
