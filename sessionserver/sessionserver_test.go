package sessionserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"planet-explorer/catalog"
	"planet-explorer/explorer"
	"planet-explorer/planet"

	"github.com/gorilla/mux"
)

type stubSearch struct {
	last     *planet.SearchBody
	features []*planet.Feature
}

func (s *stubSearch) Search(ctx context.Context, body *planet.SearchBody) ([]*planet.Feature, error) {
	s.last = body
	return s.features, nil
}

type stubOrders struct {
	last *planet.OrderBody
}

func (s *stubOrders) Order(ctx context.Context, body *planet.OrderBody) (json.RawMessage, error) {
	s.last = body
	return json.RawMessage(`{"status":"ok"}`), nil
}

func fakeFeatures(n int) []*planet.Feature {
	var out []*planet.Feature
	for i := 0; i < n; i++ {
		out = append(out, &planet.Feature{
			ID:         fmt.Sprintf("item-%d", i),
			Properties: &planet.Properties{ItemType: "PSScene", Acquired: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
		})
	}
	return out
}

func testServer(t *testing.T, search explorer.SearchService, orders explorer.OrderService) *httptest.Server {
	t.Helper()
	cat, err := catalog.Load("../catalog/testdata")
	if err != nil {
		t.Fatalf("catalog load: %v", err)
	}
	s := New(cat, search, orders)
	r := mux.NewRouter()
	r.HandleFunc("/api/session", s.ServeCreate).Methods("POST")
	r.HandleFunc("/api/session/{id}/command", s.ServeCommand).Methods("POST")
	r.HandleFunc("/api/session/{id}/footprint", s.ServeFootprint).Methods("GET")
	r.HandleFunc("/api/catalog", s.ServeCatalog).Methods("GET")
	r.HandleFunc("/planet/bundles", s.ServeBundles).Methods("GET")
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func openSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	res, err := http.Post(srv.URL+"/api/session", "application/json", nil)
	if err != nil {
		t.Fatalf("session create: %v", err)
	}
	defer res.Body.Close()
	var out map[string]string
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("session create decode: %v", err)
	}
	if out["session"] == "" {
		t.Fatal("session create returned no id")
	}
	return out["session"]
}

func command(t *testing.T, srv *httptest.Server, id, body string) (int, *explorer.View) {
	t.Helper()
	res, err := http.Post(srv.URL+"/api/session/"+id+"/command", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("command post: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return res.StatusCode, nil
	}
	v := &explorer.View{}
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatalf("view decode: %v", err)
	}
	return res.StatusCode, v
}

func TestSessionFlow(t *testing.T) {
	search := &stubSearch{features: fakeFeatures(5)}
	orders := &stubOrders{}
	srv := testServer(t, search, orders)
	id := openSession(t, srv)

	code, _ := command(t, srv, id, `{"type":"draw","geometry":"[[0,0],[0,1],[1,1],[1,0],[0,0]]"}`)
	if code != http.StatusOK {
		t.Fatalf("draw status = %d", code)
	}

	code, v := command(t, srv, id, `{"type":"search","api_key":"KEY","item_type":"PSScene","asset":"ortho_visual","cloud_percent":40}`)
	if code != http.StatusOK {
		t.Fatalf("search status = %d", code)
	}
	if v.ResultCount != 5 || v.Page != 1 || v.PageCount != 2 || len(v.Items) != 3 {
		t.Errorf("search view = %+v, want 5 results on page 1 of 2", v)
	}
	if search.last == nil {
		t.Fatal("search body never reached the service")
	}
	if search.last.Geometry == "" {
		t.Error("drawn region missing from search body")
	}
	if search.last.CloudCover != 0.4 {
		t.Errorf("cloud_cover = %v, want 0.4", search.last.CloudCover)
	}

	code, v = command(t, srv, id, `{"type":"next_page"}`)
	if code != http.StatusOK || v.Page != 2 || len(v.Items) != 2 {
		t.Errorf("next_page view = %+v, want page 2 with 2 items", v)
	}

	code, v = command(t, srv, id, `{"type":"toggle_select","id":"item-3","checked":true}`)
	if code != http.StatusOK || v.SelectedCount != 1 || v.SelectedIDs[0] != "item-3" {
		t.Errorf("toggle view = %+v, want item-3 selected", v)
	}

	code, v = command(t, srv, id, `{"type":"submit_order","save_path":"/tmp/scenes","product_bundle":"visual"}`)
	if code != http.StatusOK {
		t.Fatalf("order status = %d", code)
	}
	if string(v.Order) != `{"status":"ok"}` {
		t.Errorf("order response = %s", v.Order)
	}
	if orders.last == nil || orders.last.ItemList != "item-3" || orders.last.ProductBundle != "visual" {
		t.Errorf("order body = %+v, want item-3 with visual bundle", orders.last)
	}
}

func TestUnknownSession(t *testing.T) {
	srv := testServer(t, &stubSearch{}, &stubOrders{})
	code, _ := command(t, srv, "no-such-session", `{"type":"next_page"}`)
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestBadCommand(t *testing.T) {
	srv := testServer(t, &stubSearch{}, &stubOrders{})
	id := openSession(t, srv)

	code, _ := command(t, srv, id, `{"type":"launch"}`)
	if code != http.StatusBadRequest {
		t.Errorf("unknown type status = %d, want 400", code)
	}

	code, _ = command(t, srv, id, `{"type":"search","start_date":"August 1st"}`)
	if code != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", code)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	srv := testServer(t, &stubSearch{}, &stubOrders{})

	res, err := http.Get(srv.URL + "/api/catalog")
	if err != nil {
		t.Fatalf("catalog get: %v", err)
	}
	defer res.Body.Close()
	var cat struct {
		Missions []struct {
			ItemType string   `json:"item_type"`
			Assets   []string `json:"assets"`
		} `json:"missions"`
	}
	if err := json.NewDecoder(res.Body).Decode(&cat); err != nil {
		t.Fatalf("catalog decode: %v", err)
	}
	if len(cat.Missions) != 6 || cat.Missions[0].ItemType != "PSScene" {
		t.Errorf("catalog = %+v, want 6 missions starting with PSScene", cat.Missions)
	}

	res, err = http.Get(srv.URL + "/planet/bundles?item_type=PSScene&asset=ortho_visual")
	if err != nil {
		t.Fatalf("bundles get: %v", err)
	}
	defer res.Body.Close()
	var bundles map[string][]string
	if err := json.NewDecoder(res.Body).Decode(&bundles); err != nil {
		t.Fatalf("bundles decode: %v", err)
	}
	if got := bundles["bundles"]; len(got) != 1 || got[0] != "visual" {
		t.Errorf("bundles = %v, want [visual]", got)
	}
}

func TestFootprint(t *testing.T) {
	features := fakeFeatures(2)
	srv := testServer(t, &stubSearch{features: features}, &stubOrders{})
	id := openSession(t, srv)

	res, err := http.Get(srv.URL + "/api/session/" + id + "/footprint")
	if err != nil {
		t.Fatalf("footprint get: %v", err)
	}
	defer res.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("footprint decode: %v", err)
	}
	if out["footprint"] != nil {
		t.Errorf("footprint = %v, want null with nothing selected", out["footprint"])
	}
}
