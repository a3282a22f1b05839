package planet

import (
	"testing"
)

func strptr(s string) *string { return &s }

func TestRequestFromBodyFilters(t *testing.T) {
	body := &SearchBody{
		APIKey:     "key",
		Geometry:   `[[-4.71,40.65],[-4.67,40.65],[-4.67,40.68],[-4.71,40.68],[-4.71,40.65]]`,
		ItemType:   "PSScene",
		StartDate:  strptr("2019-01-01"),
		EndDate:    strptr("2019-01-10"),
		CloudCover: 0.5,
		Asset:      "ortho_analytic_4b_sr",
	}
	req, err := RequestFromBody(body)
	if err != nil {
		t.Fatalf("RequestFromBody: %v", err)
	}

	if len(req.ItemTypes) != 1 || req.ItemTypes[0] != "PSScene" {
		t.Errorf("ItemTypes = %v", req.ItemTypes)
	}

	af, ok := req.Filter.(*AndFilter)
	if !ok {
		t.Fatalf("Filter = %T, want AndFilter", req.Filter)
	}
	if len(af.Config) != 3 {
		t.Fatalf("filter count = %d, want 3 (cloud, dates, geometry)", len(af.Config))
	}

	rf, ok := af.Config[0].(*RangeFilter)
	if !ok || rf.FieldName != "cloud_cover" || rf.Config.LTE != 0.5 {
		t.Errorf("cloud filter = %+v", af.Config[0])
	}

	df, ok := af.Config[1].(*DateRangeFilter)
	if !ok || df.FieldName != "acquired" {
		t.Fatalf("date filter = %+v", af.Config[1])
	}
	// End day is inclusive: the range extends past the end day's midnight.
	if !df.Config.End.After(df.Config.Start.AddDate(0, 0, 9)) {
		t.Errorf("date range = %v..%v", df.Config.Start, df.Config.End)
	}

	gf, ok := af.Config[2].(*GeometryFilter)
	if !ok || gf.FieldName != "geometry" || gf.Config == nil {
		t.Errorf("geometry filter = %+v", af.Config[2])
	}
}

func TestRequestFromBodyNoGeometryNoDates(t *testing.T) {
	req, err := RequestFromBody(&SearchBody{ItemType: "PSScene", CloudCover: 0.45})
	if err != nil {
		t.Fatalf("RequestFromBody: %v", err)
	}
	af := req.Filter.(*AndFilter)
	if len(af.Config) != 1 {
		t.Errorf("filter count = %d, want cloud filter only", len(af.Config))
	}
}

func TestRequestFromBodyBadGeometry(t *testing.T) {
	_, err := RequestFromBody(&SearchBody{
		ItemType: "PSScene",
		Geometry: `[[0,0],[0,1],[1,1]]`,
	})
	if err == nil {
		t.Error("RequestFromBody accepted an open 3-point ring")
	}
}

func TestRequestFromBodyBadDate(t *testing.T) {
	_, err := RequestFromBody(&SearchBody{
		ItemType:  "PSScene",
		StartDate: strptr("01/01/2019"),
	})
	if err == nil {
		t.Error("RequestFromBody accepted a non-calendar date")
	}
}

func TestFilterByAsset(t *testing.T) {
	features := []*Feature{
		{ID: "a", Assets: []string{"ortho_visual", "ortho_udm2"}},
		{ID: "b", Assets: []string{"ortho_analytic_4b"}},
		{ID: "c", Assets: []string{"ortho_visual"}},
	}
	out := FilterByAsset(features, "ortho_visual")
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "c" {
		t.Errorf("FilterByAsset = %+v", out)
	}
	if got := FilterByAsset(features, ""); len(got) != 3 {
		t.Errorf("empty asset filtered to %d items", len(got))
	}
}
