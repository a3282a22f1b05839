package planet

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

type GeometryFilter struct {
	Type      string            `json:"type"`
	Config    *geojson.Geometry `json:"config"`
	FieldName string            `json:"field_name"`
}

type DateRange struct {
	Start time.Time `json:"gte"`
	End   time.Time `json:"lte"`
}

type DateRangeFilter struct {
	Type      string     `json:"type"`
	FieldName string     `json:"field_name"`
	Config    *DateRange `json:"config"`
}

type RangeConfig struct {
	LTE float64 `json:"lte"`
}

type RangeFilter struct {
	Type      string       `json:"type"`
	FieldName string       `json:"field_name"`
	Config    *RangeConfig `json:"config"`
}

type AndFilter struct {
	Type   string        `json:"type"`
	Config []interface{} `json:"config"`
}

type Properties struct {
	Acquired    time.Time `json:"acquired"`
	Published   time.Time `json:"published,omitempty"`
	ItemType    string    `json:"item_type"`
	Instrument  string    `json:"instrument,omitempty"`
	SatelliteID string    `json:"satellite_id,omitempty"`
	CloudCover  float64   `json:"cloud_cover"`
}

type Links struct {
	Self      string `json:"_self,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type Feature struct {
	ID         string            `json:"id"`
	Geometry   *geojson.Geometry `json:"geometry,omitempty"`
	Assets     []string          `json:"assets,omitempty"`
	Links      *Links            `json:"_links,omitempty"`
	Properties *Properties       `json:"properties"`
}

type Request struct {
	Filter    interface{} `json:"filter"`
	ItemTypes []string    `json:"item_types"`
}

type Response struct {
	Features []*Feature `json:"features"`
}

// SearchBody is the search request accepted by the proxy. Dates are calendar
// days ("2006-01-02") or null, cloud cover is a fraction in [0,1], geometry
// is the coordinate string form handled by the geom package (absent when no
// region was drawn).
type SearchBody struct {
	APIKey     string  `json:"api_key"`
	Geometry   string  `json:"geometry,omitempty"`
	ItemType   string  `json:"item_type"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	CloudCover float64 `json:"cloud_cover"`
	Asset      string  `json:"asset"`
}

// OrderBody is the order request accepted by the proxy. ItemList is a
// comma-delimited id list.
type OrderBody struct {
	APIKey        string `json:"api_key"`
	ItemType      string `json:"item_type"`
	ItemList      string `json:"item_list"`
	Geometry      string `json:"geometry,omitempty"`
	OrderDir      string `json:"order_dir"`
	ProductBundle string `json:"product_bundle"`
}
