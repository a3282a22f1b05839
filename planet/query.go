package planet

import (
	"fmt"
	"time"

	"planet-explorer/geom"
	"planet-explorer/util"

	"github.com/paulmach/orb/geojson"
)

// RequestFromBody translates a proxy search body into a quick-search filter
// set. Calendar days are interpreted in the configured location; the end day
// is inclusive.
func RequestFromBody(b *SearchBody) (*Request, error) {
	config := []interface{}{
		&RangeFilter{
			Type:      "RangeFilter",
			FieldName: "cloud_cover",
			Config:    &RangeConfig{LTE: b.CloudCover},
		},
	}

	if b.StartDate != nil || b.EndDate != nil {
		dr, err := dateRange(b.StartDate, b.EndDate)
		if err != nil {
			return nil, err
		}
		config = append(config, &DateRangeFilter{
			Type:      "DateRangeFilter",
			FieldName: "acquired",
			Config:    dr,
		})
	}

	if b.Geometry != "" {
		g, err := geom.Parse(b.Geometry)
		if err != nil {
			return nil, err
		}
		config = append(config, &GeometryFilter{
			Type:      "GeometryFilter",
			FieldName: "geometry",
			Config:    geojson.NewGeometry(g),
		})
	}

	return &Request{
		Filter: &AndFilter{
			Type:   "AndFilter",
			Config: config,
		},
		ItemTypes: []string{b.ItemType},
	}, nil
}

func dateRange(start, end *string) (*DateRange, error) {
	loc := util.LocationOrDie()
	dr := &DateRange{}
	if start != nil {
		t, err := time.ParseInLocation("2006-01-02", *start, loc)
		if err != nil {
			return nil, fmt.Errorf("bad start_date: %v", err)
		}
		dr.Start = t
	}
	if end != nil {
		t, err := time.ParseInLocation("2006-01-02", *end, loc)
		if err != nil {
			return nil, fmt.Errorf("bad end_date: %v", err)
		}
		dr.End = t.Add(24 * time.Hour)
	} else if start != nil {
		dr.End = dr.Start.Add(24 * time.Hour)
	}
	return dr, nil
}
