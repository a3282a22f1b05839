package explorer

import (
	"time"

	"planet-explorer/geom"
	"planet-explorer/planet"
	"planet-explorer/util"

	"github.com/jinzhu/copier"
	"github.com/paulmach/orb"
)

// SearchFilter holds one search's parameters. The controller snapshots it at
// submit time; the snapshot is never modified afterwards.
type SearchFilter struct {
	Credential string
	ItemType   string
	Asset      string
	Start      *time.Time
	End        *time.Time
	CloudCover float64 // fraction in [0,1]
	Geometry   orb.Geometry
}

// FilterFromForm assembles a filter from raw control values. cloudPercent is
// the integer slider reading (0-100).
func FilterFromForm(credential, itemType, asset string, start, end *time.Time, cloudPercent int, g orb.Geometry) *SearchFilter {
	return &SearchFilter{
		Credential: credential,
		ItemType:   itemType,
		Asset:      asset,
		Start:      start,
		End:        end,
		CloudCover: float64(cloudPercent) / 100,
		Geometry:   g,
	}
}

// Body serializes the filter into the wire search request. Dates are
// formatted as calendar days in the configured location so the requested
// days do not drift across timezones; an absent geometry is omitted.
func (f *SearchFilter) Body() (*planet.SearchBody, error) {
	gs, err := geom.Serialize(f.Geometry)
	if err != nil {
		return nil, err
	}
	b := &planet.SearchBody{
		APIKey:     f.Credential,
		Geometry:   gs,
		ItemType:   f.ItemType,
		CloudCover: f.CloudCover,
		Asset:      f.Asset,
	}
	loc := util.LocationOrDie()
	if f.Start != nil {
		s := f.Start.In(loc).Format("2006-01-02")
		b.StartDate = &s
	}
	if f.End != nil {
		e := f.End.In(loc).Format("2006-01-02")
		b.EndDate = &e
	}
	return b, nil
}

func (f *SearchFilter) clone() *SearchFilter {
	c := &SearchFilter{}
	copier.Copy(c, f)
	return c
}
