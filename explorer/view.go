package explorer

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"planet-explorer/planet"
)

// ItemView is one rendered result row.
type ItemView struct {
	ID         string `json:"id"`
	ItemType   string `json:"item_type"`
	Acquired   string `json:"acquired"`
	Instrument string `json:"instrument"`
	ThumbURL   string `json:"thumb_url,omitempty"`
	Selected   bool   `json:"selected"`
}

// View is the full render instruction set for the current page.
type View struct {
	Items         []*ItemView     `json:"items"`
	Page          int             `json:"page"`
	PageCount     int             `json:"page_count"`
	PrevEnabled   bool            `json:"prev_enabled"`
	NextEnabled   bool            `json:"next_enabled"`
	ResultCount   int             `json:"result_count"`
	SelectedCount int             `json:"selected_count"`
	SelectedIDs   []string        `json:"selected_ids"`
	Notice        string          `json:"notice,omitempty"`
	Order         json.RawMessage `json:"order,omitempty"`
}

func itemView(f *planet.Feature, credential string, selected bool) *ItemView {
	v := &ItemView{
		ID:         f.ID,
		Instrument: "N/A",
		Selected:   selected,
	}
	if f.Properties != nil {
		v.ItemType = f.Properties.ItemType
		v.Acquired = f.Properties.Acquired.Format(time.RFC3339)
		if f.Properties.Instrument != "" {
			v.Instrument = f.Properties.Instrument
		}
	}
	if f.Links != nil && f.Links.Thumbnail != "" {
		v.ThumbURL = thumbURL(f.Links.Thumbnail, credential)
	}
	return v
}

// thumbURL attaches the credential as an access token query parameter.
func thumbURL(thumb, credential string) string {
	if credential == "" {
		return thumb
	}
	sep := "?"
	if strings.Contains(thumb, "?") {
		sep = "&"
	}
	return thumb + sep + "api_key=" + url.QueryEscape(credential)
}
