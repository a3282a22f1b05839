package explorer

import (
	"context"
	"strings"
	"sync"

	"planet-explorer/geom"
	"planet-explorer/planet"
	"planet-explorer/util"

	"github.com/paulmach/orb"
	log "github.com/sirupsen/logrus"
)

// Controller owns the drawing surface, submitted filter, result set, paging
// and selection state for one user, and turns commands into views. Search
// failures leave the prior result set intact; a slow search whose generation
// has been superseded is discarded rather than clobbering newer results.
type Controller struct {
	search SearchService
	orders OrderService

	mu         sync.Mutex
	surface    *geom.Surface
	submitted  *SearchFilter
	results    []*planet.Feature
	pager      *Pager
	selection  *Selection
	generation uint64
}

func New(search SearchService, orders OrderService) *Controller {
	return &Controller{
		search:    search,
		orders:    orders,
		surface:   geom.NewSurface(),
		pager:     NewPager(),
		selection: NewSelection(),
	}
}

// Apply runs one command and returns the resulting view.
func (c *Controller) Apply(ctx context.Context, cmd Command) *View {
	switch v := cmd.(type) {
	case *Draw:
		c.mu.Lock()
		defer c.mu.Unlock()
		c.surface.Draw(v.Geometry)
		return c.viewLocked("")
	case *ClearDrawing:
		c.mu.Lock()
		defer c.mu.Unlock()
		c.surface.Clear()
		return c.viewLocked("")
	case *Search:
		return c.doSearch(ctx, v.Filter)
	case *NextPage:
		c.mu.Lock()
		defer c.mu.Unlock()
		c.pager.Next()
		return c.viewLocked("")
	case *PrevPage:
		c.mu.Lock()
		defer c.mu.Unlock()
		c.pager.Prev()
		return c.viewLocked("")
	case *ToggleSelect:
		c.mu.Lock()
		defer c.mu.Unlock()
		c.selection.Toggle(v.ID, v.Checked)
		return c.viewLocked("")
	case *SubmitOrder:
		return c.doOrder(ctx, v)
	default:
		c.mu.Lock()
		defer c.mu.Unlock()
		log.Errorf("unknown command %T", cmd)
		return c.viewLocked("unknown command")
	}
}

func (c *Controller) doSearch(ctx context.Context, f *SearchFilter) *View {
	c.mu.Lock()
	filter := f.clone()
	if filter.Geometry == nil {
		filter.Geometry = c.surface.Extract()
	}
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	body, err := filter.Body()
	if err != nil {
		log.Errorf("search request build: %v", err)
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.viewLocked(err.Error())
	}

	features, err := c.search.Search(ctx, body)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		log.Debugf("Discarding superseded search result (generation %d, latest %d)", gen, c.generation)
		return c.viewLocked("")
	}
	if err != nil {
		log.Errorf("search: %v", err)
		return c.viewLocked(err.Error())
	}

	c.submitted = filter
	c.results = features
	c.pager.Load(len(features))
	c.selection.Reset()
	return c.viewLocked("")
}

func (c *Controller) doOrder(ctx context.Context, cmd *SubmitOrder) *View {
	c.mu.Lock()
	if c.submitted == nil || c.selection.Count() == 0 {
		defer c.mu.Unlock()
		return c.viewLocked("no items selected")
	}
	filter := c.submitted
	gs, err := geom.Serialize(filter.Geometry)
	if err != nil {
		defer c.mu.Unlock()
		log.Errorf("order geometry: %v", err)
		return c.viewLocked(err.Error())
	}
	body := &planet.OrderBody{
		APIKey:        filter.Credential,
		ItemType:      filter.ItemType,
		ItemList:      strings.Join(c.selection.List(), ","),
		Geometry:      gs,
		OrderDir:      cmd.SavePath,
		ProductBundle: cmd.Bundle,
	}
	c.mu.Unlock()

	raw, err := c.orders.Order(ctx, body)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		log.Errorf("order: %v", err)
		return c.viewLocked(err.Error())
	}
	v := c.viewLocked("")
	v.Order = raw
	return v
}

// SelectionFootprint returns the convex union of the selected scenes'
// footprints, or nil when nothing usable is selected.
func (c *Controller) SelectionFootprint() orb.Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	var gs []orb.Geometry
	for _, f := range c.results {
		if f.Geometry == nil || !c.selection.Has(f.ID) {
			continue
		}
		gs = append(gs, f.Geometry.Geometry())
	}
	return util.FootprintUnion(gs)
}

func (c *Controller) viewLocked(notice string) *View {
	credential := ""
	if c.submitted != nil {
		credential = c.submitted.Credential
	}
	start, end := c.pager.Bounds()
	items := make([]*ItemView, 0, end-start)
	for _, f := range c.results[start:end] {
		items = append(items, itemView(f, credential, c.selection.Has(f.ID)))
	}
	return &View{
		Items:         items,
		Page:          c.pager.Page(),
		PageCount:     c.pager.PageCount(),
		PrevEnabled:   c.pager.HasPrev(),
		NextEnabled:   c.pager.HasNext(),
		ResultCount:   len(c.results),
		SelectedCount: c.selection.Count(),
		SelectedIDs:   c.selection.List(),
		Notice:        notice,
	}
}
