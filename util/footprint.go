package util

import (
	"github.com/paulmach/orb"

	hull "github.com/furstenheim/go-convex-hull-2d"
	log "github.com/sirupsen/logrus"
)

type hullPoints []orb.Point

func (c hullPoints) Take(i int) (x, y float64) {
	return c[i][0], c[i][1]
}

func (c hullPoints) Len() int {
	return len(c)
}

func (c hullPoints) Swap(i, j int) {
	c[i], c[j] = c[j], c[i]
}

func (c hullPoints) Slice(i, j int) hull.Interface {
	return c[i:j]
}

func outerRing(p orb.Polygon) hullPoints {
	if len(p) == 0 {
		return hullPoints{}
	}
	return hullPoints(p[0])
}

// PolyUnion approximates the union of two footprints by the convex hull of
// their outer rings.
func PolyUnion(p1, p2 orb.Polygon) orb.Polygon {
	var c hullPoints
	c = append(c, outerRing(p1)...)
	c = append(c, outerRing(p2)...)
	h := hull.New(c)

	var ring orb.Ring
	for i := 0; i < h.Len(); i++ {
		x, y := h.Take(i)
		ring = append(ring, orb.Point{x, y})
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}

// FootprintUnion folds PolyUnion over the scene footprints of a selection.
// Non-polygon geometries are skipped; an empty selection yields nil.
func FootprintUnion(gs []orb.Geometry) orb.Geometry {
	var acc *orb.Polygon
	for _, g := range gs {
		p, ok := g.(orb.Polygon)
		if !ok {
			log.Errorf("footprint union: skipping %T", g)
			continue
		}
		if acc == nil {
			cp := p
			acc = &cp
			continue
		}
		u := PolyUnion(*acc, p)
		acc = &u
	}
	if acc == nil {
		return nil
	}
	return *acc
}
