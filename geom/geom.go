package geom

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
)

// MalformedError indicates a drawn shape that cannot be serialized into a
// search or order request.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed geometry: %s", e.Reason)
}

// Surface holds the single drawable feature. Drawing a new shape replaces
// the previous one; at most one feature exists at a time.
type Surface struct {
	feature orb.Geometry
}

func NewSurface() *Surface {
	return &Surface{}
}

// Draw replaces the current feature with g.
func (s *Surface) Draw(g orb.Geometry) {
	s.feature = g
}

// Clear removes the current feature.
func (s *Surface) Clear() {
	s.feature = nil
}

// Extract returns the current feature, or nil when nothing has been drawn.
// An empty surface is a valid state, not an error.
func (s *Surface) Extract() orb.Geometry {
	return s.feature
}

// Rectangle builds the 4-sided closed ring covering b.
func Rectangle(b orb.Bound) orb.Polygon {
	return b.ToPolygon()
}

// Parse decodes the wire coordinate form: either a bare point "[x,y]" or a
// closed polygon ring "[[x,y],...]".
func Parse(s string) (orb.Geometry, error) {
	var pt []float64
	if err := json.Unmarshal([]byte(s), &pt); err == nil {
		if len(pt) != 2 {
			return nil, &MalformedError{Reason: fmt.Sprintf("point has %d coordinates", len(pt))}
		}
		return orb.Point{pt[0], pt[1]}, nil
	}

	var coords [][]float64
	if err := json.Unmarshal([]byte(s), &coords); err != nil {
		return nil, &MalformedError{Reason: err.Error()}
	}
	var ring orb.Ring
	for _, c := range coords {
		if len(c) != 2 {
			return nil, &MalformedError{Reason: fmt.Sprintf("ring vertex has %d coordinates", len(c))}
		}
		ring = append(ring, orb.Point{c[0], c[1]})
	}
	g := orb.Polygon{ring}
	if err := Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Serialize encodes g into the wire coordinate form accepted by Parse.
// A nil geometry serializes to the empty string (geometry absent).
func Serialize(g orb.Geometry) (string, error) {
	if g == nil {
		return "", nil
	}
	if err := Validate(g); err != nil {
		return "", err
	}
	switch v := g.(type) {
	case orb.Point:
		j, err := json.Marshal([]float64{v[0], v[1]})
		return string(j), err
	case orb.Polygon:
		ring := v[0]
		coords := make([][]float64, 0, len(ring))
		for _, p := range ring {
			coords = append(coords, []float64{p[0], p[1]})
		}
		j, err := json.Marshal(coords)
		return string(j), err
	default:
		return "", &MalformedError{Reason: fmt.Sprintf("unsupported geometry %T", g)}
	}
}

// Validate rejects shapes that would produce an unusable search region.
// A nil geometry is valid (no region constraint).
func Validate(g orb.Geometry) error {
	if g == nil {
		return nil
	}
	switch v := g.(type) {
	case orb.Point:
		return nil
	case orb.Polygon:
		if len(v) == 0 || len(v[0]) == 0 {
			return &MalformedError{Reason: "empty coordinate array"}
		}
		ring := v[0]
		if len(ring) < 4 {
			return &MalformedError{Reason: fmt.Sprintf("ring has only %d points", len(ring))}
		}
		if !ring.Closed() {
			return &MalformedError{Reason: "ring is not closed"}
		}
		return nil
	default:
		return &MalformedError{Reason: fmt.Sprintf("unsupported geometry %T", g)}
	}
}
