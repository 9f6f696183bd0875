package isochrone

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/twpayne/go-geos"

	"osmgt/internal/config"
)

// geosContext wraps a *geos.Context plus the buffer parameters derived from
// config.Config, grounded on isochrone.py's BufferParams usage (cap_style,
// join_style, resolution) (spec.md §4.6 "Polygon synthesis").
type geosContext struct {
	ctx    *geos.Context
	params *geos.BufferParams
}

func newGeosContext(cfg config.Config) *geosContext {
	params := geos.NewBufferParams().
		SetEndCapStyle(capStyleOf(cfg.CapStyle)).
		SetJoinStyle(joinStyleOf(cfg.JoinStyle)).
		SetQuadrantSegments(cfg.QuadrantSegments)
	return &geosContext{ctx: geos.NewContext(), params: params}
}

func capStyleOf(c config.CapStyle) geos.BufCapStyle {
	switch c {
	case config.CapFlat:
		return geos.BufCapFlat
	case config.CapSquare:
		return geos.BufCapSquare
	default:
		return geos.BufCapRound
	}
}

func joinStyleOf(j config.JoinStyle) geos.BufJoinStyle {
	switch j {
	case config.JoinMitre:
		return geos.BufJoinMitre
	case config.JoinBevel:
		return geos.BufJoinBevel
	default:
		return geos.BufJoinRound
	}
}

func (g *geosContext) fromOrb(geom orb.Geometry) (*geos.Geom, error) {
	if geom == nil {
		return nil, fmt.Errorf("isochrone: nil geometry")
	}
	return g.ctx.NewGeomFromWKT(wkt.MarshalString(geom))
}

func (g *geosContext) toOrb(geom *geos.Geom) (orb.Geometry, error) {
	return wkt.Unmarshal([]byte(geom.ToWKT()))
}

// bufferMeters buffers an EPSG:3857 geometry by widthMeters using the
// configured buffer params.
func (g *geosContext) bufferMeters(geom orb.Geometry, widthMeters float64) (orb.Geometry, error) {
	gg, err := g.fromOrb(geom)
	if err != nil {
		return nil, err
	}
	buffered := gg.BufferWithParams(g.params, widthMeters)
	return g.toOrb(buffered)
}

// unionAll computes the unary union of several EPSG:3857 geometries,
// grounded on isochrones.py's shapely unary_union over reached roads.
func (g *geosContext) unionAll(geoms []orb.Geometry) (orb.Geometry, error) {
	if len(geoms) == 0 {
		return orb.MultiPolygon{}, nil
	}
	var acc *geos.Geom
	for _, geom := range geoms {
		gg, err := g.fromOrb(geom)
		if err != nil {
			return nil, err
		}
		if acc == nil {
			acc = gg
			continue
		}
		acc = acc.Union(gg)
	}
	return g.toOrb(acc)
}

// difference computes a - b over EPSG:3857 geometries.
func (g *geosContext) difference(a, b orb.Geometry) (orb.Geometry, error) {
	ga, err := g.fromOrb(a)
	if err != nil {
		return nil, err
	}
	gb, err := g.fromOrb(b)
	if err != nil {
		return nil, err
	}
	return g.toOrb(ga.Difference(gb))
}

// splitParts returns geom as a slice of single orb.Polygon parts, splitting
// a MultiPolygon so subnetwork components stay isolated (spec.md §4.6
// "split the union into its polygon parts").
func splitParts(geom orb.Geometry) []orb.Polygon {
	switch g := geom.(type) {
	case orb.Polygon:
		if len(g) == 0 {
			return nil
		}
		return []orb.Polygon{g}
	case orb.MultiPolygon:
		out := make([]orb.Polygon, 0, len(g))
		for _, p := range g {
			if len(p) > 0 {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}

// exteriorRing drops holes, keeping only poly's outer boundary (spec.md
// §4.6: "take the exterior ring of each resulting polygon part").
func exteriorRing(poly orb.Polygon) orb.Polygon {
	if len(poly) == 0 {
		return poly
	}
	return orb.Polygon{poly[0]}
}
