package topology

import (
	"strconv"

	"osmgt/geoprim"
	"osmgt/model"
)

// refineShapes implements Phase E: each fragment's geometry is midpoint
// refined at the given level, then sliced into consecutive 2-point
// LineStrings with sub-indices appended to the id. Used exclusively by the
// isochrone pipeline (interpolate_lines=true) for finer buffered polygons;
// routing semantics are unaffected because sub-fragments remain chained
// end-to-end (spec.md §4.3 Phase E).
func refineShapes(fragments []model.LineRecord, level int) []model.LineRecord {
	var out []model.LineRecord
	for _, f := range fragments {
		refined := geoprim.Refine(f.Geometry, level)
		for i := 0; i < len(refined)-1; i++ {
			seg := f
			seg.Geometry = geoprim.LineString{refined[i], refined[i+1]}
			seg.TopoUUID = f.TopoUUID + "_" + strconv.Itoa(i)
			out = append(out, seg)
		}
	}
	return out
}
