package topology

import (
	"strconv"

	"osmgt/geoprim"
	"osmgt/model"
)

// countCoordinates computes the multiset of all coordinates across all line
// geometries. Equality is exact float64 equality (spec.md §9 design note),
// grounded on original_source's find_intersections_from_ways (a Counter).
func countCoordinates(lines []model.LineRecord) map[geoprim.Coordinate]int {
	counts := make(map[geoprim.Coordinate]int)
	for _, l := range lines {
		for _, c := range l.Geometry {
			counts[c]++
		}
	}
	return counts
}

// splitAtIntersections implements Phase B (detection, via counts) and
// Phase C (splitting): interior vertices with multiplicity >= 2 become
// split points. Grounded on network_topology.py's _topology_builder, which
// replaces each such vertex with a (v, SENTINEL) pair and splits at every
// SENTINEL; here expressed directly as segment accumulation since Go has
// no equivalent to more_itertools.split_at worth importing a dependency for.
func splitAtIntersections(lines []model.LineRecord, counts map[geoprim.Coordinate]int) []model.LineRecord {
	var out []model.LineRecord
	for _, l := range lines {
		segments := splitLineAtIntersections(l.Geometry, counts)
		if len(segments) == 1 {
			l.Topology = model.TopologyUnchanged
			out = append(out, l)
			continue
		}
		for k, seg := range segments {
			frag := l
			frag.Geometry = seg
			frag.Topology = model.TopologySplit
			frag.TopoUUID = l.TopoUUID + "_" + strconv.Itoa(k)
			out = append(out, frag)
		}
	}
	return out
}

func splitLineAtIntersections(geometry geoprim.LineString, counts map[geoprim.Coordinate]int) []geoprim.LineString {
	if len(geometry) < 2 {
		return []geoprim.LineString{geometry}
	}

	var segments []geoprim.LineString
	current := geoprim.LineString{geometry[0]}
	for i := 1; i < len(geometry)-1; i++ {
		v := geometry[i]
		current = append(current, v)
		if counts[v] >= 2 {
			segments = append(segments, current)
			current = geoprim.LineString{v}
		}
	}
	current = append(current, geometry[len(geometry)-1])
	segments = append(segments, current)
	return segments
}
