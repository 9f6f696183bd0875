package topology

import (
	"osmgt/model"
)

// expandDirections implements Phase D: vehicle mode always emits a forward
// fragment and conditionally a reversed backward one; pedestrian mode
// passes fragments through unchanged (spec.md §4.3 Phase D).
func expandDirections(fragments []model.LineRecord, mode model.TransportMode) []model.LineRecord {
	if mode == model.Pedestrian {
		return fragments
	}

	var out []model.LineRecord
	for _, f := range fragments {
		forward := f
		forward.TopoUUID = f.TopoUUID + "_forward"
		out = append(out, forward)

		if isOneWay(f) {
			continue
		}

		backward := f
		backward.TopoUUID = f.TopoUUID + "_backward"
		backward.Geometry = f.Geometry.Reversed()
		out = append(out, backward)
	}
	return out
}

func isOneWay(f model.LineRecord) bool {
	switch f.Tags["junction"] {
	case "roundabout", "jughandle":
		return true
	}
	return f.Tags["oneway"] == "yes"
}
