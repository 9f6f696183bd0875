// Package osmapi specifies the OSM Overpass and Nominatim clients at their
// interface (spec.md §1: "out of scope... specified only at their
// interface in §6"). Query builders and filter strings are grounded on
// original_source/osmgt/core/global_values.py and osmgt/compoments/core.py.
package osmapi

import (
	"fmt"
	"strings"

	"osmgt/model"
)

// locationOsmIDOffset converts a Nominatim osm_id into the Overpass area id
// for administrative boundaries, grounded on core.py's
// location_osm_default_id_computing ("osm_id + 3_600_000_000  # this is
// it...").
const locationOsmIDOffset = 3_600_000_000

func LocationAreaID(nominatimOsmID int64) int64 {
	return nominatimOsmID + locationOsmIDOffset
}

// vehicleHighways and pedestrianHighways mirror spec.md §6's filter lists.
var vehicleHighways = []string{
	"motorway", "trunk", "primary", "secondary", "tertiary", "unclassified",
	"residential", "pedestrian", "motorway_link", "trunk_link", "primary_link",
	"secondary_link", "tertiary_link", "living_street", "service", "track",
	"bus_guideway", "escape", "raceway", "road", "bridleway", "corridor", "path",
}

var pedestrianHighways = append(append([]string{}, vehicleHighways...),
	"cycleway", "footway", "steps",
)

// poiAmenities mirrors original_source/osmgt/core/global_values.py's
// poi_query amenity enumeration, carried over verbatim rather than
// abbreviated (SPEC_FULL.md §6).
var poiAmenities = []string{
	"bar", "bbq", "biergarten", "cafe", "drinking_water", "fast_food",
	"food_court", "ice_cream", "pub", "restaurant", "college", "driving_school",
	"kindergarten", "language_school", "library", "toy_library", "music_school",
	"school", "university", "bicycle_parking", "bicycle_repair_station",
	"bicycle_rental", "boat_rental", "boat_sharing", "bus_station", "car_rental",
	"car_sharing", "car_wash", "vehicle_inspection", "charging_station",
	"ferry_terminal", "fuel", "grit_bin", "motorcycle_parking", "parking",
	"parking_entrance", "parking_space", "taxi", "atm", "bank", "bureau_de_change",
	"baby_hatch", "clinic", "dentist", "doctors", "hospital", "nursing_home",
	"pharmacy", "social_facility", "veterinary", "arts_centre", "brothel",
	"casino", "cinema", "community_centre", "fountain", "gambling", "nightclub",
	"planetarium", "public_bookcase", "social_centre", "stripclub", "studio",
	"swingerclub", "theatre", "animal_boarding", "animal_shelter", "baking_oven",
	"bench", "childcare", "clock", "conference_centre", "courthouse", "crematorium",
	"dive_centre", "embassy", "fire_station", "firepit", "grave_yard", "gym",
	"hunting_stand", "internet_cafe", "kitchen", "marketplace", "monastery",
	"photo_booth", "place_of_worship", "police", "post_box", "post_depot",
	"post_office", "prison", "public_bath", "ranger_station", "recycling",
	"refugee_site", "sanitary_dump_station", "sauna", "shelter", "shower",
	"telephone", "toilets", "townhall", "vending_machine", "waste_basket",
	"waste_disposal", "waste_transfer_station",
}

// VehicleQuery returns the Overpass query fragment for the vehicle transport
// mode: a directed road network, grounded on spec.md §6.
func VehicleQuery(areaOrBBox string) string {
	return highwayQuery(areaOrBBox, vehicleHighways)
}

// PedestrianQuery returns the Overpass query fragment for the pedestrian
// transport mode: an undirected road network including footways.
func PedestrianQuery(areaOrBBox string) string {
	return highwayQuery(areaOrBBox, pedestrianHighways)
}

func highwayQuery(areaOrBBox string, highways []string) string {
	return fmt.Sprintf(
		`way[highway~"^(%s)$"][!"area"](%s);`,
		strings.Join(highways, "|"), areaOrBBox,
	)
}

// QueryForMode returns the network query for a transport mode, grounded on
// original_source/osmgt/core/global_values.py's network_queries dict.
func QueryForMode(mode model.TransportMode, areaOrBBox string) (string, error) {
	switch mode {
	case model.Vehicle:
		return VehicleQuery(areaOrBBox), nil
	case model.Pedestrian:
		return PedestrianQuery(areaOrBBox), nil
	default:
		return "", fmt.Errorf("osmapi: unknown transport mode %q", mode)
	}
}

// POIQuery returns the Overpass query fragment for POIs: a long amenity
// enumeration plus a catch-all shop filter, grounded on spec.md §6 and
// global_values.py's poi_query.
func POIQuery(areaOrBBox string) string {
	return fmt.Sprintf(
		`node[amenity~"^(%s)$"](%s);node[shop~"."](%s);`,
		strings.Join(poiAmenities, "|"), areaOrBBox, areaOrBBox,
	)
}

// WaterQuery returns the Overpass query fragment for water-area features,
// grounded on original_source/osmgt/processing/isochrone.py's
// __get_water_area_from_osm.
func WaterQuery(areaOrBBox string) string {
	return fmt.Sprintf(
		`way["natural"="water"](%s);way["waterway"](%s);relation["natural"="water"](%s);`,
		areaOrBBox, areaOrBBox, areaOrBBox,
	)
}

// FromLocationQueryBuilder wraps query for an area id lookup, grounded on
// core.py's from_location_name_query_builder.
func FromLocationQueryBuilder(locationAreaID int64, query string) string {
	return fmt.Sprintf(`[out:json];area(%d)->.searchArea;(%s);out geom;(._;>;);`, locationAreaID, query)
}

// BBoxString renders a (south, west, north, east) bbox the way Overpass QL
// expects it inside a filter's parentheses.
func BBoxString(bbox [4]float64) string {
	return fmt.Sprintf("%v, %v, %v, %v", bbox[0], bbox[1], bbox[2], bbox[3])
}

// FromBBoxQueryBuilder wraps an already-bbox-filtered query fragment into a
// full Overpass request, grounded on core.py's from_bbox_query_builder.
func FromBBoxQueryBuilder(query string) string {
	return fmt.Sprintf(`[out:json];(%s);out geom;(._;>;);`, query)
}
