// Package facade implements the public invocation surface (spec.md §6):
// roads_from_location, roads_from_bbox, pois_from_location, pois_from_bbox,
// shortest_path_from_location, shortest_path_from_bbox,
// isochrone_times_from_nodes, isochrone_distances_from_nodes. It wires
// RawIngest -> TopologyBuilder -> Graph -> (ShortestPath | Isochrone),
// grounded structurally on original_source/osmgt/compoments/roads.py's
// OsmGtRoads.from_location/from_bbox and core.py's OsmGtCore.from_location.
package facade

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"osmgt/internal/config"
	"osmgt/internal/logging"
	"osmgt/internal/osmapi"
)

// Facade bundles the HTTP clients, tuning config, and base logger every
// entry point needs. It is stateless beyond these long-lived collaborators
// (spec.md §6: "Stateless entry points"); Graph has no TTL and is rebuilt
// per call.
type Facade struct {
	Overpass  osmapi.OverpassClient
	Nominatim osmapi.NominatimClient
	Config    config.Config
	Logger    *zap.Logger
}

// New builds a Facade wired to the real Overpass/Nominatim HTTP endpoints.
func New(overpassEndpoint, nominatimEndpoint string, cfg config.Config, logger *zap.Logger) *Facade {
	return &Facade{
		Overpass:  osmapi.NewHTTPOverpassClient(overpassEndpoint, cfg),
		Nominatim: osmapi.NewHTTPNominatimClient(nominatimEndpoint, cfg),
		Config:    cfg,
		Logger:    logger,
	}
}

// requestLogger attaches a fresh request id to f.Logger, per spec.md §9's
// design note that the facade is the one place request-scoped logging
// fields are attached (grounded on internal/logging.WithRequest).
func (f *Facade) requestLogger() (*zap.Logger, string) {
	id := uuid.NewString()
	return logging.WithRequest(f.Logger, id), id
}
