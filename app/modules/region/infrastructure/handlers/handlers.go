package regionhandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	regionservice "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/application"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/apierror"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/httputil"
)

// RegionHandlers serves the /regions scope.
type RegionHandlers struct {
	service regionservice.Service
	logger  *slog.Logger
}

// NewRegionHandlers creates the region HTTP handlers.
func NewRegionHandlers(service regionservice.Service, logger *slog.Logger) *RegionHandlers {
	return &RegionHandlers{service: service, logger: logger}
}

// Routes returns the router mounted at /regions.
func (h *RegionHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/ancestors/{regionID}", h.HandleAncestors)
	r.Get("/descendants/{regionID}", h.HandleDescendants)
	r.Get("/type_hashmap", h.HandleTypeHashmap)
	r.Get("/descendence_tree", h.HandleDescendenceTree)
	r.Get("/with_player_count", h.HandleWithPlayerCount)
	r.NotFound(httputil.PathsHandler(
		"/ancestors/:regionId",
		"/descendants/:regionId",
		"/type_hashmap",
		"/with_player_count",
		"/descendence_tree",
	))
	return r
}

func (h *RegionHandlers) HandleAncestors(w http.ResponseWriter, r *http.Request) {
	id, ok := h.regionID(w, r)
	if !ok {
		return
	}
	ids, err := h.service.Ancestors(r.Context(), id)
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, ids)
}

func (h *RegionHandlers) HandleDescendants(w http.ResponseWriter, r *http.Request) {
	id, ok := h.regionID(w, r)
	if !ok {
		return
	}
	ids, err := h.service.Descendants(r.Context(), id)
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, ids)
}

func (h *RegionHandlers) HandleTypeHashmap(w http.ResponseWriter, r *http.Request) {
	partition, err := h.service.TypePartition(r.Context())
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, partition)
}

func (h *RegionHandlers) HandleDescendenceTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.service.Tree(r.Context())
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, tree)
}

func (h *RegionHandlers) HandleWithPlayerCount(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.WithPlayerCount(r.Context())
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, rows)
}

func (h *RegionHandlers) regionID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	raw := chi.URLParam(r, "regionID")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		apierror.Write(w, r, h.logger, apierror.NotFound("Invalid region id", err))
		return 0, false
	}
	return int32(id), true
}
