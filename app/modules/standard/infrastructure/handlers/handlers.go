package standardhandlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	standardservice "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/application"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/apierror"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/httputil"
)

// StandardHandlers serves the /standard_levels scope.
type StandardHandlers struct {
	service standardservice.Service
	logger  *slog.Logger
}

// NewStandardHandlers creates the standard level HTTP handlers.
func NewStandardHandlers(service standardservice.Service, logger *slog.Logger) *StandardHandlers {
	return &StandardHandlers{service: service, logger: logger}
}

// Routes returns the router mounted at /standard_levels.
func (h *StandardHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/legacy", h.HandleLegacy)
	r.NotFound(httputil.PathsHandler("/legacy"))
	return r
}

func (h *StandardHandlers) HandleLegacy(w http.ResponseWriter, r *http.Request) {
	levels, err := h.service.Legacy(r.Context())
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, levels)
}
