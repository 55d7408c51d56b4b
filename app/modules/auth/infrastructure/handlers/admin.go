package authhandlers

import (
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/timetrial-standings/pkg/httputil"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability/attr"
)

// CacheInvalidator names a reference-data cache an admin may clear.
type CacheInvalidator struct {
	Name       string
	Invalidate func()
}

// InvalidateResponse lists the caches that were cleared.
type InvalidateResponse struct {
	Invalidated []string `json:"invalidated"`
}

// AdminHandlers serves the /admin scope.
type AdminHandlers struct {
	caches []CacheInvalidator
	logger *slog.Logger
}

// NewAdminHandlers creates the admin handlers over caches.
func NewAdminHandlers(logger *slog.Logger, caches ...CacheInvalidator) *AdminHandlers {
	return &AdminHandlers{caches: caches, logger: logger}
}

func (h *AdminHandlers) HandleInvalidateCaches(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.caches))
	for _, c := range h.caches {
		c.Invalidate()
		names = append(names, c.Name)
	}

	claims := ClaimsFromContext(r.Context())
	h.logger.InfoContext(r.Context(), "Reference caches invalidated",
		attr.ExtractCorrelationID(r.Context()),
		attr.Any("caches", names),
		attr.Int32("user_id", claims.UserID),
	)
	httputil.WriteJSON(w, InvalidateResponse{Invalidated: names})
}
