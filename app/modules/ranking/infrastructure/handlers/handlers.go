package rankinghandlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	rankingservice "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/application"
	rankingdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/domain"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/apierror"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/httputil"
)

// metricRoutes maps each player ranking path onto its metric.
var metricRoutes = []struct {
	path string
	rt   rankingdomain.RankingType
}{
	{"/totaltime", rankingdomain.TotalTime},
	{"/prwr", rankingdomain.PersonalRecordWorldRecord},
	{"/tally", rankingdomain.TallyPoints},
	{"/af", rankingdomain.AverageFinish},
	{"/arr", rankingdomain.AverageRankRating},
}

// RankingHandlers serves the /rankings scope.
type RankingHandlers struct {
	service rankingservice.Service
	params  *ParamParser
	logger  *slog.Logger
}

// NewRankingHandlers creates the ranking HTTP handlers.
func NewRankingHandlers(service rankingservice.Service, params *ParamParser, logger *slog.Logger) *RankingHandlers {
	return &RankingHandlers{service: service, params: params, logger: logger}
}

// Routes returns the router mounted at /rankings.
func (h *RankingHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	for _, route := range metricRoutes {
		r.Get(route.path, h.HandleRankings(route.rt))
	}
	r.Get("/country", h.HandleCountryRankings)
	r.NotFound(httputil.PathsHandler("/af", "/arr", "/tally", "/prwr", "/totaltime", "/country"))
	return r
}

// HandleRankings serves the player ranking for rt.
func (h *RankingHandlers) HandleRankings(rt rankingdomain.RankingType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := h.params.Parse(r.URL.Query())
		entries, err := h.service.Rankings(r.Context(), rt, params)
		if err != nil {
			apierror.Write(w, r, h.logger, err)
			return
		}
		httputil.WriteJSON(w, entries)
	}
}

func (h *RankingHandlers) HandleCountryRankings(w http.ResponseWriter, r *http.Request) {
	params := h.params.Parse(r.URL.Query())
	entries, err := h.service.CountryRankings(r.Context(), params)
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, entries)
}
