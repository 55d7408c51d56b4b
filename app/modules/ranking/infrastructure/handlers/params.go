package rankinghandlers

import (
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"

	rankingservice "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/application"
	rankingdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/domain"
	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/clock"
)

const worldRegionID int32 = 1

// ParamParser resolves query strings into ranking parameters. Malformed
// values fall back to their defaults instead of failing the request.
type ParamParser struct {
	clock  clock.Clock
	logger *slog.Logger
	when   *when.Parser
}

// NewParamParser creates a ParamParser that resolves relative dates against c.
func NewParamParser(c clock.Clock, logger *slog.Logger) *ParamParser {
	if c == nil {
		c = clock.Real{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	w := when.New(nil)
	w.Add(en.All...)
	return &ParamParser{clock: c, logger: logger, when: w}
}

// Parse reads cat, lap, dat, reg, rty and lim.
func (p *ParamParser) Parse(q url.Values) rankingservice.Params {
	params := rankingservice.Params{
		Category:   rankingdomain.NonShortcut,
		RegionID:   worldRegionID,
		RegionType: regiondomain.Country,
		AsOf:       p.AsOf(q.Get("dat")),
	}

	if v, err := strconv.Atoi(q.Get("cat")); err == nil {
		params.Category = rankingdomain.CategoryFromCode(v)
	}

	if q.Has("lap") {
		lap := q.Get("lap") == "1"
		params.Lap = &lap
	}

	if v, err := strconv.ParseInt(q.Get("reg"), 10, 32); err == nil {
		params.RegionID = int32(v)
	}

	if v, err := strconv.Atoi(q.Get("rty")); err == nil {
		if rt, ok := regiondomain.RegionTypeFromCode(v); ok {
			params.RegionType = rt
		}
	}

	if v, err := strconv.Atoi(q.Get("lim")); err == nil && v > 0 {
		params.Limit = v
	}

	return params
}

// AsOf resolves dat: an ISO date, then a relative English phrase such as
// "yesterday" or "last friday", then today.
func (p *ParamParser) AsOf(raw string) time.Time {
	now := p.clock.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return today
	}

	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t
	}

	r, err := p.when.Parse(strings.ToLower(raw), now)
	if err != nil {
		p.logger.Warn("Failed to parse relative date", slog.String("input", raw), slog.Any("error", err))
	}
	if r != nil {
		t := r.Time.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}

	return today
}
