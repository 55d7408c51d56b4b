// Command standings prints a ranking from the database as a table or exports
// it to an xlsx workbook.
package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking"
	rankingdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/domain"
	rankinghandlers "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/infrastructure/handlers"
	"github.com/Black-And-White-Club/timetrial-standings/app/modules/region"
	"github.com/Black-And-White-Club/timetrial-standings/config"
	"github.com/Black-And-White-Club/timetrial-standings/db/bundb"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/clock"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/refcache"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cliApp := &cli.App{
		Name:  "standings",
		Usage: "print or export player and country rankings",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
			&cli.IntFlag{Name: "cat", Usage: "category code (0 non-shortcut, 1 shortcut, 2 unrestricted)"},
			&cli.StringFlag{Name: "lap", Usage: "1 for lap times, 0 for course times, empty for both"},
			&cli.StringFlag{Name: "dat", Usage: "as-of date, YYYY-MM-DD or a phrase like \"last friday\""},
			&cli.IntFlag{Name: "reg", Value: 1, Usage: "region id to scope the ranking to"},
			&cli.StringFlag{Name: "xlsx", Usage: "write the ranking to this workbook instead of stdout"},
		},
		Commands: []*cli.Command{
			{
				Name:      "players",
				Usage:     "rank players by a metric",
				ArgsUsage: "<totaltime|prwr|tally|af|arr>",
				Action:    playersAction,
			},
			{
				Name:  "country",
				Usage: "rank regions by the mean average finish of their players",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "rty", Value: 2, Usage: "region type code to group by"},
					&cli.IntFlag{Name: "lim", Usage: "maximum rows to print, 0 for no limit"},
				},
				Action: countryAction,
			},
		},
	}

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func parseRankingType(name string) (rankingdomain.RankingType, error) {
	for _, rt := range rankingdomain.AllRankingTypes {
		if rt.String() == name {
			return rt, nil
		}
	}
	return 0, fmt.Errorf("unknown ranking type %q", name)
}

// queryFromFlags renders the flags as the query string the HTTP API accepts so
// both surfaces share one parser.
func queryFromFlags(c *cli.Context) url.Values {
	q := url.Values{}
	q.Set("cat", strconv.Itoa(c.Int("cat")))
	q.Set("reg", strconv.Itoa(c.Int("reg")))
	if v := c.String("lap"); v != "" {
		q.Set("lap", v)
	}
	if v := c.String("dat"); v != "" {
		q.Set("dat", v)
	}
	if c.IsSet("rty") {
		q.Set("rty", strconv.Itoa(c.Int("rty")))
	}
	if c.IsSet("lim") {
		q.Set("lim", strconv.Itoa(c.Int("lim")))
	}
	return q
}

type env struct {
	ranking *ranking.Module
	parser  *rankinghandlers.ParamParser
	close   func()
}

func setup(c *cli.Context) (*env, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	obs := observability.NewNop()
	logger := observability.NewLogger(cfg.Observability.Environment, cfg.Observability.LogLevel)
	obs.Provider.Logger = logger

	dbService, err := bundb.NewBunDBService(c.Context, cfg.Postgres, logger)
	if err != nil {
		return nil, err
	}
	db := dbService.GetDB()

	cacheMetrics, err := refcache.NewMetrics(obs.Registry.Prometheus)
	if err != nil {
		_ = dbService.Close()
		return nil, err
	}
	regionModule, err := region.NewModule(c.Context, obs, db, cacheMetrics, nil)
	if err != nil {
		_ = dbService.Close()
		return nil, err
	}
	rankingModule, err := ranking.NewModule(c.Context, obs, db, regionModule.GetService(), clock.Real{}, nil)
	if err != nil {
		_ = dbService.Close()
		return nil, err
	}

	return &env{
		ranking: rankingModule,
		parser:  rankinghandlers.NewParamParser(clock.Real{}, logger),
		close:   func() { _ = dbService.Close() },
	}, nil
}

func playersAction(c *cli.Context) error {
	rt, err := parseRankingType(c.Args().First())
	if err != nil {
		return err
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	entries, err := e.ranking.GetService().Rankings(c.Context, rt, e.parser.Parse(queryFromFlags(c)))
	if err != nil {
		return err
	}

	sheet := playerSheet(rt, entries)
	if path := c.String("xlsx"); path != "" {
		return writeWorkbook(path, sheet)
	}
	renderTable(os.Stdout, sheet)
	return nil
}

func countryAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	entries, err := e.ranking.GetService().CountryRankings(c.Context, e.parser.Parse(queryFromFlags(c)))
	if err != nil {
		return err
	}

	sheet := countrySheet(entries)
	if path := c.String("xlsx"); path != "" {
		return writeWorkbook(path, sheet)
	}
	renderTable(os.Stdout, sheet)
	return nil
}
