package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/xuri/excelize/v2"

	rankingdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/domain"
)

const sheetName = "Standings"

// sheet is a ranking flattened into display rows.
type sheet struct {
	title  string
	header []string
	rows   [][]any
}

func playerSheet(rt rankingdomain.RankingType, entries []rankingdomain.RankingEntry) sheet {
	s := sheet{
		title:  rt.String(),
		header: []string{"Rank", "Player", "Name", "Region", "Value", "Events"},
		rows:   make([][]any, 0, len(entries)),
	}
	for _, e := range entries {
		s.rows = append(s.rows, []any{e.Rank, e.PlayerID, e.PlayerName, e.RegionID, formatValue(rt, e.Value), e.Events})
	}
	return s
}

func countrySheet(entries []rankingdomain.CountryRankingEntry) sheet {
	s := sheet{
		title:  "country",
		header: []string{"Rank", "Region", "Value", "Players"},
		rows:   make([][]any, 0, len(entries)),
	}
	for _, e := range entries {
		s.rows = append(s.rows, []any{e.Rank, e.RegionID, formatValue(rankingdomain.AverageFinish, e.Value), e.Players})
	}
	return s
}

// formatValue renders a metric the way players read it: total times as
// m:ss.mmm, tallies as whole points, everything else to four places.
func formatValue(rt rankingdomain.RankingType, v float64) string {
	switch rt {
	case rankingdomain.TotalTime:
		return formatMillis(int64(v))
	case rankingdomain.TallyPoints:
		return strconv.FormatInt(int64(v), 10)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

func formatMillis(ms int64) string {
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%d:%02d.%03d", minutes, seconds, millis)
}

func renderTable(w io.Writer, s sheet) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(s.title)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(s.header))
	for i, h := range s.header {
		header[i] = h
	}
	t.AppendHeader(header)

	for _, r := range s.rows {
		t.AppendRow(table.Row(r))
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
	})
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d rows", len(s.rows))})
	t.Render()
}

// buildWorkbook lays the sheet out with the header on row 1.
func buildWorkbook(s sheet) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(s.header))
	for i, h := range s.header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		row := r
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return f, nil
}

func writeWorkbook(path string, s sheet) error {
	f, err := buildWorkbook(s)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
