package experiments

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Summary aggregates a batch from the point of view of seat 0.
type Summary struct {
	Games      int
	Wins       int
	Unfinished int
	Moves      int
	Searches   int
	Bootstrap  int
	Fallbacks  int
	Episodes   int
	Duration   time.Duration
}

func Summarize(result Result) Summary {
	s := Summary{Games: len(result.Games)}
	for _, g := range result.Games {
		switch g.Winner {
		case -1:
			s.Unfinished++
		case 0:
			s.Wins++
		}
	}
	for _, m := range result.Moves {
		if m.Player != 0 {
			continue
		}
		s.Moves++
		switch {
		case m.Fallback:
			s.Fallbacks++
		case m.Bootstrap:
			s.Bootstrap++
		case m.Episodes > 0:
			s.Searches++
			s.Episodes += m.Episodes
			s.Duration += m.Duration
		}
	}
	return s
}

// Render prints one row per game and a footer with the seat 0 totals.
func Render(out io.Writer, result Result) {
	s := Summarize(result)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("Detective (seat 0) results")
	t.AppendHeader(table.Row{"#", "Game", "Winner", "Scores", "Moves", "Duration"})
	for i, g := range result.Games {
		winner := "-"
		if g.Winner >= 0 {
			winner = fmt.Sprint(g.Winner)
		}
		t.AppendRow(table.Row{i + 1, g.ID, winner, fmt.Sprint(g.Scores), g.TotalMoves, g.Duration.Round(time.Millisecond)})
	}
	t.AppendSeparator()

	avgEpisodes, avgSearch := 0, time.Duration(0)
	if s.Searches > 0 {
		avgEpisodes = s.Episodes / s.Searches
		avgSearch = s.Duration / time.Duration(s.Searches)
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("wins %d/%d", s.Wins, s.Games), fmt.Sprintf("unfinished %d", s.Unfinished),
		fmt.Sprintf("searches %d (bootstrap %d, fallback %d)", s.Searches, s.Bootstrap, s.Fallbacks),
		fmt.Sprintf("avg episodes %d", avgEpisodes), avgSearch.Round(time.Microsecond)})

	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
	})
	t.Render()
}
