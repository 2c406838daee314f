// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/danielhkuo/ridepolls/models"
)

const barWidth = 20

// View is the display state of a Card. Options is set while voting, Bars
// once results are shown.
type View struct {
	PollID             string             `json:"poll_id"`
	Question           string             `json:"question"`
	State              State              `json:"state"`
	Disabled           bool               `json:"disabled"`
	Options            []models.Option    `json:"options,omitempty"`
	Bars               []models.ResultBar `json:"bars,omitempty"`
	TotalVotes         int64              `json:"total_votes"`
	Selected           string             `json:"selected,omitempty"`
	ResultsUnavailable bool               `json:"results_unavailable,omitempty"`
}

// Render writes v as plain text for terminals
func Render(w io.Writer, v View) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", v.Question)

	switch {
	case v.State == StateVoting && len(v.Options) == 0:
		b.WriteString("  (no options)\n")
	case v.State == StateVoting:
		for i, o := range v.Options {
			fmt.Fprintf(&b, "  %d) %s\n", i+1, o.Label)
		}
	case v.ResultsUnavailable && v.Selected != "":
		b.WriteString("  Vote recorded. Results are unavailable right now.\n")
	case v.ResultsUnavailable:
		b.WriteString("  Results are unavailable right now.\n")
	default:
		width := 0
		for _, bar := range v.Bars {
			width = max(width, len(bar.Label))
		}
		for _, bar := range v.Bars {
			mark := " "
			if bar.OptionID == v.Selected {
				mark = "*"
			}
			filled := bar.Percent * barWidth / 100
			fmt.Fprintf(&b, " %s %-*s %s%s %3d%% (%d)\n",
				mark, width, bar.Label,
				strings.Repeat("#", filled), strings.Repeat(".", barWidth-filled),
				bar.Percent, bar.Votes)
		}
		fmt.Fprintf(&b, "  %d %s\n", v.TotalVotes, plural(v.TotalVotes, "vote", "votes"))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
