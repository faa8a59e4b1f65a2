package render

import (
	"fmt"
	"strings"

	"github.com/geoclub/geodaily-services/internal/geosvc/models"
)

// gameHeaders and periodHeaders are the two column sets the bot renders.
var (
	gameHeaders   = []string{"Player", "Score", "5000s", "0s"}
	periodHeaders = []string{"Player", "Score", "# Games", "Avg Score", "5000s", "0s"}
)

// FormatInt renders an integer with a space between every group of three
// digits, e.g. 12345 -> "12 345".
func FormatInt(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, " ")
	if neg {
		out = "-" + out
	}
	return out
}

// Table renders a fixed-width table. Every cell must already be a display
// string. Column width is the widest of header and cells plus two; the
// first column is left-aligned, all others right-aligned. The output is the
// same byte for byte on every call with the same input.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	total := 0
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%-*s", widths[i], cell))
			} else {
				sb.WriteString(fmt.Sprintf("%*s", widths[i], cell))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sb.WriteString(strings.Repeat("-", total))
	sb.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}

	return sb.String()
}

// Leaderboard renders an aggregation result as a bold title, a blank line
// and the table inside a literal block, ready for the chat gateway.
func Leaderboard(title string, lb *models.Leaderboard) string {
	headers := periodHeaders
	if lb.Scope == models.ScopeGame {
		headers = gameHeaders
	}

	rows := make([][]string, 0, len(lb.Entries))
	for _, e := range lb.Entries {
		if lb.Scope == models.ScopeGame {
			rows = append(rows, []string{
				e.PlayerName,
				FormatInt(e.Total),
				FormatInt(e.Perfect),
				FormatInt(e.Missed),
			})
		} else {
			rows = append(rows, []string{
				e.PlayerName,
				FormatInt(e.Total),
				FormatInt(e.GamesPlayed),
				FormatInt(e.AvgScore),
				FormatInt(e.Perfect),
				FormatInt(e.Missed),
			})
		}
	}

	return "**" + title + "**\n\n```\n" + Table(headers, rows) + "```"
}
