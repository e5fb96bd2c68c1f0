// Package report renders ledger slices and totals as fixed-width text tables
// and single-line summaries for monospace chat display.
package report

import (
	"sort"
	"strings"
	"time"

	"tgexp/internal/core"
)

const dateLayout = "02.01.2006 15:04"

// Date formats a unix timestamp as DD.MM.YYYY HH:mm in local time.
func Date(ts int64) string {
	return time.Unix(ts, 0).Format(dateLayout)
}

// Table renders a markdown-style table without leading or trailing pipes,
// every column padded to its widest cell:
//
//	From  | Price | Comment
//	----- | ----- | -------
//	Alice | 12.50 | taxi
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(cell)
			if i < len(widths)-1 {
				b.WriteString(strings.Repeat(" ", w-len([]rune(cell))))
				b.WriteString(" | ")
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	delims := make([]string, len(widths))
	for i, w := range widths {
		delims[i] = strings.Repeat("-", w)
	}
	writeRow(delims)
	for _, row := range rows {
		writeRow(row)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// PositionsTable renders positions as From | Price | Comment rows.
func PositionsTable(positions []core.Position) string {
	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, []string{p.From, p.Price.String(), p.Comment})
	}
	return Table([]string{"From", "Price", "Comment"}, rows)
}

// TotalRow is one resolved line of a totals report.
type TotalRow struct {
	UserID int64
	Name   string
	Total  core.Money
}

// TotalsTable renders per-user totals as User | Total rows, the total suffixed
// with the currency glyph. Rows are ordered by user id so the same ledger
// always renders the same table.
func TotalsTable(rows []TotalRow, currency string) string {
	sorted := make([]TotalRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].UserID < sorted[j].UserID })

	cells := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		cells = append(cells, []string{r.Name, r.Total.String() + currency})
	}
	return Table([]string{"User", "Total"}, cells)
}

// PositionLine is the one-line confirmation sent after a successful entry.
func PositionLine(p core.Position, currency string) string {
	return "💰 " + p.Price.String() + currency + "    🏷️ " + p.Comment + "    👻 " + p.From
}

// WrapPre wraps preformatted text in an HTML pre block for rich-text chat
// clients that would otherwise collapse the table whitespace.
func WrapPre(s string) string {
	return "<pre>" + s + "</pre>"
}
