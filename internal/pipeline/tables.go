package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tableRowPattern    = regexp.MustCompile(`^\s*\|.*\|\s*$`)
	tableSeparatorCell = regexp.MustCompile(`^:?-+:?$`)
)

// rewriteTables recognizes pipe-delimited tables and renders them per the
// table format. Recognition is line-wise: a run of consecutive pipe rows
// whose second row is a ----style separator is a table. The run is parsed
// into explicit row/cell slices before rendering; the separator row is a
// recognition artifact and never appears in the data. Pipe runs without a
// separator pass through unchanged.
func rewriteTables(content, format string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		run := tableRunLength(lines, i)
		if run == 0 {
			out = append(out, lines[i])
			i++
			continue
		}

		rows := parseTableRows(lines[i : i+run])
		switch format {
		case TableGrid:
			out = append(out, renderTableGrid(rows)...)
		case TableNone:
			// Table omitted entirely.
		default:
			out = append(out, renderTableSimple(rows)...)
		}
		i += run
	}

	return strings.Join(out, "\n")
}

// tableRunLength returns the number of consecutive table-row lines starting
// at start, or 0 when the run does not form a table (fewer than two rows, or
// the second row is not a separator).
func tableRunLength(lines []string, start int) int {
	n := 0
	for start+n < len(lines) && tableRowPattern.MatchString(lines[start+n]) {
		n++
	}
	if n < 2 || !isSeparatorRow(lines[start+1]) {
		return 0
	}
	return n
}

// isSeparatorRow reports whether every cell of the row consists of dashes
// with optional alignment colons.
func isSeparatorRow(line string) bool {
	cells := parseTableRow(line)
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if !tableSeparatorCell.MatchString(cell) {
			return false
		}
	}
	return true
}

// parseTableRow splits a pipe-delimited line into trimmed cells, dropping
// the outer pipes.
func parseTableRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// parseTableRows converts a recognized run into row/cell slices, skipping
// the separator row (index 1).
func parseTableRows(run []string) [][]string {
	rows := make([][]string, 0, len(run)-1)
	for i, line := range run {
		if i == 1 {
			continue
		}
		rows = append(rows, parseTableRow(line))
	}
	return rows
}

// renderTableSimple joins cells with tabs, one line per row.
func renderTableSimple(rows [][]string) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = strings.Join(row, "\t")
	}
	return out
}

// renderTableGrid renders rows in a bordered layout: a +---+ line around the
// header and body, cells space-padded and joined with " | ".
func renderTableGrid(rows [][]string) []string {
	widths := columnWidths(rows)
	border := gridBorder(widths)

	out := []string{border, gridRow(rows[0], widths), border}
	for _, row := range rows[1:] {
		out = append(out, gridRow(row, widths))
	}
	if len(rows) > 1 {
		out = append(out, border)
	}
	return out
}

// columnWidths returns the rune-count width of each column across all rows.
// Ragged rows are tolerated; missing cells count as empty.
func columnWidths(rows [][]string) []int {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// gridBorder builds the +---+ separator line for the given column widths.
func gridBorder(widths []int) string {
	var b strings.Builder
	b.WriteString("+")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("+")
	}
	return b.String()
}

// gridRow renders one row, padding each cell to its column width.
func gridRow(cells []string, widths []int) string {
	padded := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = cell + strings.Repeat(" ", w-utf8.RuneCountInString(cell))
	}
	return "| " + strings.Join(padded, " | ") + " |"
}
