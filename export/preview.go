package export

import (
	"fmt"
	"io"
	"strings"
)

const previewCellWidth = 30

// RenderPreview prints the rows left-justified in fixed-width columns.
func RenderPreview(w io.Writer, p Preview) {
	fmt.Fprintln(w, "\n Prévia dos dados salvos:")

	for _, row := range p.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprintf("%-*s", previewCellWidth, cell)
		}
		fmt.Fprintln(w, strings.Join(cells, " | "))
	}

	if p.SkippedBlank {
		fmt.Fprintln(w, "(Linhas vazias foram ignoradas)")
	}
}
