package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/redmonkez12/carbon-tracker/internal/emission"
)

// Field is one labelled line of command output
type Field struct {
	Label string
	Value string
}

// PrintFactors renders the emission factor table
func PrintFactors(w io.Writer, factors []emission.Factor) {
	rows := make([][]string, 0, len(factors))
	for _, f := range factors {
		rows = append(rows, []string{f.Name, strconv.FormatFloat(f.Factor, 'f', -1, 64), f.Unit})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ACTIVITY", "FACTOR", "UNIT").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
}

// PrintFields prints a title followed by aligned label/value lines
func PrintFields(w io.Writer, title string, fields []Field) {
	fmt.Fprintln(w, titleStyle.Render(title))
	for _, f := range fields {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-10s", f.Label+":")), f.Value)
	}
}

func PrintSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render(msg))
}

func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render("Error: "+msg))
}
