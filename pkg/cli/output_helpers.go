package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// maxCellWidth truncates long table cells such as e-mail addresses.
const maxCellWidth = 40

// getOutputFormat returns the effective output format from the root command's persistent flags.
func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("output")
	return v
}

func isQuiet(cmd *cobra.Command) bool {
	v, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return v
}

func validateOutputFormat(output string) error {
	if output != "" && output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable writes rows under upper-case column headers. Widths are
// measured in terminal cells so Turkish and other non-ASCII names align.
func printTable(w io.Writer, columns []string, rows [][]string) {
	widths := make([]int, len(columns))
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = strings.ToUpper(c)
		widths[i] = runewidth.StringWidth(header[i])
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(columns))
		for i := range columns {
			if i >= len(row) {
				continue
			}
			v := runewidth.Truncate(row[i], maxCellWidth, "…")
			cells[r][i] = v
			if n := runewidth.StringWidth(v); n > widths[i] {
				widths[i] = n
			}
		}
	}

	writeRow := func(values []string) {
		parts := make([]string, len(values))
		for i, v := range values {
			if i == len(values)-1 {
				parts[i] = v
				continue
			}
			parts[i] = runewidth.FillRight(v, widths[i])
		}
		_, _ = fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
	writeRow(header)
	for _, row := range cells {
		writeRow(row)
	}
}

// printDetail writes one "KEY: value" line per field, in order.
func printDetail(w io.Writer, fields [][2]string) {
	width := 0
	for _, f := range fields {
		if n := runewidth.StringWidth(f[0]); n > width {
			width = n
		}
	}
	for _, f := range fields {
		_, _ = fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(strings.ToUpper(f[0])+":", width+1), f[1])
	}
}
