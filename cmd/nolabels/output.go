package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"nolabels/internal/api"
	"nolabels/internal/language"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderQueryTable draws the results with one column per fallback language.
func renderQueryTable(resp api.QueryResponse) string {
	headers := make([]string, 0, len(resp.Fallback)+1)
	headers = append(headers, "Item")
	for _, lang := range resp.Fallback {
		headers = append(headers, fmt.Sprintf("Label %s (%s)", lang, language.DisplayName(lang)))
	}
	rows := make([][]string, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		cells := make([]string, 0, len(headers))
		cells = append(cells, row.Item)
		for _, lang := range resp.Fallback {
			cells = append(cells, row.Labels[lang])
		}
		rows = append(rows, cells)
	}
	caption := fmt.Sprintf("%d of %d items without a %s label", len(resp.Rows), resp.Checked, resp.Target)
	return renderTable(headers, rows, nil, caption)
}

// emptyQueryMessage explains a result without rows on a terminal.
func emptyQueryMessage(resp api.QueryResponse) string {
	if resp.Checked == 0 {
		return "No valid items to check."
	}
	return fmt.Sprintf("All %d items have a %s label.", resp.Checked, resp.Target)
}

// writeQueryTSV prints a header line followed by one tab-separated row per
// item. Tabs and newlines inside labels are replaced by spaces.
func writeQueryTSV(w io.Writer, resp api.QueryResponse) error {
	header := append([]string{"item"}, resp.Fallback...)
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, row := range resp.Rows {
		cells := make([]string, 0, len(header))
		cells = append(cells, row.Item)
		for _, lang := range resp.Fallback {
			cells = append(cells, tsvEscaper.Replace(row.Labels[lang]))
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return nil
}

var tsvEscaper = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")
