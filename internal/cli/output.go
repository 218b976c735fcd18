package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/cultivar-dev/cultivar/internal/config"
	"github.com/cultivar-dev/cultivar/internal/tui/datatable"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// resolveOutputFormat returns flagValue, or the configured default when it is empty.
func resolveOutputFormat(flagValue string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flagValue))
	if format == "" {
		format = config.GetGlobalConfig().Output.DefaultFormat
	}
	switch format {
	case outputTable, outputJSON, outputYAML:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (supported: table, json, yaml)", format)
	}
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported structured format: %s", format)
	}
}

// renderPlainTable prints one page of result as aligned text followed by the
// pagination footer.
func renderPlainTable[T any](w io.Writer, columns []datatable.Column[T], result datatable.Result[T]) error {
	const tabPadding = 2
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	labels := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, col := range columns {
		labels[i] = col.Label()
		rules[i] = strings.Repeat("-", len([]rune(labels[i])))
	}
	fmt.Fprintln(tw, strings.Join(labels, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))

	if len(result.Rows) == 0 {
		fmt.Fprintln(tw, "No results.")
	}
	cells := make([]string, len(columns))
	for _, row := range result.Rows {
		for i, col := range columns {
			cells[i] = col.Render(row.Original)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	_, err := fmt.Fprintf(w, "\n%s\n", result.Footer())
	return err
}
