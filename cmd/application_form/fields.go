package main

import (
	"fmt"
	"io"

	"github.com/jonathan/job-application-form/internal/summary"
	"github.com/jonathan/job-application-form/internal/types"
	"github.com/jonathan/job-application-form/internal/validation"
	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the form fields shown for a position",
	Long:  "Prints the active fields for a position value (Developer, Designer, Manager, or empty for none selected).",
	RunE:  runFields,
}

var (
	fieldsPosition string
	fieldsFormat   string
)

func init() {
	fieldsCmd.Flags().StringVarP(&fieldsPosition, "position", "p", "", "Position value (empty means none selected)")
	fieldsCmd.Flags().StringVar(&fieldsFormat, "format", "", "Output format: text or json (default from config)")

	rootCmd.AddCommand(fieldsCmd)
}

type fieldInfo struct {
	Name  types.FieldName `json:"name"`
	Label string          `json:"label"`
}

func runFields(cmd *cobra.Command, _ []string) error {
	format := fieldsFormat
	if format == "" {
		format = appConfig.OutputFormat
	}
	return printFields(cmd.OutOrStdout(), format, types.Position(fieldsPosition))
}

func printFields(out io.Writer, format string, position types.Position) error {
	if position != types.PositionUnset && !position.Known() {
		logger.Warn("unknown position selects no conditional fields", "position", string(position))
	}

	active := validation.ActiveFieldsFor(position).Fields()
	switch format {
	case "json":
		infos := make([]fieldInfo, len(active))
		for i, f := range active {
			infos[i] = fieldInfo{Name: f, Label: f.Label()}
		}
		return summary.NewPrinter(out).WriteJSON(infos)
	case "text":
		for _, f := range active {
			if f == types.FieldSkills {
				_, _ = fmt.Fprintf(out, "%-24s %s", f, f.Label())
				for _, s := range types.AllSkills() {
					_, _ = fmt.Fprintf(out, " [%s]", s)
				}
				_, _ = fmt.Fprintln(out)
				continue
			}
			_, _ = fmt.Fprintf(out, "%-24s %s\n", f, f.Label())
		}
		return nil
	}
	return fmt.Errorf("invalid --format %q: expected text or json", format)
}
