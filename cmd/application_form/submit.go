package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jonathan/job-application-form/internal/config"
	"github.com/jonathan/job-application-form/internal/session"
	"github.com/jonathan/job-application-form/internal/summary"
	"github.com/jonathan/job-application-form/internal/types"
	"github.com/jonathan/job-application-form/internal/validation"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Validate and submit one or more application drafts",
	Long: `Loads each draft file, applies --set edits on top, and submits it.
Accepted applications print their summary; rejected ones print the failing fields.
Each draft is an independent session. Exits non-zero if any draft is not accepted.`,
	RunE: runSubmit,
}

var (
	submitDrafts []string
	submitSets   []string
	submitOutput string
	submitFormat string
)

func init() {
	submitCmd.Flags().StringArrayVarP(&submitDrafts, "draft", "d", nil, "Path to draft JSON file (repeatable; empty draft if omitted)")
	submitCmd.Flags().StringArrayVar(&submitSets, "set", nil, "Edit applied after loading, as name=value (repeatable, e.g. position=Designer, CSS=true)")
	submitCmd.Flags().StringVarP(&submitOutput, "out", "o", "", "Path to write submission results JSON (optional)")
	submitCmd.Flags().StringVar(&submitFormat, "format", "", "Output format: text or json (default from config)")

	rootCmd.AddCommand(submitCmd)
}

// submitResult is the outcome of one session.
type submitResult struct {
	Source    string             `json:"source"`
	SessionID string             `json:"session_id"`
	State     types.SessionState `json:"state"`
	Errors    types.ErrorMap     `json:"errors,omitempty"`
	Summary   *summary.Summary   `json:"summary,omitempty"`
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	format := submitFormat
	if format == "" {
		format = appConfig.OutputFormat
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid --format %q: expected text or json", format)
	}

	edits, err := parseEdits(submitSets)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	results, err := submitAll(ctx, appConfig, logger, submitDrafts, edits)
	if err != nil {
		return err
	}

	if submitOutput != "" {
		if err := writeResults(submitOutput, results); err != nil {
			return err
		}
	}

	if err := printResults(cmd.OutOrStdout(), format, results); err != nil {
		return err
	}

	rejected := 0
	for _, r := range results {
		if r.State != types.SessionAccepted {
			rejected++
		}
	}
	if rejected > 0 {
		return fmt.Errorf("%d application(s) not accepted", rejected)
	}
	return nil
}

// submitAll runs one session per draft path concurrently. An empty path
// list submits a single empty draft. Results keep the order of paths.
func submitAll(ctx context.Context, cfg config.Config, logger *slog.Logger, paths []string, edits []edit) ([]submitResult, error) {
	engine, err := validation.New()
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []string{""}
	}
	results := make([]submitResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := submitOne(cfg, engine, logger, path, edits)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func submitOne(cfg config.Config, engine *validation.Engine, logger *slog.Logger, path string, edits []edit) (submitResult, error) {
	var draft types.ApplicationDraft
	source := "(empty draft)"
	if path != "" {
		loaded, err := loadDraft(cfg, path)
		if err != nil {
			return submitResult{}, err
		}
		draft = loaded
		source = path
	}
	draft = replay(draft, edits)

	c := session.NewController(engine, session.WithLogger(logger.With(slog.String("source", source))))
	state, err := c.Submit(draft)
	if err != nil {
		return submitResult{}, fmt.Errorf("failed to submit %s: %w", source, err)
	}

	r := submitResult{
		Source:    source,
		SessionID: c.ID().String(),
		State:     state,
	}
	if state == types.SessionAccepted {
		s, err := summary.FromSession(c)
		if err != nil {
			return submitResult{}, err
		}
		r.Summary = &s
	} else {
		r.Errors = c.Errors()
	}
	return r, nil
}

func printResults(out io.Writer, format string, results []submitResult) error {
	p := summary.NewPrinter(out)
	if format == "json" {
		return p.WriteJSON(results)
	}

	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				_, _ = fmt.Fprintln(out)
			}
			_, _ = fmt.Fprintf(out, "%s\n", r.Source)
		}
		if r.Summary != nil {
			p.PrintSummary(*r.Summary)
		} else {
			p.PrintErrors(r.Errors)
		}
	}
	return nil
}

func writeResults(path string, results []submitResult) error {
	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := summary.NewPrinter(f).WriteJSON(results); err != nil {
		return fmt.Errorf("failed to write results to output file: %w", err)
	}
	return nil
}
