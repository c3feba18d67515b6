package main

import (
	"fmt"
	"io"

	"github.com/jonathan/job-application-form/internal/config"
	"github.com/spf13/cobra"
)

var validateDraftCmd = &cobra.Command{
	Use:   "validate-draft",
	Short: "Check that a draft file is well-formed",
	Long:  "Checks a draft JSON file against the draft schema without running the field rules.",
	RunE:  runValidateDraft,
}

var validateDraftInput string

func init() {
	validateDraftCmd.Flags().StringVarP(&validateDraftInput, "draft", "d", "", "Path to draft JSON file (required)")

	if err := validateDraftCmd.MarkFlagRequired("draft"); err != nil {
		panic(fmt.Sprintf("failed to mark draft flag as required: %v", err))
	}

	rootCmd.AddCommand(validateDraftCmd)
}

func runValidateDraft(cmd *cobra.Command, _ []string) error {
	return validateDraftFile(cmd.OutOrStdout(), appConfig, validateDraftInput)
}

func validateDraftFile(out io.Writer, cfg config.Config, path string) error {
	draft, err := loadDraft(cfg, path)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Draft is well-formed: %s (position %q)\n", path, draft.Position)
	return nil
}
