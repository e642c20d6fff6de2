package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roadsafe/roadsafe/internal/app"
	"github.com/roadsafe/roadsafe/internal/pipeline"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer one road safety question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}

	question := strings.Join(args, " ")

	out, err := a.Flow.Run(ctx, pipeline.Input{Question: question})
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	w := cmd.OutOrStdout()

	// Fallback and unstructured answers land whole in the first section.
	if out.Explanation == "" && out.Reference == "" {
		fmt.Fprintln(w, out.Intervention)
		return nil
	}

	fmt.Fprintf(w, "Recommended Intervention(s):\n%s\n\n", out.Intervention)
	fmt.Fprintf(w, "Explanation & Justification:\n%s\n\n", out.Explanation)
	fmt.Fprintf(w, "Database Reference:\n%s\n", out.Reference)
	return nil
}
