package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/sayanbanerjee32/nanogpt2-text-generator/pkg/bigram"
	"github.com/sayanbanerjee32/nanogpt2-text-generator/pkg/data"
	"github.com/spf13/cobra"
)

// NewTrainCommand returns a new train command.
func NewTrainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the bigram baseline on sequential batches",
		Long: `
Splits the token stream into a training head and a validation tail, then
consumes --steps training batches, evaluating every --val-every steps.
	`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tokens, tok, err := loadTokens()
			if err != nil {
				return err
			}
			trainTokens, valTokens, err := data.Split(tokens, RootArgs.valFraction)
			if err != nil {
				return err
			}
			loader, err := data.New(trainTokens, RootArgs.batchSize, RootArgs.seqLength)
			if err != nil {
				return fmt.Errorf("training split: %w", err)
			}
			var validationLoader data.Loader
			if len(valTokens) > 0 {
				l, err := data.New(valTokens, RootArgs.batchSize, RootArgs.seqLength)
				if err != nil {
					return fmt.Errorf("validation split: %w", err)
				}
				validationLoader = l
			}
			model, err := bigram.New(tok.VocabSize(), RootArgs.smoothing)
			if err != nil {
				return err
			}
			report, err := model.Train(loader, validationLoader, bigram.TrainOptions{
				Steps:      RootArgs.steps,
				ValEvery:   RootArgs.valEvery,
				ValBatches: RootArgs.valBatches,
			})
			if err != nil {
				return fmt.Errorf("failed to train model: %w", err)
			}
			if n := len(report.TrainLosses); n > 0 {
				log.Info("done", "steps", n, "train loss", report.TrainLosses[n-1])
				fmt.Fprintf(cmd.OutOrStdout(), "final train loss %f\n", report.TrainLosses[n-1])
			}
			if n := len(report.ValLosses); n > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "final val loss %f\n", report.ValLosses[n-1].Loss)
			}
			return nil
		},
	}

	cmd.Flags().
		IntVar(&RootArgs.steps, "steps", 50, "Number of training steps")
	cmd.Flags().
		Float64Var(&RootArgs.valFraction, "val-fraction", 0.1, "Fraction of the stream held out for validation")
	cmd.Flags().
		IntVar(&RootArgs.valEvery, "val-every", 10, "Steps between validation runs (0 disables)")
	cmd.Flags().
		IntVar(&RootArgs.valBatches, "val-batches", 10, "Batches averaged per validation run")
	cmd.Flags().
		Float64Var(&RootArgs.smoothing, "smoothing", 0.01, "Additive smoothing pseudo-count")
	return cmd
}
