package cmd

import (
	"fmt"

	"github.com/sayanbanerjee32/nanogpt2-text-generator/pkg/data"
	"github.com/spf13/cobra"
)

// NewBatchesCommand returns a command that prints the first batches of the corpus.
func NewBatchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Print the first input/target batches of the corpus",
		Long: `
Prints the token ids of the first --count batches together with the cursor
position after each call, which makes the wraparound point visible.
	`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tokens, _, err := loadTokens()
			if err != nil {
				return err
			}
			loader, err := data.New(tokens, RootArgs.batchSize, RootArgs.seqLength)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for n := 1; n <= RootArgs.count; n++ {
				start := loader.Position()
				inputs, targets := loader.NextBatch()
				fmt.Fprintf(out, "batch %d: start %d, next %d\n", n, start, loader.Position())
				for i := range inputs {
					fmt.Fprintf(out, "  x[%d] %v\n", i, inputs[i])
					fmt.Fprintf(out, "  y[%d] %v\n", i, targets[i])
				}
			}
			return nil
		},
	}
	cmd.Flags().
		IntVarP(&RootArgs.count, "count", "n", 1, "Number of batches to print")
	return cmd
}
