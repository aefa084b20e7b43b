// Package cmd contains the root command for the text generator CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/sayanbanerjee32/nanogpt2-text-generator/pkg/data"
	"github.com/sayanbanerjee32/nanogpt2-text-generator/pkg/tokenizer"
	"github.com/spf13/cobra"
)

// rootArgs is the root command arguments.
type rootArgs struct {
	verbose       bool
	tokenizerName string
	corpusPath    string
	datasetPath   string
	batchSize     int
	seqLength     int

	count int

	steps       int
	valFraction float64
	valEvery    int
	valBatches  int
	smoothing   float64

	text        string
	maxTokens   int
	temperature float64
	topK        int
	seed        int64
}

// RootArgs is the root command arguments.
var RootArgs rootArgs

// NewRootCommand returns the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nanogpt",
		Short: "Sequential token batching and sampling for a small language model",
		Long: `
Tokenizes a corpus, slices it into fixed-shape (input, target) batches and
trains a bigram baseline over them.
	`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.SetOutput(cmd.ErrOrStderr())
			if RootArgs.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().
		BoolVarP(&RootArgs.verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().
		StringVarP(&RootArgs.tokenizerName, "tokenizer", "k", "gpt2", `Tokenizer: "gpt2", "byte" or a tokenizer.bin path`)
	cmd.PersistentFlags().
		StringVarP(&RootArgs.corpusPath, "corpus", "c", "input.txt", "Path to the training text")
	cmd.PersistentFlags().
		StringVarP(&RootArgs.datasetPath, "dataset", "d", "", "Path to a pre-tokenized int32 dataset file (overrides --corpus)")
	cmd.PersistentFlags().
		IntVarP(&RootArgs.batchSize, "batch-size", "b", 4, "Batch size")
	cmd.PersistentFlags().
		IntVarP(&RootArgs.seqLength, "seq-length", "l", 32, "Sequence length")
	cmd.AddCommand(NewBatchesCommand())
	cmd.AddCommand(NewTrainCommand())
	cmd.AddCommand(NewGenerateCommand())
	return cmd
}

// Execute builds the command tree with NewRootCommand and runs it.
// This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadTokens returns the token stream named by the flags and the tokenizer
// that produced it.
func loadTokens() ([]int32, tokenizer.Tokenizer, error) {
	tok, err := tokenizer.Load(RootArgs.tokenizerName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}
	if RootArgs.datasetPath != "" {
		tokens, err := data.FromBinary(RootArgs.datasetPath)
		return tokens, tok, err
	}
	tokens, err := data.FromFile(RootArgs.corpusPath, tok)
	return tokens, tok, err
}
