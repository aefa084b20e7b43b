package cmd

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sayanbanerjee32/nanogpt2-text-generator/pkg/bigram"
	"github.com/sayanbanerjee32/nanogpt2-text-generator/pkg/data"
	"github.com/spf13/cobra"
)

// minTemperature replaces non-positive temperatures.
const minTemperature = 1e-5

// NewGenerateCommand returns a command that samples a continuation of --text.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate text from a seed",
		Long: `
Fits the bigram baseline on one epoch of the corpus and samples up to
--max-tokens tokens after the seed text.
	`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tokens, tok, err := loadTokens()
			if err != nil {
				return err
			}
			loader, err := data.New(tokens, RootArgs.batchSize, RootArgs.seqLength)
			if err != nil {
				return err
			}
			model, err := bigram.New(tok.VocabSize(), RootArgs.smoothing)
			if err != nil {
				return err
			}
			if err := model.Fit(loader, loader.EpochBatches()); err != nil {
				return fmt.Errorf("failed to fit model: %w", err)
			}
			prompt, err := tok.Encode(seedText(RootArgs.text))
			if err != nil {
				return err
			}
			temperature, topK := sampling(RootArgs.temperature, RootArgs.topK)
			log.Debug("sampling", "prompt", len(prompt), "temperature", temperature, "top-k", topK, "seed", RootArgs.seed)
			generated, err := model.Generate(
				prompt,
				RootArgs.maxTokens,
				temperature,
				topK,
				rand.New(rand.NewSource(RootArgs.seed)),
			)
			if err != nil {
				return err
			}
			text, err := tok.Decode(generated)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().
		StringVarP(&RootArgs.text, "text", "t", "", "Seed text")
	cmd.Flags().
		IntVarP(&RootArgs.maxTokens, "max-tokens", "n", 100, "Max tokens to generate")
	cmd.Flags().
		Float64VarP(&RootArgs.temperature, "temperature", "T", 0.7, "Temperature (higher is more creative)")
	cmd.Flags().
		IntVar(&RootArgs.topK, "top-k", 50, "Sample from the k most likely tokens (0 disables)")
	cmd.Flags().
		Int64VarP(&RootArgs.seed, "seed", "s", time.Now().UnixNano(), "Seed for random number generator")
	cmd.Flags().
		Float64Var(&RootArgs.smoothing, "smoothing", 0.01, "Additive smoothing pseudo-count")
	return cmd
}

// seedText returns the seed with a trailing space; an empty seed becomes " ".
func seedText(text string) string {
	if !strings.HasSuffix(text, " ") {
		text += " "
	}
	return text
}

// sampling clamps the temperature to a positive value and maps a
// non-positive top-k to "no limit".
func sampling(temperature float64, topK int) (float64, int) {
	if temperature <= 0 {
		temperature = minTemperature
	}
	if topK < 0 {
		topK = 0
	}
	return temperature, topK
}
