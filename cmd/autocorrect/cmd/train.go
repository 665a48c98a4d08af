package cmd

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"autocorrect/internal/corpus"
	"autocorrect/internal/service"
)

var (
	trainRatio  float64
	trainSample int
)

var trainCmd = &cobra.Command{
	Use:   "train [corpus]",
	Short: "Train on a corpus and report held-out coverage",
	Long: "Trains on the first part of the corpus (--ratio) and reports which share of a random sample\n" +
		"of the remaining tokens the vocabulary already knows.",
	Args: cobra.MaximumNArgs(1),
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().Float64Var(&trainRatio, "ratio", corpus.DefaultTrainRatio, "Share of tokens used for training")
	trainCmd.Flags().IntVar(&trainSample, "sample", corpus.DefaultSampleSize, "Held-out tokens sampled for coverage")
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(true)
	if err != nil {
		return err
	}
	defer logger.Sync()

	speller, closeCache := newSpeller(cfg, logger)
	defer closeCache()

	path := corpusPath(cfg, args)
	tokens, err := corpus.LoadTokens(path)
	if err != nil {
		return err
	}
	return trainAndReport(cmd.OutOrStdout(), speller, path, tokens, trainRatio, trainSample)
}

func trainAndReport(out io.Writer, speller *service.Speller, path string, tokens []string, ratio float64, sample int) error {
	fmt.Fprintf(out, "Loading file: %s\n", path)
	train, heldOut := corpus.Split(tokens, ratio)
	m, err := speller.Train(slices.Values(train))
	if err != nil {
		return fmt.Errorf("train %s: %w", path, err)
	}
	fmt.Fprintln(out, "Training complete")
	fmt.Fprintf(out, "Vocabulary size: %d unique words\n", m.Len())
	fmt.Fprintf(out, "Total word count: %d\n", m.Total())

	fmt.Fprintln(out, "\n--- Coverage ---")
	if len(heldOut) == 0 {
		fmt.Fprintln(out, "Not enough data to test.")
		return nil
	}
	r, err := speller.Coverage(heldOut, sample)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Known words:   %d\n", r.Known)
	fmt.Fprintf(out, "Unknown words: %d\n", r.Unknown)
	fmt.Fprintf(out, "Coverage:      %.2f%%\n", r.Accuracy)
	return nil
}
