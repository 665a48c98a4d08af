package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"autocorrect/internal/service"
)

var (
	correctCorpus string
	correctK      int
)

var correctCmd = &cobra.Command{
	Use:   "correct <word>...",
	Short: "Print ranked corrections for each word",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCorrect,
}

func init() {
	correctCmd.Flags().StringVar(&correctCorpus, "corpus", "", "Corpus file to train on (default app.corpus_path or final.txt)")
	correctCmd.Flags().IntVarP(&correctK, "k", "k", 0, "Suggestions per word (default app.top_k)")
}

func runCorrect(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(true)
	if err != nil {
		return err
	}
	defer logger.Sync()

	speller, closeCache := newSpeller(cfg, logger)
	defer closeCache()

	if _, err := speller.TrainFile(corpusPath(cfg, []string{correctCorpus})); err != nil {
		return err
	}
	return printCorrections(cmd.Context(), cmd.OutOrStdout(), speller, args, correctK)
}

func printCorrections(ctx context.Context, out io.Writer, speller *service.Speller, words []string, k int) error {
	for _, w := range words {
		cands, err := speller.Correct(ctx, w, k)
		if err != nil {
			return fmt.Errorf("%q: %w", w, err)
		}
		parts := make([]string, len(cands))
		for i, c := range cands {
			parts[i] = fmt.Sprintf("%s (%.5f)", c.Term, c.Score)
		}
		fmt.Fprintf(out, "%s -> %s\n", w, strings.Join(parts, ", "))
	}
	return nil
}
