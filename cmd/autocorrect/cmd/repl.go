package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"autocorrect/internal/service"
	"autocorrect/internal/vocab"
)

var replCmd = &cobra.Command{
	Use:   "repl [corpus]",
	Short: "Train on a corpus, then correct words typed on stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(true)
	if err != nil {
		return err
	}
	defer logger.Sync()

	speller, closeCache := newSpeller(cfg, logger)
	defer closeCache()

	if _, err := speller.TrainFile(corpusPath(cfg, args)); err != nil {
		return err
	}
	return replLoop(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), speller)
}

// replLoop reads one word per line until EOF or "exit" and prints the single
// best correction for each.
func replLoop(ctx context.Context, in io.Reader, out io.Writer, speller *service.Speller) error {
	fmt.Fprintln(out, "--- Live mode (type 'exit' to quit) ---")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Enter a word: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(input, "exit") {
			break
		}

		best, err := speller.Best(ctx, input)
		if errors.Is(err, service.ErrEmptyQuery) {
			continue
		}
		if err != nil {
			return err
		}
		if best.Term == vocab.Normalize(input) {
			fmt.Fprintln(out, "   Correct.")
		} else {
			fmt.Fprintf(out, "   Suggestion: %s\n", best.Term)
		}
	}
	return scanner.Err()
}
