package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"autocorrect/internal/corpus"
)

var (
	fetchURL string
	fetchOut string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a training corpus",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", corpus.DefaultCorpusURL, "Corpus URL")
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "o", corpus.DefaultCorpusFile, "Destination file")
}

func runFetch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Downloading %s...\n", fetchURL)
	client := &http.Client{Timeout: 5 * time.Minute}
	n, err := corpus.Fetch(cmd.Context(), client, fetchURL, fetchOut)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %d bytes to %s\n", n, fetchOut)
	return nil
}
