package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"antiswear/pkg/censor"
	"antiswear/pkg/markup"
	"antiswear/pkg/source"
)

func newTestCmd() *cobra.Command {
	var (
		dictPath string
		dictURL  string
	)

	cmd := &cobra.Command{
		Use:   "test <message...>",
		Short: "Show how a message is seen and redacted",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src source.Source = source.File{Path: dictPath}
			if dictURL != "" {
				src = source.HTTP{URL: dictURL}
			}

			c := censor.New()
			if err := source.Reload(context.Background(), c, src); err != nil {
				return err
			}

			message := strings.Join(args, " ")
			start := time.Now()
			result, changed, canonical := c.ProcessCanonical(message)
			elapsed := time.Since(start)

			cmd.Printf("Input:     %s\n", message)
			cmd.Printf("Elapsed:   %v\n", elapsed)
			cmd.Printf("Canonical: %s\n", canonical)
			if !changed {
				cmd.Printf("Clean:     %s\n", message)
				return nil
			}
			cmd.Printf("Censored:  %s\n", markup.StripColorCodes(result))

			return nil
		},
	}
	cmd.Flags().StringVar(&dictPath, "dict", "dictionary.json", "Path to JSON dictionary file")
	cmd.Flags().StringVar(&dictURL, "url", "", "URL of JSON dictionary, takes precedence over --dict")

	return cmd
}
