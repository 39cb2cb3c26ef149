package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"antiswear/pkg/censor"
)

func newNormalizeCmd() *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "normalize <text...>",
		Short: "Print the canonical form of a text",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(censor.Normalize(strings.Join(args, " "), keep).String())
		},
	}
	cmd.Flags().BoolVar(&keep, "keep", false, "Keep spaces and punctuation")

	return cmd
}
