package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"antiswear/pkg/censor"
	"antiswear/pkg/source/postgres"
)

func newImportCmd() *cobra.Command {
	var dictPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a JSON dictionary into Postgres",
		Long:  "Copy a JSON dictionary into Postgres. Connection settings are read from POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_HOST, POSTGRES_PORT and POSTGRES_DB.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, phrases, err := readEntries(dictPath)
			if err != nil {
				return err
			}

			conf, err := postgres.ConfigFromEnv(postgres.Config{})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			db, err := postgres.New(ctx, conf.ConString())
			if err != nil {
				return fmt.Errorf("failed to connect to %v: %w", conf, err)
			}
			defer db.Close()

			if err := db.AddPairs(ctx, pairs); err != nil {
				return fmt.Errorf("failed to import blacklist: %w", err)
			}
			if err := db.AddPhrases(ctx, phrases); err != nil {
				return fmt.Errorf("failed to import whitelist: %w", err)
			}

			cmd.Printf("Imported %d blacklist and %d whitelist entries\n", len(pairs), len(phrases))
			return nil
		},
	}
	cmd.Flags().StringVar(&dictPath, "dict", "dictionary.json", "Path to JSON dictionary file")

	return cmd
}

func readEntries(path string) ([]censor.Pair, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var file censor.File
	if err := json.NewDecoder(f).Decode(&file); err != nil {
		return nil, nil, fmt.Errorf("failed to decode dictionary: %w", err)
	}
	pairs, phrases := file.Entries()

	return pairs, phrases, nil
}
