// Command tsdocgraph is a bundler-host CLI around the loader: it
// resolves a TypeScript/TSX file's exports, links its type graph, and
// prints the result, plus project-wide scan and watch modes. Grounded
// on the teacher's cmd/docod/main.go cobra root+subcommand wiring.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tsdocgraph/internal/config"
)

var (
	rootCmd = &cobra.Command{
		Use:   "tsdocgraph",
		Short: "Loader for TypeScript/TSX export and type documentation graphs",
	}
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to tsdocgraph's config.yaml")

	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
}

func loadConfig() (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded
	return cfg, nil
}
