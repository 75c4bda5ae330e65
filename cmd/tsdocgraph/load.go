package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"tsdocgraph/internal/orchestrator"
	"tsdocgraph/internal/schema"
)

var (
	loadSymbols  string
	loadValidate bool
)

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Resolve and link one file's exports, printing the {exports, links} result as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("config: %v", err)
		}

		file, err := absPath(args[0])
		if err != nil {
			log.Fatalf("resolving file path: %v", err)
		}

		var requested []string
		if strings.TrimSpace(loadSymbols) != "" {
			for _, s := range strings.Split(loadSymbols, ",") {
				if s = strings.TrimSpace(s); s != "" {
					requested = append(requested, s)
				}
			}
		}

		host := newFSHost(cfg.Resolver.ConfigFileNames)
		orc := orchestrator.New(host)

		asset, err := orc.Load(file, requested)
		if err != nil {
			log.Fatalf("load failed: %v", err)
		}

		if loadValidate {
			if err := schema.ValidateAsset(asset); err != nil {
				log.Fatalf("output failed schema validation: %v", err)
			}
		}

		out, err := json.MarshalIndent(asset, "", "  ")
		if err != nil {
			log.Fatalf("marshal failed: %v", err)
		}
		fmt.Println(string(out))
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadSymbols, "symbols", "", "Comma-separated export names to load (default: every export)")
	loadCmd.Flags().BoolVar(&loadValidate, "validate", false, "Validate the output against the asset JSON schema before printing")
}
