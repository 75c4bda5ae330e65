package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"tsdocgraph/internal/gatherer"
	"tsdocgraph/internal/gitwatch"
	"tsdocgraph/internal/impact"
	"tsdocgraph/internal/orchestrator"
	"tsdocgraph/internal/projectscan"
	"tsdocgraph/internal/transformer"
	"tsdocgraph/internal/tsast"
)

var (
	watchGit     bool
	watchBaseRef string
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Reload and invalidate files as they change, either via filesystem events or `git diff`",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		absRoot, err := absPath(root)
		if err != nil {
			log.Fatalf("resolving root: %v", err)
		}

		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("config: %v", err)
		}

		host := newFSHost(cfg.Resolver.ConfigFileNames)
		orc := orchestrator.New(host)

		if watchGit {
			runGitWatch(orc, absRoot)
			return
		}
		runFSWatch(orc, absRoot)
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchGit, "git", false, "Invalidate from `git diff` instead of filesystem events")
	watchCmd.Flags().StringVar(&watchBaseRef, "base", "HEAD", "Base ref to diff against in --git mode")
}

// runGitWatch is a one-shot pass: diff against baseRef, invalidate and
// reload every changed file, then report the impact of that change
// across the project's import graph.
func runGitWatch(orc *orchestrator.Orchestrator, root string) {
	changed, err := gitwatch.ChangedPaths(watchBaseRef)
	if err != nil {
		log.Fatalf("git diff failed: %v", err)
	}
	if len(changed) == 0 {
		fmt.Println("no changed files")
		return
	}

	fmt.Printf("%d changed files\n", len(changed))
	graph := buildImportGraph(root)

	var absChanged []string
	for _, path := range changed {
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		absChanged = append(absChanged, abs)
		orc.Invalidate(abs)
		if _, err := orc.Load(abs, nil); err != nil {
			log.Printf("warning: reload %s: %v", abs, err)
		}
	}

	report := impact.NewAnalyzer(graph).AnalyzeImpact(absChanged)
	fmt.Printf("directly affected: %d, indirectly affected: %d\n",
		len(report.DirectlyAffected), len(report.IndirectlyAffected))
}

// runFSWatch watches root for filesystem changes and invalidates the
// orchestrator's cache for whatever .ts/.tsx file changed.
func runFSWatch(orc *orchestrator.Orchestrator, root string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("creating watcher: %v", err)
	}
	defer watcher.Close()

	scanner := projectscan.NewScanner(root)
	dirs := map[string]bool{root: true}
	_ = scanner.ScanProject(root, func(path string) {
		dirs[filepath.Dir(path)] = true
	})
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			log.Printf("warning: watch %s: %v", dir, err)
		}
	}

	fmt.Printf("watching %s for changes\n", root)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isTypeScriptFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			orc.Invalidate(event.Name)
			if _, err := orc.Load(event.Name, nil); err != nil {
				log.Printf("warning: reload %s: %v", event.Name, err)
				continue
			}
			fmt.Printf("reloaded %s\n", event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

// buildImportGraph walks root, parsing each file and transforming its
// exported declarations to collect the import specifiers they
// reference, and records one forward edge per resolved dependency so
// impact.Analyzer can compute blast radius for a changed-files set.
func buildImportGraph(root string) *impact.Graph {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	host := newFSHost(cfg.Resolver.ConfigFileNames)
	parser := tsast.NewParser()
	graph := impact.NewGraph()

	scanner := projectscan.NewScanner(root)
	_ = scanner.ScanProject(root, func(path string) {
		source, err := os.ReadFile(path)
		if err != nil {
			return
		}
		ast, err := parser.Parse(context.Background(), path, source)
		if err != nil {
			return
		}
		tr := transformer.New(path, ast)
		for _, se := range gatherer.Gather(ast).Source {
			if se.Node != nil && !se.Namespace {
				tr.Transform(se.Node)
			}
		}
		for _, dep := range tr.Output().Dependencies {
			target, err := host.Resolve(dep.Specifier, path)
			if err != nil {
				continue
			}
			graph.AddEdge(path, target)
		}
	})
	return graph
}

func isTypeScriptFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".ts" || ext == ".tsx"
}
