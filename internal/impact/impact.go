// Package impact reports which files are affected, directly or
// transitively, by a change to a given set of files — adapted from
// the teacher's internal/analysis/impact.go Analyzer, re-grounded on
// this loader's import edges instead of a whole-repository call graph.
package impact

// Graph is a directed file-level import graph: edges[file] lists the
// files that file directly depends on (the specifiers it imports,
// already resolved to absolute paths), mirroring the teacher's
// graph.Graph.Edges but keyed by file path instead of CodeUnit ID
// since this loader's unit of invalidation is the file (spec.md §4.8),
// not an individual declaration.
type Graph struct {
	edges      map[string][]string // importer -> its dependencies
	dependents map[string][]string // file -> importers that depend on it
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		edges:      make(map[string][]string),
		dependents: make(map[string][]string),
	}
}

// AddEdge records that importer depends on dependency.
func (g *Graph) AddEdge(importer, dependency string) {
	g.edges[importer] = append(g.edges[importer], dependency)
	g.dependents[dependency] = append(g.dependents[dependency], importer)
}

// Dependents returns the files that directly import file.
func (g *Graph) Dependents(file string) []string {
	return g.dependents[file]
}

// Report is an impact analysis result: the changed files themselves
// are never included in either list.
type Report struct {
	DirectlyAffected   []string
	IndirectlyAffected []string
}

// Analyzer walks a Graph to answer "what does invalidating these files
// affect".
type Analyzer struct {
	g *Graph
}

// NewAnalyzer returns an Analyzer over g.
func NewAnalyzer(g *Graph) *Analyzer {
	return &Analyzer{g: g}
}

// AnalyzeImpact returns every file that directly imports one of
// changed (DirectlyAffected) and every file reachable by following
// further dependents transitively (IndirectlyAffected), mirroring the
// teacher's direct/indirect split but walking import edges rather than
// call-graph edges.
func (a *Analyzer) AnalyzeImpact(changed []string) *Report {
	report := &Report{}
	changedSet := make(map[string]bool, len(changed))
	for _, f := range changed {
		changedSet[f] = true
	}

	seenDirect := make(map[string]bool)
	var frontier []string
	for _, f := range changed {
		for _, dep := range a.g.Dependents(f) {
			if changedSet[dep] || seenDirect[dep] {
				continue
			}
			seenDirect[dep] = true
			report.DirectlyAffected = append(report.DirectlyAffected, dep)
			frontier = append(frontier, dep)
		}
	}

	seenIndirect := make(map[string]bool)
	for len(frontier) > 0 {
		var next []string
		for _, f := range frontier {
			for _, dep := range a.g.Dependents(f) {
				if changedSet[dep] || seenDirect[dep] || seenIndirect[dep] {
					continue
				}
				seenIndirect[dep] = true
				report.IndirectlyAffected = append(report.IndirectlyAffected, dep)
				next = append(next, dep)
			}
		}
		frontier = next
	}

	return report
}
