package analyzers

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	prometheusPath = "github.com/prometheus/client_golang/prometheus"
	promautoPath   = "github.com/prometheus/client_golang/prometheus/promauto"
)

// globalRegistryObjects are the prometheus package members bound to the
// process-wide default registry.
var globalRegistryObjects = map[string]bool{
	"MustRegister":      true,
	"Register":          true,
	"Unregister":        true,
	"DefaultRegisterer": true,
	"DefaultGatherer":   true,
}

// NoGlobalRegistryAnalyzer reports uses of the default Prometheus registry
// outside tests. Metrics must be declared on an injected registry.
var NoGlobalRegistryAnalyzer = &analysis.Analyzer{
	Name:     "noglobalregistry",
	Doc:      "forbid the default prometheus registry outside tests",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runNoGlobalRegistry,
}

func runNoGlobalRegistry(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.SelectorExpr)(nil)}, func(n ast.Node) {
		sel := n.(*ast.SelectorExpr)
		if isTestFile(pass, sel) {
			return
		}

		obj := pass.TypesInfo.Uses[sel.Sel]
		if obj == nil || obj.Pkg() == nil {
			return
		}
		// only package-level members, not methods or fields
		if obj.Parent() != obj.Pkg().Scope() {
			return
		}

		switch obj.Pkg().Path() {
		case prometheusPath:
			if globalRegistryObjects[obj.Name()] {
				pass.Reportf(sel.Pos(), "prometheus.%s uses the global registry; register on an injected registry", obj.Name())
			}
		case promautoPath:
			if _, ok := obj.(*types.Func); ok && strings.HasPrefix(obj.Name(), "New") {
				pass.Reportf(sel.Pos(), "promauto.%s registers on the global registry; use promauto.With", obj.Name())
			}
		}
	})

	return nil, nil
}

// isTestFile reports whether n lives in a _test.go file.
func isTestFile(pass *analysis.Pass, n ast.Node) bool {
	return strings.HasSuffix(pass.Fset.Position(n.Pos()).Filename, "_test.go")
}
