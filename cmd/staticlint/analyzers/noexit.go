// Package analyzers contains custom analyzers for static analysis.
package analyzers

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// NoOsExitMainAnalyzer disallows direct calls to os.Exit in main.main.
// Binaries return errors from run and leave the exit to log.Fatal so that
// deferred cleanup in run still happens.
var NoOsExitMainAnalyzer = &analysis.Analyzer{
	Name:     "noosexitmain",
	Doc:      "disallow direct calls to os.Exit in main.main function",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runNoOsExitMain,
}

func runNoOsExitMain(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		fn := n.(*ast.FuncDecl)
		if fn.Recv != nil || fn.Name.Name != "main" || fn.Body == nil {
			return
		}

		ast.Inspect(fn.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if f, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func); ok &&
				f.Pkg() != nil && f.Pkg().Path() == "os" && f.Name() == "Exit" {
				pass.Reportf(call.Pos(), "direct call to os.Exit in main.main is forbidden")
			}
			return true
		})
	})

	return nil, nil
}
