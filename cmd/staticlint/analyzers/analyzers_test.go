package analyzers

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"
)

func TestNoGlobalRegistryAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), NoGlobalRegistryAnalyzer, "registry")
}

func TestNoOsExitMainAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), NoOsExitMainAnalyzer, "exitmain", "exitlib")
}
