package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// coreImports returns every import of the non-test files in pkg/core, keyed
// by file name.
func coreImports(t *testing.T) map[string][]string {
	t.Helper()

	fset := token.NewFileSet()
	coreDir := "."

	entries, err := os.ReadDir(coreDir)
	if err != nil {
		t.Fatalf("Failed to read core directory: %v", err)
	}

	imports := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		// Skip test files
		if strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(coreDir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}

		for _, imp := range f.Imports {
			imports[entry.Name()] = append(imports[entry.Name()], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return imports
}

// TestCoreImportsOnlyStdlib verifies pkg/core stays at the bottom of the
// dependency graph: adapters and the report runner import it, never the
// other way round.
func TestCoreImportsOnlyStdlib(t *testing.T) {
	for file, imports := range coreImports(t) {
		for _, importPath := range imports {
			// stdlib paths have no dot in their first element
			if first, _, _ := strings.Cut(importPath, "/"); strings.Contains(first, ".") {
				t.Errorf("%s imports non-stdlib package: %s", file, importPath)
			}
		}
	}
}

// TestCoreDoesNotImportDrivers verifies no database driver is registered
// as a side effect of importing pkg/core.
func TestCoreDoesNotImportDrivers(t *testing.T) {
	for file, imports := range coreImports(t) {
		for _, importPath := range imports {
			if strings.Contains(importPath, "sqlite") || strings.Contains(importPath, "pgx") ||
				strings.Contains(importPath, "duckdb") || strings.Contains(importPath, "mysql") {
				t.Errorf("%s imports a database driver: %s", file, importPath)
			}
		}
	}
}
