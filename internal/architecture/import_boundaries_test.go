package architecture_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const modulePath = "mini-admin"

type layerRule struct {
	sourcePrefix string
	forbidden    []string
	hint         string
}

var architectureRules = []layerRule{
	{
		sourcePrefix: modulePath + "/internal/domain",
		forbidden: []string{
			modulePath + "/internal",
			modulePath + "/pkg",
			modulePath + "/cmd",
		},
		hint: "domain may only import domain",
	},
	{
		sourcePrefix: modulePath + "/internal/service",
		forbidden: []string{
			modulePath + "/internal/restclient",
			modulePath + "/internal/mockapi",
			modulePath + "/internal/ui",
			modulePath + "/internal/app",
			modulePath + "/internal/middleware",
			modulePath + "/pkg/cli",
		},
		hint: "services reach the data server through domain repository interfaces",
	},
	{
		sourcePrefix: modulePath + "/internal/ui",
		forbidden: []string{
			modulePath + "/internal/restclient",
			modulePath + "/internal/mockapi",
			modulePath + "/internal/querycache",
			modulePath + "/internal/app",
			modulePath + "/pkg/cli",
		},
		hint: "pages talk to services, never to the transport or cache",
	},
	{
		sourcePrefix: modulePath + "/internal/restclient",
		forbidden: []string{
			modulePath + "/internal/service",
			modulePath + "/internal/ui",
			modulePath + "/internal/mockapi",
			modulePath + "/internal/app",
		},
		hint: "restclient depends on domain only",
	},
	{
		sourcePrefix: modulePath + "/internal/mockapi",
		forbidden: []string{
			modulePath + "/internal/service",
			modulePath + "/internal/ui",
			modulePath + "/internal/restclient",
			modulePath + "/internal/app",
		},
		hint: "the data server is independent of the console",
	},
	{
		sourcePrefix: modulePath + "/internal/middleware",
		forbidden: []string{
			modulePath + "/internal/service",
			modulePath + "/internal/ui",
			modulePath + "/internal/restclient",
		},
		hint: "middleware should depend on domain and middleware-local packages",
	},
}

func TestImportBoundaries(t *testing.T) {
	files, err := collectGoFiles(filepath.Join(repoRootDir(), "internal"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	violations := make([]string, 0)
	for _, file := range files {
		if isTestFile(file) {
			continue
		}
		sourcePkg := packageImportPath(file)
		rule, ok := findRule(sourcePkg)
		if !ok {
			continue
		}
		for _, importPath := range parseImports(t, file) {
			if !strings.HasPrefix(importPath, modulePath+"/") || hasPathPrefix(importPath, rule.sourcePrefix) {
				continue
			}
			if violatesRule(importPath, rule.forbidden) {
				violations = append(violations,
					sourcePkg+" imports "+importPath+" via "+relToRepoRoot(file)+"; allowed direction: "+rule.hint,
				)
			}
		}
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		t.Fatalf("%s", strings.Join(violations, "\n"))
	}
}

func TestTemplatesStayOutOfServices(t *testing.T) {
	files, err := collectGoFiles(filepath.Join(repoRootDir(), "internal", "service"))
	require.NoError(t, err)

	for _, file := range files {
		if isTestFile(file) {
			continue
		}
		for _, importPath := range parseImports(t, file) {
			require.Falsef(t, strings.HasPrefix(importPath, "maragu.dev/gomponents"),
				"%s renders HTML; move it to internal/ui", relToRepoRoot(file))
			require.NotEqualf(t, "net/http", importPath,
				"%s imports net/http; services must stay transport-agnostic", relToRepoRoot(file))
		}
	}
}

func collectGoFiles(root string) ([]string, error) {
	files := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".go") {
			files = append(files, filepath.ToSlash(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func repoRootDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

func findRule(sourcePkg string) (layerRule, bool) {
	for _, rule := range architectureRules {
		if hasPathPrefix(sourcePkg, rule.sourcePrefix) {
			return rule, true
		}
	}
	return layerRule{}, false
}

func violatesRule(importPath string, forbidden []string) bool {
	for _, prefix := range forbidden {
		if hasPathPrefix(importPath, prefix) {
			return true
		}
	}
	return false
}

func hasPathPrefix(value string, prefix string) bool {
	return value == prefix || strings.HasPrefix(value, prefix+"/")
}

func packageImportPath(file string) string {
	path := filepath.ToSlash(filepath.Dir(file))
	idx := strings.Index(path, "/internal/")
	if idx >= 0 {
		return modulePath + path[idx:]
	}
	return modulePath + "/" + path
}

func isTestFile(path string) bool {
	return strings.HasSuffix(filepath.Base(path), "_test.go")
}

func parseImports(t *testing.T, file string) []string {
	t.Helper()

	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
	require.NoErrorf(t, err, "parse imports for %s", file)

	imports := make([]string, 0, len(parsed.Imports))
	for _, imp := range parsed.Imports {
		imports = append(imports, strings.Trim(imp.Path.Value, "\""))
	}
	return imports
}

func relToRepoRoot(path string) string {
	rel, err := filepath.Rel(repoRootDir(), path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
