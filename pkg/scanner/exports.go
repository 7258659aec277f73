package scanner

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vango-dev/fileroutes/pkg/routeconfig"
)

// configVarName is the variable whose composite literal fields become exports.
const configVarName = "Config"

// ReadExports parses a Go source file and returns its string exports.
//
// Exported string constants and variables are recorded under their
// lower-cased name. String fields of a `var Config = T{...}` literal are
// recorded the same way; a top-level declaration wins over a Config field of
// the same name.
func ReadExports(path string) (routeconfig.Exports, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	fromConfig := routeconfig.Exports{}
	direct := routeconfig.Exports{}

	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || (gen.Tok != token.CONST && gen.Tok != token.VAR) {
			continue
		}
		for _, spec := range gen.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for i, ident := range vs.Names {
				if !ident.IsExported() || i >= len(vs.Values) {
					continue
				}
				value := vs.Values[i]
				if ident.Name == configVarName && gen.Tok == token.VAR {
					collectLiteralFields(value, fromConfig)
					continue
				}
				if s, ok := stringLiteral(value); ok {
					direct[exportKey(ident.Name)] = s
				}
			}
		}
	}

	for k, v := range direct {
		fromConfig[k] = v
	}
	return fromConfig, nil
}

// collectLiteralFields records the string-valued keyed fields of a composite
// literal, optionally behind &.
func collectLiteralFields(expr ast.Expr, into routeconfig.Exports) {
	if u, ok := expr.(*ast.UnaryExpr); ok && u.Op == token.AND {
		expr = u.X
	}
	lit, ok := expr.(*ast.CompositeLit)
	if !ok {
		return
	}
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok || !key.IsExported() {
			continue
		}
		if s, ok := stringLiteral(kv.Value); ok {
			into[exportKey(key.Name)] = s
		}
	}
}

func stringLiteral(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return s, true
}

// exportKey lower-cases the first letter of an exported identifier.
func exportKey(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}

// ExportCache memoizes ReadExports by file path, size and modification time.
// It is safe for concurrent use.
type ExportCache struct {
	entries *lru.Cache[string, cachedExports]
}

type cachedExports struct {
	modTime time.Time
	size    int64
	exports routeconfig.Exports
}

// NewExportCache creates a cache holding up to size files.
func NewExportCache(size int) (*ExportCache, error) {
	entries, err := lru.New[string, cachedExports](size)
	if err != nil {
		return nil, err
	}
	return &ExportCache{entries: entries}, nil
}

// Read returns the exports of path, parsing it only if it changed since the
// last call.
func (c *ExportCache) Read(path string) (routeconfig.Exports, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if cached, ok := c.entries.Get(path); ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		return cached.exports, nil
	}

	exports, err := ReadExports(path)
	if err != nil {
		return nil, err
	}
	c.entries.Add(path, cachedExports{modTime: info.ModTime(), size: info.Size(), exports: exports})
	return exports, nil
}

// Len returns the number of cached files.
func (c *ExportCache) Len() int {
	return c.entries.Len()
}
