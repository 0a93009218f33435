package scanner

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-set/v3"
	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedImports |
	packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax

// PackageGlob represents a package glob pattern
type PackageGlob struct {
	Pattern   string
	Recursive bool
	Exclude   bool
}

// ParseGlob parses a glob pattern and returns a PackageGlob
func ParseGlob(pattern string) *PackageGlob {
	glob := &PackageGlob{}
	if strings.HasPrefix(pattern, "!") {
		glob.Exclude = true
		pattern = pattern[1:]
	}
	glob.Pattern = pattern
	// Check if pattern contains **/ for recursive scanning or ends with /** or /...
	glob.Recursive = strings.Contains(pattern, "**/") || strings.HasSuffix(pattern, "/**") || strings.HasSuffix(pattern, "/...")
	return glob
}

func (g *PackageGlob) isRelative() bool {
	return g.Pattern == "." || strings.HasPrefix(g.Pattern, "./") || strings.HasPrefix(g.Pattern, "../")
}

// ExpandGlob expands the glob to go/packages patterns
func (g *PackageGlob) ExpandGlob() []string {
	base := g.Pattern
	switch {
	case strings.HasSuffix(base, "/..."):
		return []string{base}
	case strings.HasSuffix(base, "/**"):
		base = strings.TrimSuffix(base, "/**")
	case strings.Contains(base, "**/"):
		// pkg/**/sub: let go/packages walk from the fixed prefix
		base = strings.TrimSuffix(strings.ReplaceAll(base, "**/", ""), "/")
	default:
		return []string{base}
	}
	return []string{base + "/..."}
}

// Matches reports whether an import path is selected by the glob. Relative
// globs never match import paths.
func (g *PackageGlob) Matches(pkgPath string) bool {
	if g.isRelative() {
		return false
	}
	patterns := g.ExpandGlob()
	if len(patterns) == 0 {
		return false
	}
	p := patterns[0]
	if prefix, ok := strings.CutSuffix(p, "/..."); ok {
		return pkgPath == prefix || strings.HasPrefix(pkgPath, prefix+"/")
	}
	return pkgPath == p
}

// LoadPackages loads the packages selected by the include patterns minus the
// excluded ones. A package matched by several patterns is returned once.
func LoadPackages(ctx *ScanningContext, patterns ...string) ([]*packages.Package, error) {
	var include []string
	var exclude []*PackageGlob
	for _, pattern := range patterns {
		glob := ParseGlob(pattern)
		if glob.Exclude {
			exclude = append(exclude, glob)
			continue
		}
		include = append(include, glob.ExpandGlob()...)
	}
	if len(include) == 0 {
		return nil, nil
	}

	config := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     ctx.Config.Dir,
	}
	loaded, err := packages.Load(config, include...)
	if err != nil {
		return nil, fmt.Errorf("load packages %v: %w", include, err)
	}

	seen := set.New[string](len(loaded))
	var ret []*packages.Package
	for _, pkg := range loaded {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("load package %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
		if excluded(exclude, pkg.PkgPath) {
			ctx.Logger.Debug(fmt.Sprintf("excluding package %s", pkg.PkgPath))
			continue
		}
		if seen.Insert(pkg.PkgPath) {
			ret = append(ret, pkg)
		}
	}
	return ret, nil
}

func excluded(globs []*PackageGlob, pkgPath string) bool {
	for _, g := range globs {
		if g.Matches(pkgPath) {
			return true
		}
	}
	return false
}
