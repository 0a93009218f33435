// Package scanner maps Go packages onto the class model: structs become
// classes, interfaces become interface classes and named integer or string
// types with constants become enums. The mapped classes are registered so
// that type expressions can reference them by name.
package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pablor21/typegen/descriptor"
	"github.com/pablor21/typegen/types"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"
)

var (
	// classes registered per package path; a package is mapped once per process
	scanned = types.NewSyncMap[string, []*types.Class]()
	scanMu  sync.Mutex
)

type Scanner interface {
	Scan(ctx *ScanningContext) (*ScanningResult, error)
}

type DefaultScanner struct{}

func NewScanner() *DefaultScanner {
	return &DefaultScanner{}
}

// ScanWithConfig scans with a background context
func (s *DefaultScanner) ScanWithConfig(config *Config) (*ScanningResult, error) {
	return s.Scan(NewScanningContext(context.Background(), config))
}

// Scan loads the configured packages, maps and registers their classes and
// warms up their descriptors.
func (s *DefaultScanner) Scan(ctx *ScanningContext) (*ScanningResult, error) {
	if ctx == nil || ctx.Config == nil {
		return nil, fmt.Errorf("no scanning context provided or config invalid")
	}

	ctx.Logger.Info("Starting scan...")
	now := time.Now()

	pkgs, err := LoadPackages(ctx, ctx.Config.Packages...)
	if err != nil {
		return nil, err
	}

	classes, err := s.mapPackages(ctx, pkgs)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(pkgs))
	for i, pkg := range pkgs {
		paths[i] = pkg.PkgPath
	}
	ret := newScanningResult(classes, paths)

	if err := WarmUp(ctx, ret.Classes); err != nil {
		return nil, err
	}

	ctx.Logger.Info(fmt.Sprintf("Scan completed in %v, found %d classes, across %d packages", time.Since(now), len(ret.Classes), len(ret.Packages)))
	return ret, nil
}

func (s *DefaultScanner) mapPackages(ctx *ScanningContext, pkgs []*packages.Package) ([]*types.Class, error) {
	scanMu.Lock()
	defer scanMu.Unlock()

	var classes []*types.Class
	r := newTypeResolver(ctx)
	var fresh []*packages.Package
	for _, pkg := range pkgs {
		if cached, ok := scanned.Get(pkg.PkgPath); ok {
			ctx.Logger.Debug(fmt.Sprintf("package %s already mapped", pkg.PkgPath))
			classes = append(classes, cached...)
			continue
		}
		fresh = append(fresh, pkg)
		r.declare(pkg)
	}
	r.define()

	byPkg := map[string][]*types.Class{}
	for _, obj := range r.declared {
		c := r.classes[obj]
		byPkg[c.Package()] = append(byPkg[c.Package()], c)
	}
	for _, pkg := range fresh {
		mapped := byPkg[pkg.PkgPath]
		if err := types.Register(mapped...); err != nil {
			return nil, fmt.Errorf("register %s: %w", pkg.PkgPath, err)
		}
		scanned.Set(pkg.PkgPath, mapped)
		ctx.Logger.Debug(fmt.Sprintf("mapped %d classes from %s", len(mapped), pkg.PkgPath))
		classes = append(classes, mapped...)
	}
	return classes, nil
}

// WarmUp describes, interns and lays out every class concurrently so that
// later generation only reads cached descriptors
func WarmUp(ctx *ScanningContext, classes []*types.Class) error {
	g, gctx := errgroup.WithContext(ctx)
	if n := ctx.Config.MaxConcurrency; n > 0 {
		g.SetLimit(n)
	}
	for _, c := range classes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d := descriptor.OfClass(c).InternClass()
			d.Superclass()
			d.Interfaces()
			for _, m := range d.Members() {
				if m.Type == nil {
					return fmt.Errorf("warm up %s: member %s has no type", c.ID(), m.Name())
				}
			}
			return nil
		})
	}
	return g.Wait()
}
