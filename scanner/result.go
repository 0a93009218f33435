package scanner

import (
	"sort"

	"github.com/pablor21/typegen/types"
)

// ScanningResult lists the classes mapped from the scanned packages
type ScanningResult struct {
	Classes  []*types.Class `json:"-"`
	Packages []string       `json:"packages,omitempty"`
}

func newScanningResult(classes []*types.Class, pkgs []string) *ScanningResult {
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID() < classes[j].ID() })
	sort.Strings(pkgs)
	return &ScanningResult{Classes: classes, Packages: pkgs}
}

// Class returns the class with the given id or unqualified name
func (r *ScanningResult) Class(name string) *types.Class {
	for _, c := range r.Classes {
		if c.ID() == name || c.Name() == name {
			return c
		}
	}
	return nil
}
