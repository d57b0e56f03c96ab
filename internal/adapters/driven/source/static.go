package source

import (
	"context"

	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
)

// Ensure implementations satisfy the interfaces.
var (
	_ driven.LocatorSource = Static(nil)
	_ driven.LocatorSource = Multi(nil)
	_ driven.NameProvider  = FixedName("")
)

// Static returns a fixed list of locators.
type Static []string

// Locators returns a copy of the list.
func (s Static) Locators(_ context.Context) ([]string, error) {
	return append([]string(nil), s...), nil
}

// Multi concatenates the locators of several sources in order.
type Multi []driven.LocatorSource

// Locators queries each source in turn and stops at the first error.
func (m Multi) Locators(ctx context.Context) ([]string, error) {
	var all []string
	for _, src := range m {
		if src == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		locs, err := src.Locators(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, locs...)
	}
	return all, nil
}

// FixedName supplies a label given on the command line.
type FixedName string

// Name returns the label unchanged.
func (n FixedName) Name(_ context.Context) (string, error) {
	return string(n), nil
}
