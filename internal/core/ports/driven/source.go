package driven

import "context"

// LocatorSource discovers the locators to download.
type LocatorSource interface {
	// Locators returns locators in discovery order. Duplicates are allowed.
	Locators(ctx context.Context) ([]string, error)
}

// NameProvider supplies the human-readable label for the archive.
type NameProvider interface {
	// Name returns the raw label. An empty string is valid.
	Name(ctx context.Context) (string, error)
}
