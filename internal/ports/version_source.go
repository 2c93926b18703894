package ports

import "context"

// VersionSourcePort answers upstream version queries for a target.
//
// Both methods return *types.ResolutionError only for transport or
// environment failures. A package that cannot be found is reported by its
// absence from the returned map, and a prefix without candidates resolves
// to itself. ResolvePackageVersions may return a non-empty map together with
// the error when only some of the packages failed.
type VersionSourcePort interface {
	ResolveBaseAlias(ctx context.Context, osName string, prefix string) (string, error)
	ResolvePackageVersions(ctx context.Context, osName string, imageVersion string, packages []string) (map[string]string, error)
}
