package ports

import "container-os/internal/types"

// ManifestStorePort loads and saves the persisted documents. Loads of a
// missing required document fail with *types.MissingDocumentError.
type ManifestStorePort interface {
	LoadTargets(path string) (types.TargetsDocument, error)
	SaveTargets(path string, doc types.TargetsDocument) error
	LoadPackageVersions(path string) (types.PackageVersions, error)
	SavePackageVersions(path string, versions types.PackageVersions) error
	LoadDigests(path string) (types.DigestState, error)
	SaveDigests(path string, state types.DigestState) error
}

// BaselinePort reads the last committed version of a document. A nil
// result means no baseline exists, which is not an error.
type BaselinePort interface {
	ReadTargets(path string) *types.TargetsDocument
	ReadPackageVersions(path string) types.PackageVersions
}
