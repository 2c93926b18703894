package types

// AliasUpdate records a changed alias_patch for one target.
type AliasUpdate struct {
	OS       string `json:"os" yaml:"os"`
	Version  string `json:"version" yaml:"version"`
	Previous string `json:"previous" yaml:"previous"`
	Tag      string `json:"tag" yaml:"tag"`
}

// PackageUpdate records a changed package version for one bucket entry.
type PackageUpdate struct {
	OS       string `json:"os" yaml:"os"`
	Version  string `json:"version" yaml:"version"`
	Bucket   string `json:"bucket" yaml:"bucket"`
	Package  string `json:"package" yaml:"package"`
	Previous string `json:"previous" yaml:"previous"`
	Current  string `json:"current" yaml:"current"`
}

// ResolutionFailure is a query that could not be answered during a run.
// Scope is either "alias" or "packages".
type ResolutionFailure struct {
	OS      string `json:"os" yaml:"os"`
	Version string `json:"version" yaml:"version"`
	Scope   string `json:"scope" yaml:"scope"`
	Reason  string `json:"reason" yaml:"reason"`
}

type ReconcileResult struct {
	AliasUpdates   []AliasUpdate       `json:"alias_updates" yaml:"alias_updates"`
	PackageUpdates []PackageUpdate     `json:"package_updates" yaml:"package_updates"`
	Failures       []ResolutionFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
	Changed        bool                `json:"changed" yaml:"changed"`
	LastUpdated    string              `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	Bumped         bool                `json:"bumped" yaml:"bumped"`
	ReleaseVersion string              `json:"release_version" yaml:"release_version"`
}
