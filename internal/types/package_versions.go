package types

// PackageVersions is the persisted package versions document
// (package_versions.json): os -> version -> bucket -> package -> version.
// A nil value is a JSON null. A missing key, a null, and an empty string
// all mean the package has not been resolved yet, and each is saved back
// exactly as it was read.
type PackageVersions map[string]map[string]map[string]map[string]*string

// StringPtr returns a pointer to a copy of value.
func StringPtr(value string) *string {
	return &value
}

// Get returns the stored version and whether one is known.
func (p PackageVersions) Get(osName string, versionKey string, bucket string, pkg string) (string, bool) {
	value := p[osName][versionKey][bucket][pkg]
	if value == nil || *value == "" {
		return "", false
	}
	return *value, true
}

// Set stores a version, creating intermediate levels as needed.
func (p PackageVersions) Set(osName string, versionKey string, bucket string, pkg string, value string) {
	versions := p[osName]
	if versions == nil {
		versions = map[string]map[string]map[string]*string{}
		p[osName] = versions
	}
	buckets := versions[versionKey]
	if buckets == nil {
		buckets = map[string]map[string]*string{}
		versions[versionKey] = buckets
	}
	packages := buckets[bucket]
	if packages == nil {
		packages = map[string]*string{}
		buckets[bucket] = packages
	}
	packages[pkg] = StringPtr(value)
}

func (p PackageVersions) OSNames() []string {
	return sortedKeys(p)
}

func (p PackageVersions) VersionKeys(osName string) []string {
	return sortedKeys(p[osName])
}

func (p PackageVersions) BucketNames(osName string, versionKey string) []string {
	return sortedKeys(p[osName][versionKey])
}

func (p PackageVersions) PackageNames(osName string, versionKey string, bucket string) []string {
	return sortedKeys(p[osName][versionKey][bucket])
}

// Clone returns a deep copy. Nil maps and null values stay nil.
func (p PackageVersions) Clone() PackageVersions {
	if p == nil {
		return nil
	}
	out := make(PackageVersions, len(p))
	for osName, versions := range p {
		if versions == nil {
			out[osName] = nil
			continue
		}
		copiedVersions := make(map[string]map[string]map[string]*string, len(versions))
		for key, buckets := range versions {
			if buckets == nil {
				copiedVersions[key] = nil
				continue
			}
			copiedBuckets := make(map[string]map[string]*string, len(buckets))
			for bucket, packages := range buckets {
				if packages == nil {
					copiedBuckets[bucket] = nil
					continue
				}
				copiedPackages := make(map[string]*string, len(packages))
				for name, value := range packages {
					if value != nil {
						value = StringPtr(*value)
					}
					copiedPackages[name] = value
				}
				copiedBuckets[bucket] = copiedPackages
			}
			copiedVersions[key] = copiedBuckets
		}
		out[osName] = copiedVersions
	}
	return out
}

// ManifestState is the pair of documents a reconciliation run reads and
// writes back.
type ManifestState struct {
	Targets  TargetsDocument
	Versions PackageVersions
}

func (s ManifestState) Clone() ManifestState {
	versions := s.Versions.Clone()
	if versions == nil {
		versions = PackageVersions{}
	}
	return ManifestState{
		Targets:  s.Targets.Clone(),
		Versions: versions,
	}
}
