package types

type ChangeType string

const (
	ChangeTypeCompose    ChangeType = "compose"
	ChangeTypeAliasPatch ChangeType = "alias_patch"
	ChangeTypePackage    ChangeType = "package"
)

type Direction string

const (
	DirectionNone      Direction = ""
	DirectionNew       Direction = "new"
	DirectionUpgrade   Direction = "upgrade"
	DirectionDowngrade Direction = "downgrade"
)

// ChangeRecord is one significant difference between the working and the
// baseline documents. OldValue is empty when the baseline had no value.
type ChangeRecord struct {
	Type      ChangeType `json:"type" yaml:"type"`
	OS        string     `json:"os,omitempty" yaml:"os,omitempty"`
	Version   string     `json:"os_version,omitempty" yaml:"os_version,omitempty"`
	Bucket    string     `json:"section,omitempty" yaml:"section,omitempty"`
	Package   string     `json:"package,omitempty" yaml:"package,omitempty"`
	OldValue  string     `json:"old_version" yaml:"old_version"`
	NewValue  string     `json:"new_version" yaml:"new_version"`
	Direction Direction  `json:"direction,omitempty" yaml:"direction,omitempty"`
}

type DriftReport struct {
	Changes    []ChangeRecord `json:"changes" yaml:"changes"`
	HasChanges bool           `json:"has_changes" yaml:"has_changes"`
}
