package ports

import "container-os/internal/types"

// ReportPort renders run results for the CI surface.
type ReportPort interface {
	WriteUpdate(result types.ReconcileResult) error
	WriteDrift(report types.DriftReport) error
	WritePublish(result types.PublishResult) error
}
