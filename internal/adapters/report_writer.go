package adapters

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"container-os/internal/ports"
	"container-os/internal/types"
)

const (
	ReportFormatText = "text"
	ReportFormatJSON = "json"
	ReportFormatYAML = "yaml"
)

// ReportWriter renders results for CI. The text format ends drift reports
// with a has_changes=true|false line that callers can match on.
type ReportWriter struct {
	Out    io.Writer
	Format string
}

func NewReportWriter(out io.Writer, format string) (ReportWriter, error) {
	normalized := strings.ToLower(strings.TrimSpace(format))
	switch normalized {
	case "":
		normalized = ReportFormatText
	case ReportFormatText, ReportFormatJSON, ReportFormatYAML:
	default:
		return ReportWriter{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported report format %q", format))
	}
	return ReportWriter{Out: out, Format: normalized}, nil
}

func (w ReportWriter) WriteUpdate(result types.ReconcileResult) error {
	if w.Format != ReportFormatText {
		return w.encode(result)
	}
	var b strings.Builder
	if len(result.AliasUpdates) > 0 {
		b.WriteString("Updated alias patches:\n")
		for _, update := range result.AliasUpdates {
			fmt.Fprintf(&b, "  - %s %s -> %s\n", update.OS, update.Version, update.Tag)
		}
	}
	if len(result.PackageUpdates) > 0 {
		b.WriteString("Updated package versions:\n")
		group := ""
		for _, update := range result.PackageUpdates {
			key := update.OS + " " + update.Version
			if key != group {
				fmt.Fprintf(&b, "  - %s:\n", key)
				group = key
			}
			fmt.Fprintf(&b, "      %s: %s\n", update.Package, update.Current)
		}
	}
	if len(result.Failures) > 0 {
		b.WriteString("Unresolved queries:\n")
		for _, failure := range result.Failures {
			fmt.Fprintf(&b, "  - %s %s (%s): %s\n", failure.OS, failure.Version, failure.Scope, failure.Reason)
		}
	}
	switch {
	case result.Bumped:
		fmt.Fprintf(&b, "Updates detected - version bumped to %s\n", result.ReleaseVersion)
	case result.Changed:
		b.WriteString("Updates detected - version bump needed\n")
	default:
		b.WriteString("No updates detected.\n")
	}
	_, err := io.WriteString(w.Out, b.String())
	return err
}

func (w ReportWriter) WriteDrift(report types.DriftReport) error {
	if w.Format != ReportFormatText {
		return w.encode(report)
	}
	var b strings.Builder
	if report.HasChanges {
		b.WriteString("Significant changes detected:\n")
		for _, change := range report.Changes {
			b.WriteString("  - " + describeChange(change) + "\n")
		}
		b.WriteString("has_changes=true\n")
	} else {
		b.WriteString("No significant changes detected\n")
		b.WriteString("has_changes=false\n")
	}
	_, err := io.WriteString(w.Out, b.String())
	return err
}

func (w ReportWriter) WritePublish(result types.PublishResult) error {
	if w.Format != ReportFormatText {
		return w.encode(result)
	}
	var b strings.Builder
	for _, plan := range result.Applied {
		fmt.Fprintf(&b, "tagged %s -> %s\n", plan.Alias, plan.SourceTag)
	}
	for _, skip := range result.Skipped {
		fmt.Fprintf(&b, "skipped %s: %s\n", skip.Alias, skip.Reason)
	}
	_, err := io.WriteString(w.Out, b.String())
	return err
}

// WriteValue encodes an arbitrary result in the structured formats and
// prints it with fmt in the text format.
func (w ReportWriter) WriteValue(text string, value any) error {
	if w.Format != ReportFormatText {
		return w.encode(value)
	}
	_, err := io.WriteString(w.Out, text)
	return err
}

func (w ReportWriter) encode(value any) error {
	switch w.Format {
	case ReportFormatJSON:
		encoder := json.NewEncoder(w.Out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	case ReportFormatYAML:
		encoder := yaml.NewEncoder(w.Out)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported report format %q", w.Format))
	}
}

func describeChange(change types.ChangeRecord) string {
	old := change.OldValue
	if old == "" {
		old = "(new)"
	}
	switch change.Type {
	case types.ChangeTypeCompose:
		return fmt.Sprintf("Docker Compose: %s -> %s", change.OldValue, change.NewValue)
	case types.ChangeTypeAliasPatch:
		return fmt.Sprintf("%s %s base: %s -> %s", change.OS, change.Version, old, change.NewValue)
	default:
		return fmt.Sprintf("%s %s (%s): %s %s -> %s", change.OS, change.Version, change.Bucket, change.Package, old, change.NewValue)
	}
}

var _ ports.ReportPort = ReportWriter{}
