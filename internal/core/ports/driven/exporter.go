package driven

import (
	"context"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

// ReportExporter writes a workflow batch and its summary to a file.
type ReportExporter interface {
	Export(ctx context.Context, path string, batch domain.WorkflowBatch, summary domain.ReportSummary) error
}

// FileWatcher reports files created or written inside a directory.
type FileWatcher interface {
	// Watch blocks until ctx is cancelled, calling onFile for each
	// created or written regular file. Hidden files are skipped.
	Watch(ctx context.Context, dir string, onFile func(path string)) error
}
