package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docuflow-cli/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

const pdfMIME = "application/pdf"

// UploadService validates documents locally before sending them.
// A rejected file never reaches the network.
type UploadService struct {
	api      driven.DocuFlowAPI
	watcher  driven.FileWatcher
	validate *validator.Validate
}

// NewUploadService creates a new upload service. watcher may be nil.
func NewUploadService(api driven.DocuFlowAPI, watcher driven.FileWatcher) *UploadService {
	return &UploadService{
		api:      api,
		watcher:  watcher,
		validate: validator.New(),
	}
}

// Validate checks presence, document type, content type and size, in that order.
func (s *UploadService) Validate(req domain.UploadRequest) error {
	req.Path = strings.TrimSpace(req.Path)
	if req.Path == "" {
		return domain.ErrNoFile
	}
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Field() == "DocumentType" {
					return domain.ErrInvalidDocumentType
				}
			}
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	info, err := os.Stat(req.Path)
	if err != nil || info.IsDir() {
		return domain.ErrNoFile
	}

	mtype, err := mimetype.DetectFile(req.Path)
	if err != nil || !mtype.Is(pdfMIME) {
		return domain.ErrNotPDF
	}

	if info.Size() > domain.MaxUploadSize {
		return domain.ErrFileTooLarge
	}
	return nil
}

// Upload validates req and sends it.
func (s *UploadService) Upload(ctx context.Context, req domain.UploadRequest) (*domain.UploadResult, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}

	path := strings.TrimSpace(req.Path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	logger.Debug("uploading %s as %s", path, req.DocumentType)
	return s.api.UploadDocument(ctx, f, filepath.Base(path), req.DocumentType)
}

// Watch uploads PDFs as they appear in dir. Files with other extensions
// are ignored; invalid PDFs are reported through onResult.
func (s *UploadService) Watch(
	ctx context.Context,
	dir string,
	docType domain.DocumentType,
	onResult func(path string, result *domain.UploadResult, err error),
) error {
	if s.watcher == nil {
		return domain.ErrNotImplemented
	}
	if !docType.IsValid() {
		return domain.ErrInvalidDocumentType
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("failed to watch %s: %w", dir, domain.ErrInvalidInput)
	}

	return s.watcher.Watch(ctx, dir, func(path string) {
		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return
		}
		result, err := s.Upload(ctx, domain.UploadRequest{Path: path, DocumentType: docType})
		if onResult != nil {
			onResult(path, result, err)
		}
	})
}
