package domain

// MaxUploadSize is the largest accepted upload in bytes.
const MaxUploadSize = 10 * 1024 * 1024

// UploadRequest describes a document to send to the backend.
type UploadRequest struct {
	// Path is the local file path.
	Path string `validate:"required"`

	// DocumentType selects the backend pipeline.
	DocumentType DocumentType `validate:"required,oneof=invoice contract"`
}

// UploadResult is the backend's answer to an upload.
type UploadResult struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
