package policy

import "io"

// Policy is one company policy document record.
type Policy struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FileType    string `json:"file_type"`
	Category    string `json:"category"`
	CreatedAt   string `json:"created_at"`
}

// UploadDTO is the multipart policy upload: metadata fields plus the file.
type UploadDTO struct {
	Title       string
	Description string
	Category    string
	FileName    string
	Content     io.Reader
}

// UploadResult is the upload response envelope.
type UploadResult struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Policy  *Policy `json:"policy,omitempty"`
}

// UpdateDTO is the editable policy metadata.
type UpdateDTO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}
