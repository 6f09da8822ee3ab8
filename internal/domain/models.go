package domain

import "time"

// File entry kinds as reported by the project API
const (
	KindFile      = "file"
	KindDirectory = "directory"
)

// RemoteFile represents a single entry of the remote file tree, as received.
// Paths are untrusted: they may contain "..", leading slashes, or excluded
// directory prefixes.
type RemoteFile struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Contents string `json:"contents"`
	FullPath string `json:"fullPath"`
}

// IsFile returns true for regular file entries
func (f *RemoteFile) IsFile() bool {
	return f.Type == KindFile
}

// Project represents the project object of the API response
type Project struct {
	AppFiles map[string]RemoteFile `json:"appFiles"`
}

// ProjectResponse represents the full API response envelope
type ProjectResponse struct {
	Project Project `json:"project"`
}

// ProjectTree is the validated file tree of a fetched project
type ProjectTree struct {
	ID        string
	Files     map[string]RemoteFile
	FetchedAt time.Time
	FromCache bool
}

// FileCount returns the number of entries of kind file
func (t *ProjectTree) FileCount() int {
	n := 0
	for _, f := range t.Files {
		if f.IsFile() {
			n++
		}
	}
	return n
}

// SanitizedEntry is a file entry that passed sanitization.
// Path never starts with "/", never contains a ".." segment, and is never empty.
type SanitizedEntry struct {
	Path     string
	Contents string
	Size     int64
}

// ArchiveResponse is an HTTP-response-shaped wrapper around a built archive
type ArchiveResponse struct {
	ContentType        string
	ContentDisposition string
	ContentLength      int64
	Body               []byte
}
