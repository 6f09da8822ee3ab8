// Package sink provides the terminal consumers of sanitized file entries:
// an in-memory zip archive builder and a filesystem writer.
package sink

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/klauspost/compress/zip"
	"github.com/quantmind-br/blitzpack/internal/domain"
)

// Ensure Archive implements domain.Sink
var _ domain.Sink = (*Archive)(nil)

// Archive builds an in-memory zip archive from sanitized entries. Entry names
// are the normalized slash-separated paths; contents are stored verbatim as
// UTF-8. Building the archive needs no destination path.
type Archive struct {
	buf    bytes.Buffer
	zw     *zip.Writer
	count  int
	closed bool
}

// NewArchive creates an empty archive sink
func NewArchive() *Archive {
	a := &Archive{}
	a.zw = zip.NewWriter(&a.buf)
	return a
}

// Add appends one entry to the archive
func (a *Archive) Add(entry domain.SanitizedEntry) error {
	if a.closed {
		return domain.ErrSinkClosed
	}

	w, err := a.zw.Create(entry.Path)
	if err != nil {
		return fmt.Errorf("failed to create archive entry %s: %w", entry.Path, err)
	}
	if _, err := io.WriteString(w, entry.Contents); err != nil {
		return fmt.Errorf("failed to write archive entry %s: %w", entry.Path, err)
	}

	a.count++
	return nil
}

// Close finalizes the zip central directory. Must be called before Bytes,
// Reader or Response.
func (a *Archive) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	return a.zw.Close()
}

// Count returns the number of entries added
func (a *Archive) Count() int {
	return a.count
}

// Bytes returns the raw archive bytes
func (a *Archive) Bytes() []byte {
	return a.buf.Bytes()
}

// Reader returns the archive as a byte stream
func (a *Archive) Reader() io.Reader {
	return bytes.NewReader(a.buf.Bytes())
}

// Response wraps the archive as an HTTP-response-shaped object, named
// <identifier>.zip for attachment download.
func (a *Archive) Response(identifier string) *domain.ArchiveResponse {
	body := a.buf.Bytes()
	return &domain.ArchiveResponse{
		ContentType:        "application/zip",
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", identifier+".zip"),
		ContentLength:      int64(len(body)),
		Body:               body,
	}
}

// WriteHTTP writes the archive to an HTTP response writer
func (a *Archive) WriteHTTP(w http.ResponseWriter, identifier string) error {
	resp := a.Response(identifier)
	w.Header().Set("Content-Type", resp.ContentType)
	w.Header().Set("Content-Disposition", resp.ContentDisposition)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", resp.ContentLength))
	_, err := w.Write(resp.Body)
	return err
}
