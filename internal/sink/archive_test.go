package sink

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/quantmind-br/blitzpack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unzip(t *testing.T, data []byte) map[string]string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		files[f.Name] = string(content)
	}
	return files
}

func TestArchive_RoundTrip(t *testing.T) {
	entries := []domain.SanitizedEntry{
		{Path: "package.json", Contents: `{"name":"demo"}`, Size: 15},
		{Path: "src/main.ts", Contents: "console.log('héllo')", Size: 21},
		{Path: "docs/readme.md", Contents: "# Demo\n", Size: 7},
	}

	a := NewArchive()
	for _, e := range entries {
		require.NoError(t, a.Add(e))
	}
	require.NoError(t, a.Close())

	assert.Equal(t, 3, a.Count())

	files := unzip(t, a.Bytes())
	require.Len(t, files, 3)
	for _, e := range entries {
		assert.Equal(t, e.Contents, files[e.Path], e.Path)
	}
}

func TestArchive_Reader(t *testing.T) {
	a := NewArchive()
	require.NoError(t, a.Add(domain.SanitizedEntry{Path: "a.txt", Contents: "hello"}))
	require.NoError(t, a.Close())

	data, err := io.ReadAll(a.Reader())
	require.NoError(t, err)
	assert.Equal(t, a.Bytes(), data)
}

func TestArchive_Response(t *testing.T) {
	a := NewArchive()
	require.NoError(t, a.Add(domain.SanitizedEntry{Path: "index.js", Contents: "42"}))
	require.NoError(t, a.Close())

	resp := a.Response("vitejs-vite-abc123")
	assert.Equal(t, "application/zip", resp.ContentType)
	assert.Equal(t, `attachment; filename="vitejs-vite-abc123.zip"`, resp.ContentDisposition)
	assert.Equal(t, int64(len(a.Bytes())), resp.ContentLength)
	assert.Equal(t, a.Bytes(), resp.Body)
}

func TestArchive_WriteHTTP(t *testing.T) {
	a := NewArchive()
	require.NoError(t, a.Add(domain.SanitizedEntry{Path: "index.js", Contents: "42"}))
	require.NoError(t, a.Close())

	rec := httptest.NewRecorder()
	require.NoError(t, a.WriteHTTP(rec, "demo"))

	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "demo.zip")
	assert.Equal(t, a.Bytes(), rec.Body.Bytes())

	files := unzip(t, rec.Body.Bytes())
	assert.Equal(t, "42", files["index.js"])
}

func TestArchive_AddAfterClose(t *testing.T) {
	a := NewArchive()
	require.NoError(t, a.Close())

	err := a.Add(domain.SanitizedEntry{Path: "late.txt", Contents: "x"})
	assert.ErrorIs(t, err, domain.ErrSinkClosed)
}

func TestArchive_Empty(t *testing.T) {
	a := NewArchive()
	require.NoError(t, a.Close())

	files := unzip(t, a.Bytes())
	assert.Empty(t, files)
	assert.Equal(t, 0, a.Count())
}
