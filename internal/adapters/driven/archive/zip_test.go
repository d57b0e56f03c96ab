package archive

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderpack/internal/core/domain"
)

func readZip(t *testing.T, data []byte) *zip.Reader {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return r
}

func TestZipWriter_StoresEntriesInOrder(t *testing.T) {
	stamp := time.Date(2026, 6, 1, 8, 30, 0, 0, time.UTC)
	entries := []domain.ArchiveEntry{
		{Name: "model.zip", Data: []byte("already compressed"), Modified: stamp},
		{Name: "readme.txt", Data: bytes.Repeat([]byte("a"), 4096), Modified: stamp},
		{Name: "モデル.fbx", Data: []byte{0, 1, 2, 3}, Modified: stamp},
	}

	var buf bytes.Buffer
	require.NoError(t, NewZipWriter().Write(&buf, entries))

	r := readZip(t, buf.Bytes())
	require.Len(t, r.File, 3)
	for i, f := range r.File {
		assert.Equal(t, entries[i].Name, f.Name)
		assert.Equal(t, zip.Store, f.Method)
		assert.Equal(t, uint64(len(entries[i].Data)), f.CompressedSize64, "stored, not deflated")
		assert.True(t, stamp.Equal(f.Modified.UTC()), "modified %v", f.Modified)

		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		assert.Equal(t, entries[i].Data, data)
	}
}

func TestZipWriter_ZeroEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewZipWriter().Write(&buf, nil))

	r := readZip(t, buf.Bytes())
	assert.Empty(t, r.File)
}

func TestZipWriter_DefaultTimestamp(t *testing.T) {
	stamp := time.Date(2026, 7, 4, 10, 0, 0, 0, time.UTC)
	writer := NewZipWriter()
	writer.now = func() time.Time { return stamp }

	var buf bytes.Buffer
	require.NoError(t, writer.Write(&buf, []domain.ArchiveEntry{{Name: "a.bin", Data: []byte("x")}}))

	r := readZip(t, buf.Bytes())
	require.Len(t, r.File, 1)
	assert.True(t, stamp.Equal(r.File[0].Modified.UTC()))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestZipWriter_WriteError(t *testing.T) {
	entries := []domain.ArchiveEntry{{Name: "a.bin", Data: bytes.Repeat([]byte("x"), 1<<16)}}

	err := NewZipWriter().Write(failingWriter{}, entries)

	assert.ErrorContains(t, err, "disk full")
}
