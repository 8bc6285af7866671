package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func TestSaveDocumentRoundTrip(t *testing.T) {
	s := NewStorageService(t.TempDir())
	require.NoError(t, s.EnsureUploadDir())

	filename, path, err := s.SaveDocument(uploadedFile(t, "pamphlet.TXT", []byte("scheme text")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "scheme_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "scheme text", string(data))

	require.NoError(t, s.DeleteDocument(filename))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveDocumentRejectsUnsupportedType(t *testing.T) {
	s := NewStorageService(t.TempDir())
	require.NoError(t, s.EnsureUploadDir())

	_, _, err := s.SaveDocument(uploadedFile(t, "payload.exe", []byte("nope")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".exe")
}
