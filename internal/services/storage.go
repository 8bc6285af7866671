package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageService holds uploaded scheme documents on disk just long enough for
// text extraction; the ingest flow deletes each document once it is parsed.
type StorageService interface {
	SaveDocument(file *multipart.FileHeader) (filename string, path string, err error)
	DeleteDocument(filename string) error
	EnsureUploadDir() error
}

// The extraction pipeline understands these formats (see DocumentParserService).
var schemeDocumentExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{uploadPath: uploadPath}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

// SaveDocument writes an uploaded scheme document under a unique name and
// returns both the name and the full path. Only formats the text extractor
// can handle are accepted.
func (s *storageService) SaveDocument(file *multipart.FileHeader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !schemeDocumentExtensions[ext] {
		return "", "", fmt.Errorf("unsupported scheme document type: %s", ext)
	}

	filename := fmt.Sprintf("scheme_%s%s", uuid.New().String(), ext)
	path := filepath.Join(s.uploadPath, filename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded document: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to create document file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save document: %w", err)
	}

	return filename, path, nil
}

// DeleteDocument removes a stored document by name.
func (s *storageService) DeleteDocument(filename string) error {
	if err := os.Remove(filepath.Join(s.uploadPath, filename)); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
