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

// AllowedPostingExtensions are the posting formats accepted on upload.
var AllowedPostingExtensions = []string{".pdf", ".docx", ".txt"}

type StorageService interface {
	SaveUpload(file *multipart.FileHeader, prefix string) (string, string, error)
	WriteDocument(name string, content []byte) (string, error)
	ReadFile(path string) ([]byte, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureDirs() error
	OutputDir() string
}

type storageService struct {
	uploadPath string
	outputPath string
}

func NewStorageService(uploadPath, outputPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		outputPath: outputPath,
	}
}

func (s *storageService) EnsureDirs() error {
	for _, dir := range []string{s.uploadPath, s.outputPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (s *storageService) OutputDir() string {
	return s.outputPath
}

// SaveUpload stores an uploaded posting under a unique name and returns the
// stored file name and its path.
func (s *storageService) SaveUpload(file *multipart.FileHeader, prefix string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtension(ext) {
		return "", "", fmt.Errorf("invalid file extension: %q", ext)
	}

	uniqueFilename := fmt.Sprintf("%s_%s%s", prefix, uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

// WriteDocument writes a generated document into the output directory.
func (s *storageService) WriteDocument(name string, content []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid document name: %q", name)
	}
	if err := os.MkdirAll(s.outputPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.outputPath, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return path, nil
}

func (s *storageService) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func allowedExtension(ext string) bool {
	for _, allowed := range AllowedPostingExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
