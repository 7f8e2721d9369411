package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxFileSize = 10 * 1024 * 1024 // 10 MB

// AllowedMimeTypes defines which image types are accepted for garment media.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Service saves garment images to local disk under date-sharded directories
// and returns their public URL paths.
type Service struct {
	baseDir    string // absolute path to uploads dir
	staticBase string // URL prefix for serving files
}

func NewService(baseDir, staticBase string) *Service {
	return &Service{baseDir: baseDir, staticBase: staticBase}
}

// SaveImages stores every file or none: on any failure the already-written
// files are removed.
func (s *Service) SaveImages(files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))
	written := make([]string, 0, len(files))
	for _, fh := range files {
		urlPath, absPath, err := s.saveOne(fh)
		if err != nil {
			for _, p := range written {
				_ = os.Remove(p)
			}
			return nil, err
		}
		paths = append(paths, urlPath)
		written = append(written, absPath)
	}
	return paths, nil
}

func (s *Service) saveOne(fh *multipart.FileHeader) (urlPath, absPath string, err error) {
	if fh.Size == 0 {
		return "", "", ErrEmptyFile
	}
	if fh.Size > MaxFileSize {
		return "", "", ErrFileTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Detect MIME type from first 512 bytes
	buf := make([]byte, 512)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", "", fmt.Errorf("failed to read file: %w", err)
	}
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !AllowedMimeTypes[mimeType] {
		return "", "", ErrInvalidMimeType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("failed to rewind file: %w", err)
	}

	// uploads/YYYY/MM/DD/
	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := filepath.Ext(fh.Filename)
	if ext == "" {
		ext = mimeToExt(mimeType)
	}
	filename := uuid.New().String() + ext

	absPath = filepath.Join(absDir, filename)
	dst, err := os.Create(absPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(absPath)
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}

	urlPath = s.staticBase + "/" + relDir + "/" + filename
	return urlPath, absPath, nil
}

func mimeToExt(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ""
}
