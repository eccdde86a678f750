// Package pagestore persists per-page document artifacts (page images and
// OCR region data) under the docsight home directory.
package pagestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docsight/docsight/internal/types"
)

const (
	// DefaultDirName is the default name for the docsight home directory.
	DefaultDirName = ".docsight"

	// DataDirName is the subdirectory for per-document page data.
	DataDirName = "data"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Store manages the docsight home directory layout:
//
//	~/.docsight/
//	  config.yaml
//	  data/{doc_id}/pages/page_0001.png
//	  data/{doc_id}/ocr/page_0001.json
type Store struct {
	path string
}

// New creates a Store rooted at path. If path is empty, uses ~/.docsight.
func New(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}
	return &Store{path: path}, nil
}

// Path returns the root path of the home directory.
func (s *Store) Path() string {
	return s.path
}

// DataPath returns the path to the data directory.
func (s *Store) DataPath() string {
	return filepath.Join(s.path, DataDirName)
}

// ConfigPath returns the path to the default config file.
func (s *Store) ConfigPath() string {
	return filepath.Join(s.path, ConfigFileName)
}

// ConfigExists returns true if the config file exists in the home directory.
func (s *Store) ConfigExists() bool {
	_, err := os.Stat(s.ConfigPath())
	return err == nil
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (s *Store) EnsureExists() error {
	if err := os.MkdirAll(s.DataPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// PageImagesDir returns the directory holding a document's page images.
func (s *Store) PageImagesDir(docID string) string {
	return filepath.Join(s.DataPath(), docID, "pages")
}

// PageImagePath returns the path to a page image. Pages are 1-indexed.
func (s *Store) PageImagePath(docID string, page int) string {
	return filepath.Join(s.PageImagesDir(docID), fmt.Sprintf("page_%04d.png", page))
}

// PageOCRDir returns the directory holding a document's OCR data.
func (s *Store) PageOCRDir(docID string) string {
	return filepath.Join(s.DataPath(), docID, "ocr")
}

// PageOCRPath returns the path to a page's OCR file. Pages are 1-indexed.
func (s *Store) PageOCRPath(docID string, page int) string {
	return filepath.Join(s.PageOCRDir(docID), fmt.Sprintf("page_%04d.json", page))
}

// SavePageImage writes PNG bytes for one page, creating directories as needed.
func (s *Store) SavePageImage(docID string, page int, data []byte) error {
	if err := os.MkdirAll(s.PageImagesDir(docID), 0o755); err != nil {
		return fmt.Errorf("failed to create pages directory: %w", err)
	}
	if err := os.WriteFile(s.PageImagePath(docID, page), data, 0o644); err != nil {
		return fmt.Errorf("failed to write page image: %w", err)
	}
	return nil
}

// GetPageImage reads PNG bytes for one page.
func (s *Store) GetPageImage(docID string, page int) ([]byte, error) {
	data, err := os.ReadFile(s.PageImagePath(docID, page))
	if err != nil {
		return nil, fmt.Errorf("failed to read page image: %w", err)
	}
	return data, nil
}

// SavePageOCR writes the OCR regions for one page as a JSON array, creating
// directories as needed.
func (s *Store) SavePageOCR(docID string, page int, regions []types.OCRTextRegion) error {
	if err := os.MkdirAll(s.PageOCRDir(docID), 0o755); err != nil {
		return fmt.Errorf("failed to create ocr directory: %w", err)
	}
	data, err := json.Marshal(regions)
	if err != nil {
		return fmt.Errorf("failed to marshal ocr regions: %w", err)
	}
	if err := os.WriteFile(s.PageOCRPath(docID, page), data, 0o644); err != nil {
		return fmt.Errorf("failed to write ocr data: %w", err)
	}
	return nil
}

// GetPageOCR reads the OCR regions for one page.
func (s *Store) GetPageOCR(docID string, page int) (*types.PageOCRData, error) {
	data, err := os.ReadFile(s.PageOCRPath(docID, page))
	if err != nil {
		return nil, fmt.Errorf("failed to read ocr data: %w", err)
	}
	var regions []types.OCRTextRegion
	if err := json.Unmarshal(data, &regions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ocr data: %w", err)
	}
	return &types.PageOCRData{Page: page, Regions: regions}, nil
}

// FetchPageOCR satisfies the grounding page fetcher using local storage.
func (s *Store) FetchPageOCR(_ context.Context, docID string, page int) (*types.PageOCRData, error) {
	return s.GetPageOCR(docID, page)
}

// PageCount reports the number of stored pages for a document: the larger
// of the image and OCR file counts, since either artifact may arrive first.
func (s *Store) PageCount(docID string) (int, error) {
	images, err := countFiles(s.PageImagesDir(docID), ".png")
	if err != nil {
		return 0, err
	}
	ocr, err := countFiles(s.PageOCRDir(docID), ".json")
	if err != nil {
		return 0, err
	}
	if ocr > images {
		return ocr, nil
	}
	return images, nil
}

// DeleteDocument removes all stored artifacts for a document.
func (s *Store) DeleteDocument(docID string) error {
	if err := os.RemoveAll(filepath.Join(s.DataPath(), docID)); err != nil {
		return fmt.Errorf("failed to delete document data: %w", err)
	}
	return nil
}

func countFiles(dir, ext string) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ext {
			count++
		}
	}
	return count, nil
}
