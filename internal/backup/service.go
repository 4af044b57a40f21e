package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// ErrUnknownCollection is returned when a backup names a collection the
// database does not have.
var ErrUnknownCollection = errors.New("collection does not exist")

// Dumper is the storage side of a backup: the tobacco collection can be
// listed, written out and read back.
type Dumper interface {
	ListCollections() ([]string, error)
	BackupCollection(collectionName string, writer io.Writer, format string) (int, error)
	RestoreCollection(collectionName string, reader io.Reader, format string, dropExisting bool) (int, error)
}

type Service struct {
	db  Dumper
	now func() time.Time
}

func NewService(db Dumper) *Service {
	return &Service{db: db, now: time.Now}
}

// FileName names a backup of collection taken at t.
func FileName(collection string, t time.Time, format string) string {
	return fmt.Sprintf("backup_%s_%s.%s", collection, t.Format("20060102_150405"), extension(format))
}

// CollectionFromFileName recovers the collection name from a FileName. The
// collection itself may contain underscores, so the timestamp is cut from
// the right.
func CollectionFromFileName(path string) string {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "backup_") {
		return ""
	}
	base = strings.TrimSuffix(strings.TrimPrefix(base, "backup_"), filepath.Ext(base))
	stamp := len("_20060102_150405")
	if len(base) <= stamp {
		return ""
	}
	name, ts := base[:len(base)-stamp], base[len(base)-stamp+1:]
	if _, err := time.Parse("20060102_150405", ts); err != nil {
		return ""
	}
	return name
}

// DetectFormat maps a file extension to a backup format.
func DetectFormat(path string) (string, error) {
	switch ext := filepath.Ext(path); ext {
	case ".bson":
		return "bson", nil
	case ".json":
		return "json", nil
	default:
		return "", fmt.Errorf("cannot auto-detect format from extension '%s'", ext)
	}
}

func extension(format string) string {
	if format == "json" {
		return "json"
	}
	return "bson"
}

func (s *Service) BackupCollection(collectionName, outputDir, format string) (string, int, error) {
	names, err := s.db.ListCollections()
	if err != nil {
		return "", 0, err
	}
	if !slices.Contains(names, collectionName) {
		return "", 0, fmt.Errorf("%w: %s", ErrUnknownCollection, collectionName)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outputDir, FileName(collectionName, s.now(), format))

	file, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create backup file: %w", err)
	}

	count, err := s.db.BackupCollection(collectionName, file, format)
	closeErr := file.Close()
	if err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("backup failed: %w", err)
	}

	return path, count, nil
}

func (s *Service) RestoreCollection(collectionName, inputFile, format string, dropExisting bool) (int, error) {
	file, err := os.Open(inputFile)
	if err != nil {
		return 0, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	count, err := s.db.RestoreCollection(collectionName, file, format, dropExisting)
	if err != nil {
		return count, fmt.Errorf("restore failed: %w", err)
	}

	return count, nil
}

func (s *Service) ValidateBackupFile(filename, expectedFormat string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("cannot open backup file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return fmt.Errorf("cannot get file info: %w", err)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("backup file is empty")
	}

	ext := filepath.Ext(filename)
	if expectedFormat == "json" && ext != ".json" {
		return fmt.Errorf("expected JSON file but got %s", ext)
	}
	if expectedFormat == "bson" && ext != ".bson" {
		return fmt.Errorf("expected BSON file but got %s", ext)
	}

	return nil
}
