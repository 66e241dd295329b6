package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"jobhunter/internal/logging/types"
)

// FileAdapter implements the LogAdapter interface for file output
type FileAdapter struct {
	name    string
	config  FileConfig
	file    *os.File
	written int64
	mu      sync.Mutex
}

// FileConfig represents configuration for the file adapter
type FileConfig struct {
	FilePath   string `yaml:"file_path"`
	Format     string `yaml:"format"` // json or text
	MaxSize    int64  `yaml:"max_size"` // bytes, 0 = unbounded
	CreateDirs bool   `yaml:"create_dirs"`
}

// NewFileAdapter creates a new file adapter
func NewFileAdapter(name string, config FileConfig) (*FileAdapter, error) {
	if config.FilePath == "" {
		return nil, fmt.Errorf("file_path is required for file adapter")
	}

	if config.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	a := &FileAdapter{name: name, config: config}
	if err := a.open(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *FileAdapter) open() error {
	file, err := os.OpenFile(a.config.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	a.file = file
	a.written = info.Size()
	return nil
}

// Write writes a log entry to the file, rotating once past MaxSize.
func (a *FileAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var output string
	var err error

	switch a.config.Format {
	case "text":
		output = formatText(entry)
	default:
		output, err = formatJSON(entry)
	}
	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}

	if a.config.MaxSize > 0 && a.written+int64(len(output))+1 > a.config.MaxSize {
		if err := a.rotate(); err != nil {
			return err
		}
	}

	n, err := fmt.Fprintln(a.file, output)
	a.written += int64(n)
	return err
}

// rotate renames the current file with a .1 suffix and reopens a fresh one.
func (a *FileAdapter) rotate() error {
	if err := a.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file for rotation: %w", err)
	}
	if err := os.Rename(a.config.FilePath, a.config.FilePath+".1"); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	return a.open()
}

// Close closes the underlying file.
func (a *FileAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	return err
}

// Name returns the name of the adapter
func (a *FileAdapter) Name() string {
	return a.name
}
