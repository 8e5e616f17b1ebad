package survey

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ReaderFactory creates a Reader from load settings
type ReaderFactory func(settings Settings) (Reader, error)

// Registry manages reader factories per export format
type Registry interface {
	// Register adds a new format reader factory
	Register(format string, factory ReaderFactory) error
	// Create instantiates a reader for the format
	Create(format string, settings Settings) (Reader, error)
	// ListFormats returns the registered formats, sorted
	ListFormats() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]ReaderFactory
}

// NewRegistry creates a registry pre-populated with the given factories
func NewRegistry(factories map[string]ReaderFactory) Registry {
	r := &registry{
		factories: make(map[string]ReaderFactory, len(factories)),
	}
	for format, factory := range factories {
		r.factories[format] = factory
	}
	return r
}

// DefaultRegistry knows the csv and xlsx readers
func DefaultRegistry() Registry {
	return NewRegistry(map[string]ReaderFactory{
		FormatCSV:  CSVReaderFactory,
		FormatXLSX: XLSXReaderFactory,
	})
}

func (r *registry) Register(format string, factory ReaderFactory) error {
	if format == "" {
		return fmt.Errorf("format name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[format]; exists {
		return fmt.Errorf("format %q is already registered", format)
	}

	r.factories[format] = factory
	return nil
}

func (r *registry) Create(format string, settings Settings) (Reader, error) {
	r.mu.RLock()
	factory, exists := r.factories[format]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("format %q is not registered", format)
	}

	return factory(settings)
}

func (r *registry) ListFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.factories))
	for format := range r.factories {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

// FormatFromPath infers the export format from the file extension
func FormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "xlsx", "xlsm":
		return FormatXLSX
	case "csv", "txt":
		return FormatCSV
	}
	return ext
}
