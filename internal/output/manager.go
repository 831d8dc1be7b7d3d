// internal/output/manager.go
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/valpere/SurveyRanker/internal/config"
	"github.com/valpere/SurveyRanker/pkg/types"
)

// Manager selects and drives the writer for the configured format.
type Manager struct {
	config config.OutputConfig
	path   string
}

// NewManager creates an output manager. The destination path is fixed at
// creation time so the caller can report it before and after the write.
func NewManager(cfg config.OutputConfig) (*Manager, error) {
	format := OutputFormat(cfg.Format)
	if _, ok := fileExtensions[format]; !ok {
		return nil, fmt.Errorf("unsupported output format: %s", cfg.Format)
	}

	return &Manager{
		config: cfg,
		path:   resolvePath(cfg, time.Now()),
	}, nil
}

// Path returns the destination the ranking will be written to.
func (m *Manager) Path() string {
	return m.path
}

// GetWriter returns the writer for the configured format.
func (m *Manager) GetWriter() (Writer, error) {
	switch OutputFormat(m.config.Format) {
	case FormatCSV:
		return NewCSVWriter(m.path)
	case FormatJSON:
		return NewJSONWriter(m.path)
	case FormatExcel:
		return NewExcelWriter(m.path, m.config.SheetName)
	case FormatSQLite:
		return NewSQLiteWriter(m.path, m.config.Table)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", m.config.Format)
	}
}

// WriteRanking writes the complete ranking using the configured format.
func (m *Manager) WriteRanking(rows []types.RankingRow) error {
	writer, err := m.GetWriter()
	if err != nil {
		return fmt.Errorf("failed to get writer: %w", err)
	}
	defer writer.Close()

	return writer.Write(rows)
}

// resolvePath determines the destination file. An empty path, or a path
// naming an existing directory, gets a generated filename embedding the
// generation timestamp.
func resolvePath(cfg config.OutputConfig, now time.Time) string {
	ext := fileExtensions[OutputFormat(cfg.Format)]
	generated := fmt.Sprintf("ranking_%s.%s", now.Format("20060102_150405"), ext)

	if cfg.File == "" {
		return generated
	}
	if info, err := os.Stat(cfg.File); err == nil && info.IsDir() {
		return filepath.Join(cfg.File, generated)
	}
	return cfg.File
}
