// Package export writes a dashboard Snapshot as a static asset bundle:
// JSON data files, pre-rendered SVG charts and a manifest describing them.
package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/pmanalytics/internal/contracts"
	"github.com/wonny/pmanalytics/internal/dashboard"
	"github.com/wonny/pmanalytics/pkg/logger"
)

// Bundle file names
const (
	DashboardFile = "dashboard.json"
	FundsFile     = "funds.json"
	ChartsFile    = "charts.json"
	ManifestFile  = "manifest.json"
)

// FileEntry describes one written file
type FileEntry struct {
	Name   string `json:"name"`
	Bytes  int    `json:"bytes"`
	SHA256 string `json:"sha256"`
}

// Manifest describes one export run
type Manifest struct {
	BuildID       string      `json:"build_id"`
	GeneratedAt   time.Time   `json:"generated_at"`
	DatasetHash   string      `json:"dataset_hash"`
	DatasetSource string      `json:"dataset_source"`
	FundCount     int         `json:"fund_count"`
	Files         []FileEntry `json:"files"`
}

// FundsDocument is the content of funds.json
type FundsDocument struct {
	Strategies []string             `json:"strategies"`
	Funds      []contracts.FundView `json:"funds"`
}

// Exporter writes bundles
type Exporter struct {
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

// New creates an Exporter
func New(log *logger.Logger) *Exporter {
	return &Exporter{
		log:   log.Component("export"),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
}

// Write renders snap into dir (created if missing) and returns the manifest.
// manifest.json is written last so its presence marks a complete bundle.
func (e *Exporter) Write(ctx context.Context, snap *dashboard.Snapshot, dir string) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	list := snap.Funds()
	views := make([]contracts.FundView, len(list))
	for i, f := range list {
		views[i] = f.View()
	}

	manifest := &Manifest{
		BuildID:       e.newID(),
		GeneratedAt:   e.now(),
		DatasetHash:   snap.DatasetHash(),
		DatasetSource: snap.DatasetSource(),
		FundCount:     len(list),
		Files:         []FileEntry{},
	}

	log := e.log.WithFields(map[string]interface{}{
		"build_id": manifest.BuildID,
		"dir":      dir,
	})
	log.Info("Export started")

	jsonDocs := []struct {
		name string
		v    interface{}
	}{
		{DashboardFile, snap.Dashboard()},
		{FundsFile, FundsDocument{Strategies: snap.Strategies(), Funds: views}},
		{ChartsFile, snap.Charts()},
	}

	for _, doc := range jsonDocs {
		data, err := json.MarshalIndent(doc.v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", doc.name, err)
		}
		entry, err := e.writeFile(ctx, dir, doc.name, data)
		if err != nil {
			return nil, err
		}
		manifest.Files = append(manifest.Files, entry)
	}

	for _, name := range snap.ChartNames() {
		svg, _ := snap.SVG(name)
		entry, err := e.writeFile(ctx, dir, name+".svg", []byte(svg))
		if err != nil {
			return nil, err
		}
		manifest.Files = append(manifest.Files, entry)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if _, err := e.writeFile(ctx, dir, ManifestFile, data); err != nil {
		return nil, err
	}

	log.WithField("files", len(manifest.Files)+1).Info("Export completed")
	return manifest, nil
}

func (e *Exporter) writeFile(ctx context.Context, dir, name string, data []byte) (FileEntry, error) {
	if err := ctx.Err(); err != nil {
		return FileEntry{}, fmt.Errorf("export %s: %w", name, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return FileEntry{}, fmt.Errorf("write %s: %w", name, err)
	}

	sum := sha256.Sum256(data)
	e.log.WithField("file", name).Debug("File written")

	return FileEntry{Name: name, Bytes: len(data), SHA256: hex.EncodeToString(sum[:])}, nil
}

// ReadManifest loads manifest.json from an export dir
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}
