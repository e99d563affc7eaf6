package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/pmanalytics/internal/dashboard"
	"github.com/wonny/pmanalytics/internal/dataset"
	"github.com/wonny/pmanalytics/internal/metrics"
	"github.com/wonny/pmanalytics/pkg/logger"
)

func snapshot(t *testing.T) *dashboard.Snapshot {
	t.Helper()
	ds, err := dataset.Default()
	require.NoError(t, err)
	return dashboard.Build(ds, dashboard.DefaultOptions())
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	snap := snapshot(t)

	m, err := New(logger.Nop()).Write(context.Background(), snap, dir)
	require.NoError(t, err)

	_, err = uuid.Parse(m.BuildID)
	assert.NoError(t, err, "build id is a uuid")
	assert.Equal(t, snap.DatasetHash(), m.DatasetHash)
	assert.Equal(t, 16, m.FundCount)

	names := make([]string, len(m.Files))
	for i, f := range m.Files {
		names[i] = f.Name
	}
	assert.Equal(t, []string{
		DashboardFile, FundsFile, ChartsFile,
		"geography-donut.svg", "strategy-bars.svg", "strategy-donut.svg", "vintage-overlay.svg",
	}, names)

	for _, f := range m.Files {
		data, err := os.ReadFile(filepath.Join(dir, f.Name))
		require.NoError(t, err, f.Name)
		sum := sha256.Sum256(data)
		assert.Equal(t, hex.EncodeToString(sum[:]), f.SHA256, f.Name)
		assert.Equal(t, len(data), f.Bytes, f.Name)
	}

	read, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, m.BuildID, read.BuildID)
	assert.Len(t, read.Files, len(m.Files))
}

func TestWrite_DashboardRoundTrip(t *testing.T) {
	dir := t.TempDir()
	snap := snapshot(t)

	_, err := New(logger.Nop()).Write(context.Background(), snap, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, DashboardFile))
	require.NoError(t, err)

	var got metrics.Dashboard
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, snap.Summary().TotalFunds, got.Summary.TotalFunds)
	assert.True(t, snap.Summary().TotalAUM.Equal(got.Summary.TotalAUM))
	assert.Len(t, got.ByStrategy, len(snap.Dashboard().ByStrategy))

	data, err = os.ReadFile(filepath.Join(dir, FundsFile))
	require.NoError(t, err)

	var doc FundsDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Funds, 16)
	assert.Equal(t, snap.Strategies(), doc.Strategies)
}

func TestWrite_FixedClockAndID(t *testing.T) {
	e := New(logger.Nop())
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e.now = func() time.Time { return fixed }
	e.newID = func() string { return "build-1" }

	m, err := e.Write(context.Background(), snapshot(t), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "build-1", m.BuildID)
	assert.Equal(t, fixed, m.GeneratedAt)
}

func TestWrite_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	_, err := New(logger.Nop()).Write(ctx, snapshot(t), dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = os.Stat(filepath.Join(dir, ManifestFile))
	assert.True(t, os.IsNotExist(err), "no manifest for an incomplete bundle")
}

func TestReadManifest_Missing(t *testing.T) {
	_, err := ReadManifest(t.TempDir())
	assert.Error(t, err)
}
