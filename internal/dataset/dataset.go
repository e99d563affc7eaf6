// Package dataset loads the static fund fixture the dashboard is built from.
// A Dataset is constructed once and never mutated; accessors hand out copies.
package dataset

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/wonny/pmanalytics/internal/contracts"
)

// EmbeddedSource is the Source() of the built-in fixture
const EmbeddedSource = "embedded:funds.yaml"

//go:embed funds.yaml
var embeddedFunds []byte

// ErrDuplicateID is returned when two records share an identifier
var ErrDuplicateID = errors.New("duplicate fund id")

// Dataset is an immutable, ordered snapshot of fund records
type Dataset struct {
	funds  []contracts.FundRecord
	hash   string
	source string
}

// fixtureFile mirrors the YAML layout
type fixtureFile struct {
	Funds []fixtureFund `yaml:"funds"`
}

type fixtureFund struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Strategy    string  `yaml:"strategy"`
	VintageYear int     `yaml:"vintage_year"`
	Geography   string  `yaml:"geography"`
	FundSizeUSD string  `yaml:"fund_size_usd"`
	Confidence  float64 `yaml:"confidence"`
	Source      string  `yaml:"source"`
}

// New builds a Dataset from already constructed records.
// The slice is copied; identifiers must be unique.
func New(funds []contracts.FundRecord, source string) (*Dataset, error) {
	seen := make(map[string]struct{}, len(funds))
	for _, f := range funds {
		if _, dup := seen[f.ID()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, f.ID())
		}
		seen[f.ID()] = struct{}{}
	}

	owned := make([]contracts.FundRecord, len(funds))
	copy(owned, funds)

	hash, err := hashFunds(owned)
	if err != nil {
		return nil, fmt.Errorf("hash dataset: %w", err)
	}

	return &Dataset{funds: owned, hash: hash, source: source}, nil
}

// Parse decodes a YAML fixture.
// KnownFields(true): 오타/미사용 필드는 즉시 실패
func Parse(data []byte, source string) (*Dataset, error) {
	var file fixtureFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}

	funds := make([]contracts.FundRecord, 0, len(file.Funds))
	for i, raw := range file.Funds {
		size, err := decimal.NewFromString(raw.FundSizeUSD)
		if err != nil {
			return nil, fmt.Errorf("%s: fund #%d (%s): fund_size_usd %q: %w", source, i, raw.ID, raw.FundSizeUSD, err)
		}

		f, err := contracts.NewFundRecord(contracts.FundInput{
			ID:          raw.ID,
			Name:        raw.Name,
			Strategy:    raw.Strategy,
			VintageYear: raw.VintageYear,
			Geography:   raw.Geography,
			FundSize:    size,
			Confidence:  raw.Confidence,
			Source:      raw.Source,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: fund #%d: %w", source, i, err)
		}
		funds = append(funds, f)
	}

	return New(funds, source)
}

// Load reads and parses a YAML fixture file
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(data, path)
}

// Default returns the fixture compiled into the binary
func Default() (*Dataset, error) {
	return Parse(embeddedFunds, EmbeddedSource)
}

// Open loads path, or the embedded fixture when path is empty
func Open(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Funds returns a copy of the records in fixture order
func (d *Dataset) Funds() []contracts.FundRecord {
	out := make([]contracts.FundRecord, len(d.funds))
	copy(out, d.funds)
	return out
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.funds)
}

// Hash returns the SHA-256 of the canonical JSON of the records
func (d *Dataset) Hash() string {
	return d.hash
}

// Source returns where the dataset was loaded from
func (d *Dataset) Source() string {
	return d.source
}

// hashFunds hashes the records through their JSON views (struct order is stable)
func hashFunds(funds []contracts.FundRecord) (string, error) {
	views := make([]contracts.FundView, len(funds))
	for i, f := range funds {
		views[i] = f.View()
	}

	jsonBytes, err := json.Marshal(views)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
