package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/loewner/internal/config"
	"github.com/san-kum/loewner/internal/experiment"
	"github.com/san-kum/loewner/internal/loewner"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string               `json:"id"`
	Domain    string               `json:"domain"`
	Source    string               `json:"source"`
	Timestamp time.Time            `json:"timestamp"`
	Seed      int64                `json:"seed"`
	Points    int                  `json:"points"`
	Tf        float64              `json:"tf"`
	Width     float64              `json:"width,omitempty"`
	Drive     config.DrivingConfig `json:"drive"`
	Elapsed   time.Duration        `json:"elapsed"`
	Metrics   map[string]float64   `json:"metrics"`
}

func (s *Store) Save(cfg *config.Config, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", result.Domain, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Domain:    result.Domain,
		Source:    result.Source,
		Timestamp: time.Now(),
		Seed:      result.Seed,
		Points:    len(result.Trace),
		Tf:        cfg.Tf,
		Drive:     cfg.Drive,
		Elapsed:   result.Elapsed,
		Metrics:   result.Metrics,
	}
	if result.Domain == "dipolar" {
		meta.Width = cfg.Width
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, traceFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result.Times, result.Drive, result.Trace); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteCSV writes one row per sample: time, drive, re(z), im(z).
func WriteCSV(out io.Writer, t loewner.Times, u loewner.Drive, z loewner.Trace) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"time", "drive", "re", "im"}); err != nil {
		return err
	}
	for i := range z {
		row := []string{
			strconv.FormatFloat(t[i], 'g', -1, 64),
			strconv.FormatFloat(u[i], 'g', -1, 64),
			strconv.FormatFloat(real(z[i]), 'g', -1, 64),
			strconv.FormatFloat(imag(z[i]), 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrace(runID string) (loewner.Times, loewner.Drive, loewner.Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses the format written by WriteCSV.
func ReadCSV(in io.Reader) (loewner.Times, loewner.Drive, loewner.Trace, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return loewner.Times{}, loewner.Drive{}, loewner.Trace{}, nil
	}

	n := len(records) - 1
	t := make(loewner.Times, n)
	u := make(loewner.Drive, n)
	z := make(loewner.Trace, n)

	for i, record := range records[1:] {
		var vals [4]float64
		for j := range vals {
			vals[j], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		t[i], u[i], z[i] = vals[0], vals[1], complex(vals[2], vals[3])
	}

	return t, u, z, nil
}
