package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/chainsim/internal/motion"
	"github.com/san-kum/chainsim/internal/scenario"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Frames     int                `json:"frames"`
	Count      int                `json:"count"`
	Mode       string             `json:"mode"`
	Container  motion.Size        `json:"container"`
	Permission string             `json:"permission"`
	Settle     int                `json:"settle"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes meta and the per-frame positions of result under a new run id.
// ID, Timestamp, Frames and Metrics are filled from the result.
func (s *Store) Save(meta RunMetadata, result *scenario.Result) (string, error) {
	ts := s.now()
	name := slug(meta.Name)
	runID := fmt.Sprintf("%s_%d", name, ts.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for i := 2; exists(runDir); i++ {
		runID = fmt.Sprintf("%s_%d_%d", name, ts.Unix(), i)
		runDir = filepath.Join(s.baseDir, runID)
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = ts
	meta.Frames = len(result.Frames)
	meta.Metrics = result.Metrics
	meta.Container = result.Container
	meta.Permission = result.Permission
	meta.Settle = result.Settle

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "positions.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := writePositions(w, result); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return runID, nil
}

func writePositions(w *csv.Writer, result *scenario.Result) error {
	if len(result.Frames) == 0 {
		return nil
	}
	n := len(result.Frames[0])
	header := []string{"frame", "target_x", "target_y"}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for f, pos := range result.Frames {
		var target motion.Vec2
		if f < len(result.Targets) {
			target = result.Targets[f]
		}
		row := []string{strconv.Itoa(f), format(target.X), format(target.Y)}
		for _, p := range pos {
			row = append(row, format(p.X), format(p.Y))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns every readable run, newest first.
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
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadPositions reads back the per-frame node positions and targets of a run.
func (s *Store) LoadPositions(runID string) ([][]motion.Vec2, []motion.Vec2, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "positions.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]motion.Vec2{}, []motion.Vec2{}, nil
	}

	frames := make([][]motion.Vec2, 0, len(records)-1)
	targets := make([]motion.Vec2, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		vals := make([]float64, len(record)-1)
		bad := false
		for j := range vals {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				bad = true
				break
			}
			vals[j] = v
		}
		if bad {
			continue
		}
		targets = append(targets, motion.Vec2{X: vals[0], Y: vals[1]})
		pos := make([]motion.Vec2, 0, (len(vals)-2)/2)
		for j := 2; j+1 < len(vals); j += 2 {
			pos = append(pos, motion.Vec2{X: vals[j], Y: vals[j+1]})
		}
		frames = append(frames, pos)
	}
	return frames, targets, nil
}

func slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "run"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '-'
	}, name)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
