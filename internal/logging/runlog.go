package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"bitga/internal/experiment"
)

// RunLog writes one CSV row and one JSON line per generation.
// It is safe for concurrent use by the runs of an experiment.
type RunLog struct {
	csvPath  string
	jsonPath string

	mu        sync.Mutex
	csvFile   *os.File
	csvWriter *csv.Writer
	jsonFile  *os.File
	jsonEnc   *json.Encoder
	err       error
}

// GenerationRecord holds per-generation statistics
type GenerationRecord struct {
	Run          int     `json:"run"`
	Seed         int64   `json:"seed"`
	Generation   int     `json:"generation"`
	BestFitness  float64 `json:"best_fitness"`
	MeanFitness  float64 `json:"mean_fitness"`
	TotalFitness float64 `json:"total_fitness"`
	BestGenes    string  `json:"best_genes"`
	Solved       bool    `json:"solved"`
}

var csvHeader = []string{
	"run", "seed", "generation", "best_fitness", "mean_fitness", "total_fitness", "best_genes", "solved",
}

// NewRunLog creates a run log. An empty path disables that sink.
func NewRunLog(csvPath, jsonPath string) *RunLog {
	return &RunLog{
		csvPath:  csvPath,
		jsonPath: jsonPath,
	}
}

// Init creates the parent directories and truncates the log files.
// On failure every file it opened is closed again.
func (l *RunLog) Init() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.open(); err != nil {
		l.release()
		return err
	}
	return nil
}

func (l *RunLog) open() error {
	if l.csvPath != "" {
		f, err := create(l.csvPath)
		if err != nil {
			return err
		}
		l.csvFile = f
		l.csvWriter = csv.NewWriter(f)
		if err := l.csvWriter.Write(csvHeader); err != nil {
			return err
		}
	}

	if l.jsonPath != "" {
		f, err := create(l.jsonPath)
		if err != nil {
			return err
		}
		l.jsonFile = f
		l.jsonEnc = json.NewEncoder(f)
	}
	return nil
}

func (l *RunLog) release() {
	if l.csvFile != nil {
		_ = l.csvFile.Close()
	}
	if l.jsonFile != nil {
		_ = l.jsonFile.Close()
	}
	l.csvFile, l.csvWriter = nil, nil
	l.jsonFile, l.jsonEnc = nil, nil
}

func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
}

// ObserveGeneration appends the generation record to both sinks
func (l *RunLog) ObserveGeneration(ev experiment.Event) {
	rec := GenerationRecord{
		Run:          ev.Run,
		Seed:         ev.Seed,
		Generation:   ev.Population.Generation(),
		BestFitness:  ev.Best.Fitness(),
		MeanFitness:  ev.Population.MeanFitness(),
		TotalFitness: ev.Population.TotalFitness(),
		BestGenes:    ev.Best.String(),
		Solved:       ev.Solved,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.csvWriter != nil {
		row := []string{
			strconv.Itoa(rec.Run),
			strconv.FormatInt(rec.Seed, 10),
			strconv.Itoa(rec.Generation),
			fmt.Sprintf("%.2f", rec.BestFitness),
			fmt.Sprintf("%.4f", rec.MeanFitness),
			fmt.Sprintf("%.2f", rec.TotalFitness),
			rec.BestGenes,
			strconv.FormatBool(rec.Solved),
		}
		l.keep(l.csvWriter.Write(row))
	}
	if l.jsonEnc != nil {
		l.keep(l.jsonEnc.Encode(rec))
	}
}

// ObserveRun flushes buffered rows at the end of a run
func (l *RunLog) ObserveRun(experiment.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.csvWriter != nil {
		l.csvWriter.Flush()
		l.keep(l.csvWriter.Error())
	}
}

// keep remembers the first write error; Close reports it.
func (l *RunLog) keep(err error) {
	if err != nil && l.err == nil {
		l.err = err
	}
}

// Close flushes and closes all log files
func (l *RunLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.csvWriter != nil {
		l.csvWriter.Flush()
		l.keep(l.csvWriter.Error())
	}
	if l.csvFile != nil {
		l.keep(l.csvFile.Close())
	}
	if l.jsonFile != nil {
		l.keep(l.jsonFile.Close())
	}
	return l.err
}

// Dumper prints every generation in the population report format
type Dumper struct {
	mu sync.Mutex
	w  io.Writer
}

// NewDumper creates a population dumper writing to w
func NewDumper(w io.Writer) *Dumper {
	return &Dumper{w: w}
}

// ObserveGeneration prints the population report of the generation
func (d *Dumper) ObserveGeneration(ev experiment.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.w, ev.Population.String())
}

// ObserveRun prints how the run ended
func (d *Dumper) ObserveRun(res experiment.Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.w, "--------------------")
	if res.Solved {
		fmt.Fprintf(d.w, "End! all ones found at generation %d\n", res.Generation)
	} else {
		fmt.Fprintf(d.w, "Stopped at generation %d without finding all ones\n", res.Generation)
	}
}

// SaveSummary saves the experiment summary to a file
func SaveSummary(path string, summary experiment.Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, jsonData, 0644)
}

// LoadSummary reads a summary written by SaveSummary
func LoadSummary(path string) (experiment.Summary, error) {
	var s experiment.Summary
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, err
	}
	return s, nil
}
