package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type AgentConfig struct {
	ID          int
	Name        string
	Duration    time.Duration
	Cutoff      int
	Exploration float64
	Knowledge   bool
	Heuristics  bool
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID of the first player
	Agent2 int // AgentConfig.ID of the second player
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory for one run under root.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "duration", "cutoff", "exploration", "knowledge", "heuristics"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Duration.String(),
			strconv.Itoa(config.Cutoff),
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
			strconv.FormatBool(config.Knowledge),
			strconv.FormatBool(config.Heuristics),
		})
	}
	return w.write("agent_configs.csv", "agent configs", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingPlayer),
			strconv.Itoa(record.Winner),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", "game records", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "column", "heuristic", "duration", "episodes", "full_playouts", "knowledge_hits", "tree_size", "max_depth"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Column),
			record.Heuristic,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.KnowledgeHits),
			strconv.Itoa(record.TreeSize),
			strconv.Itoa(record.MaxDepth),
		})
	}
	return w.write("move_records.csv", "move records", header, rows)
}

func (w *Writer) write(file, what string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", what, err)
	}
	return writeCSV(f, what, header, rows)
}

// writeCSV writes header and rows to out and always closes it.
func writeCSV(out io.WriteCloser, what string, header []string, rows [][]string) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(header); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s header: %w", what, err)
	}

	if err := writer.WriteAll(rows); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s rows: %w", what, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s file: %w", what, err)
	}
	return nil
}
