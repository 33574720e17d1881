package metrics

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type GameRecord struct {
	Opponents string // Agent kind seated after seat 0
	GameMetric
}

type MoveRecord struct {
	Game string // GameMetric.ID
	MoveMetric
}

type Writer struct {
	baseDir string
	create  func(path string) (io.WriteCloser, error)
}

func createFile(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// NewWriter creates a subfolder of dir named by the current timestamp.
func NewWriter(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create directory")
	}
	return &Writer{baseDir: baseDir, create: createFile}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "players", "opponents", "winner", "scores", "moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		scores := make([]string, len(record.Scores))
		for i, s := range record.Scores {
			scores[i] = strconv.Itoa(s)
		}
		rows = append(rows, []string{
			record.ID,
			strconv.Itoa(record.Players),
			record.Opponents,
			strconv.Itoa(record.Winner),
			strings.Join(scores, ";"),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "action", "duration", "episodes", "full_playouts", "cutoff",
		"tree_size", "stop_reason", "root_playouts", "best_q", "bootstrap", "fallback"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Action,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.Cutoff),
			strconv.Itoa(record.TreeSize),
			record.StopReason,
			strconv.Itoa(record.RootPlayouts),
			strconv.FormatFloat(record.BestQ, 'f', 4, 64),
			strconv.FormatBool(record.Bootstrap),
			strconv.FormatBool(record.Fallback),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) (err error) {
	path := filepath.Join(w.baseDir, name)
	f, err := w.create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", name)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", name)
		}
	}()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return errors.Wrapf(err, "failed to write %s header", name)
	}
	if err := writer.WriteAll(rows); err != nil {
		return errors.Wrapf(err, "failed to write %s rows", name)
	}
	return nil
}
