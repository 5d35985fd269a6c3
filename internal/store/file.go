package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"thirdcoast.systems/redline/internal/labeling"
	"thirdcoast.systems/redline/pkg/tabular"
)

// FileStore keeps the labeled dataset in a single delimited file that is
// rewritten wholesale on every save. The delimiter follows the file
// extension (.csv or .tsv). Portable and diff-friendly, but last writer
// wins: nothing locks the file against other processes.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Kind() string { return "file" }

// Load reads the persisted label per (videoId, text_original) key. A file
// that is missing, unparseable or lacking the key columns yields an empty
// set: the operator can keep labeling, and Save will refuse to overwrite a
// file it cannot fully read.
func (s *FileStore) Load(ctx context.Context) (labeling.LabelSet, error) {
	set, _, err := s.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return labeling.LabelSet{}, nil
		}
		slog.Warn("existing labels unreadable, starting from empty", "path", s.Path, "error", err)
		return labeling.LabelSet{}, nil
	}
	return set, nil
}

// Save rewrites the file. Prior rows whose key appears in the view are
// replaced by the view's rows, unlabeled view rows are dropped, and prior
// rows outside the view are carried forward unchanged. Keys match on exact
// (videoId, text_original) pairs. The rewrite goes through a temp file in
// the same directory, so a failed save leaves the prior file untouched.
func (s *FileStore) Save(ctx context.Context, view *labeling.View) (SaveResult, error) {
	_, priorTable, err := s.read()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return SaveResult{}, fmt.Errorf("read existing labels: %w", err)
	}

	inView := make(map[labeling.Key]bool, len(view.Rows))
	for _, row := range view.Rows {
		inView[row.Key] = true
	}

	columns := outputColumns(priorTable, view.Columns)
	out := &tabular.Table{Columns: columns}

	var res SaveResult
	if priorTable != nil {
		textIdx := priorTable.ColumnIndex(labeling.ColumnText)
		videoIdx := priorTable.ColumnIndex(labeling.ColumnVideoID)
		for _, rec := range priorTable.Rows {
			key := labeling.Key{VideoID: rec[videoIdx], Text: rec[textIdx]}
			if inView[key] {
				continue
			}
			padded := make([]string, len(columns))
			copy(padded, rec)
			out.Rows = append(out.Rows, padded)
			res.Kept++
		}
	}

	labelIdx := out.ColumnIndex(labeling.ColumnLabel)
	for _, row := range view.Rows {
		if !row.Label.Assigned() {
			res.Dropped++
			continue
		}
		rec := make([]string, len(columns))
		for i, col := range columns {
			rec[i] = row.Fields[col]
		}
		rec[labelIdx] = row.Label.String()
		out.Rows = append(out.Rows, rec)
		res.Saved++
	}
	res.Total = len(out.Rows)

	if err := s.rewrite(out); err != nil {
		return SaveResult{}, err
	}
	return res, nil
}

// read parses the whole file strictly: key and label columns must exist and
// every label cell must parse.
func (s *FileStore) read() (labeling.LabelSet, *tabular.Table, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, nil, err
	}

	tbl, err := tabular.Read(s.Path, bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}

	textIdx := tbl.ColumnIndex(labeling.ColumnText)
	videoIdx := tbl.ColumnIndex(labeling.ColumnVideoID)
	labelIdx := tbl.ColumnIndex(labeling.ColumnLabel)
	if textIdx < 0 || videoIdx < 0 || labelIdx < 0 {
		return nil, nil, fmt.Errorf("labels file lacks the %s, %s or %s column",
			labeling.ColumnText, labeling.ColumnVideoID, labeling.ColumnLabel)
	}

	set := make(labeling.LabelSet, tbl.Len())
	for i, rec := range tbl.Rows {
		label, err := labeling.ParseLabel(rec[labelIdx])
		if err != nil {
			return nil, nil, fmt.Errorf("labels file row %d: %w", i+1, err)
		}
		set[labeling.Key{VideoID: rec[videoIdx], Text: rec[textIdx]}] = label
	}
	return set, tbl, nil
}

func (s *FileStore) rewrite(out *tabular.Table) error {
	comma := ','
	if strings.HasSuffix(strings.ToLower(s.Path), ".tsv") {
		comma = '\t'
	}

	var buf bytes.Buffer
	if err := out.WriteDelimited(&buf, comma); err != nil {
		return fmt.Errorf("encode labels: %w", err)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp labels file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write labels: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close labels file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace labels file: %w", err)
	}
	return nil
}

// outputColumns unions the prior file's columns with the view's, prior
// order first, and guarantees a label column. Prior columns are kept
// verbatim so prior records stay positionally aligned.
func outputColumns(prior *tabular.Table, viewColumns []string) []string {
	var columns []string
	seen := make(map[string]bool)

	if prior != nil {
		for _, col := range prior.Columns {
			seen[col] = true
			columns = append(columns, col)
		}
	}
	for _, col := range viewColumns {
		if !seen[col] {
			seen[col] = true
			columns = append(columns, col)
		}
	}
	if !seen[labeling.ColumnLabel] {
		columns = append(columns, labeling.ColumnLabel)
	}
	return columns
}
