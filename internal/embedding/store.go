package embedding

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current model file layout. Bump this when the schema changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates a model file written with a different layout.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrLocked reports a model file that another process is writing.
var ErrLocked = errors.New("model file is locked")

const (
	metaFeatures   = "features"
	metaMinCount   = "min_count"
	metaWindow     = "window"
	metaWorkers    = "workers"
	metaEpochs     = "epochs"
	metaDownsample = "downsample"
	metaModelType  = "model_type"
	metaOptimizer  = "optimizer"
	metaRunID      = "run_id"
	metaSentences  = "sentences"
	metaTrainedAt  = "trained_at"
	metaDim        = "dim"
)

// Save writes m to path, replacing any existing file. The file is built
// next to path and renamed into place while holding <path>.lock.
func Save(ctx context.Context, path string, m *Model) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	if m.Len() == 0 {
		return errors.New("save model: empty vocabulary")
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock model file: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLocked, path)
	}
	defer func() { _ = lock.Unlock() }()

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".partial")
	_ = os.Remove(tmp)
	if err := writeModel(ctx, tmp, m); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace model file: %w", err)
	}
	return nil
}

func writeModel(ctx context.Context, path string, m *Model) error {
	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin model tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	metaStmt, err := tx.PrepareContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare meta insert: %w", err)
	}
	defer metaStmt.Close()
	for key, value := range encodeMeta(m.Meta, m.Dim()) {
		if _, err := metaStmt.ExecContext(ctx, key, value); err != nil {
			return fmt.Errorf("insert meta %s: %w", key, err)
		}
	}

	vecStmt, err := tx.PrepareContext(ctx, "INSERT INTO vectors (word, position, vector) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare vector insert: %w", err)
	}
	defer vecStmt.Close()
	for i, word := range m.Words {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if _, err := vecStmt.ExecContext(ctx, word, i, encodeVector(m.Vectors[i])); err != nil {
			return fmt.Errorf("insert vector %q: %w", word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit model: %w", err)
	}
	return nil
}

// Load reads a model file written by Save.
func Load(ctx context.Context, path string) (*Model, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open model: %s is a directory", path)
	}

	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := checkSchema(ctx, db); err != nil {
		return nil, err
	}

	meta, dim, err := loadMeta(ctx, db)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT word, vector FROM vectors ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query vectors: %w", err)
	}
	defer rows.Close()

	m := &Model{Meta: meta}
	for rows.Next() {
		var (
			word string
			blob []byte
		)
		if err := rows.Scan(&word, &blob); err != nil {
			return nil, fmt.Errorf("scan vector: %w", err)
		}
		vec, err := decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("decode vector %q: %w", word, err)
		}
		if dim > 0 && len(vec) != dim {
			return nil, fmt.Errorf("vector %q has %d dimensions, want %d", word, len(vec), dim)
		}
		m.Words = append(m.Words, word)
		m.Vectors = append(m.Vectors, vec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vectors: %w", err)
	}
	return m, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=DELETE",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	return db, nil
}

func checkSchema(ctx context.Context, db *sql.DB) error {
	var tableExists int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return errors.New("not a model file: schema_version table missing")
	}

	var version int
	if err := db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: model file has version %d, expected %d (retrain the model)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func encodeMeta(meta Meta, dim int) map[string]string {
	values := map[string]string{
		metaFeatures:   strconv.Itoa(meta.Features),
		metaMinCount:   strconv.Itoa(meta.MinCount),
		metaWindow:     strconv.Itoa(meta.Window),
		metaWorkers:    strconv.Itoa(meta.Workers),
		metaEpochs:     strconv.Itoa(meta.Epochs),
		metaDownsample: strconv.FormatFloat(meta.Downsample, 'g', -1, 64),
		metaModelType:  meta.ModelType,
		metaOptimizer:  meta.Optimizer,
		metaRunID:      meta.RunID,
		metaSentences:  strconv.Itoa(meta.Sentences),
		metaDim:        strconv.Itoa(dim),
	}
	if !meta.TrainedAt.IsZero() {
		values[metaTrainedAt] = meta.TrainedAt.UTC().Format(time.RFC3339Nano)
	}
	return values
}

func loadMeta(ctx context.Context, db *sql.DB) (Meta, int, error) {
	rows, err := db.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return Meta{}, 0, fmt.Errorf("query meta: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Meta{}, 0, fmt.Errorf("scan meta: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return Meta{}, 0, fmt.Errorf("iterate meta: %w", err)
	}

	atoi := func(key string) int {
		n, _ := strconv.Atoi(values[key])
		return n
	}
	meta := Meta{
		Features:  atoi(metaFeatures),
		MinCount:  atoi(metaMinCount),
		Window:    atoi(metaWindow),
		Workers:   atoi(metaWorkers),
		Epochs:    atoi(metaEpochs),
		ModelType: values[metaModelType],
		Optimizer: values[metaOptimizer],
		RunID:     values[metaRunID],
		Sentences: atoi(metaSentences),
	}
	if raw := values[metaDownsample]; raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			meta.Downsample = v
		}
	}
	if raw := values[metaTrainedAt]; raw != "" {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			meta.TrainedAt = ts
		}
	}
	return meta, atoi(metaDim), nil
}

func encodeVector(vec []float64) []byte {
	buf := make([]byte, 8*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

func decodeVector(blob []byte) ([]float64, error) {
	if len(blob)%8 != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of 8", len(blob))
	}
	vec := make([]float64, len(blob)/8)
	for i := range vec {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return vec, nil
}
