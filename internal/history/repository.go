package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ryukyi/syntaxscore/internal/loggy"
	"github.com/ryukyi/syntaxscore/internal/ulid"
)

// ErrRunNotFound is returned when a run is not found
var ErrRunNotFound = errors.New("run not found")

// lineBatchSize keeps each multi-row insert well below SQLite's variable limit
const lineBatchSize = 100

var runColumns = []string{
	"id",
	"name",
	"source",
	"line_count",
	"corrupted_count",
	"incomplete_count",
	"median_score",
	"syntax_error_score",
	"even_score_count",
	"created_at",
}

var lineColumns = []string{
	"run_id",
	"line_index",
	"content",
	"status",
	"message",
	"completion",
	"score",
	"syntax_error_score",
}

// Repository defines the interface for run persistence operations
type Repository interface {
	SaveRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id ulid.ULID) (*Run, error)
	GetRunLines(ctx context.Context, runID ulid.ULID) ([]*LineRecord, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	DeleteRun(ctx context.Context, id ulid.ULID) error
}

// SQLRepository implements Repository using SQLite database
type SQLRepository struct {
	db      *sql.DB
	logger  *loggy.Logger
	builder sq.StatementBuilderType
}

// NewSQLRepository creates a new run history SQL repository
func NewSQLRepository(db *sql.DB, logger *loggy.Logger) Repository {
	return &SQLRepository{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// SaveRun stores a run and its lines in one transaction
func (r *SQLRepository) SaveRun(ctx context.Context, run *Run) error {
	if run.ID.IsZero() {
		return ErrInvalidRunID
	}

	var median interface{}
	if run.MedianScore != nil {
		median = *run.MedianScore
	}

	query, args, err := r.builder.
		Insert("runs").
		Columns(runColumns...).
		Values(
			run.ID,
			run.Name,
			run.Source,
			run.LineCount,
			run.CorruptedCount,
			run.IncompleteCount,
			median,
			run.SyntaxErrorScore,
			run.EvenScoreCount,
			run.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("Failed to rollback transaction", "error", rbErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for start := 0; start < len(run.Lines); start += lineBatchSize {
		end := min(start+lineBatchSize, len(run.Lines))

		insert := r.builder.Insert("run_lines").Columns(lineColumns...)
		for _, l := range run.Lines[start:end] {
			insert = insert.Values(
				run.ID,
				l.Index,
				l.Content,
				string(l.Status),
				l.Message,
				l.Completion,
				l.Score,
				l.SyntaxErrorScore,
			)
		}

		var lineQuery string
		var lineArgs []interface{}
		lineQuery, lineArgs, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("building line insert query: %w", err)
		}
		if _, err = tx.ExecContext(ctx, lineQuery, lineArgs...); err != nil {
			return fmt.Errorf("inserting run lines: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}

	r.logger.Info("Saved run", "id", run.ID.String(), "name", run.Name, "lines", len(run.Lines))
	return nil
}

// GetRun retrieves a run by its ID without its lines
func (r *SQLRepository) GetRun(ctx context.Context, id ulid.ULID) (*Run, error) {
	query, args, err := r.builder.
		Select(runColumns...).
		From("runs").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	run, err := scanRun(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	return run, nil
}

// GetRunLines retrieves the lines of a run in input order
func (r *SQLRepository) GetRunLines(ctx context.Context, runID ulid.ULID) ([]*LineRecord, error) {
	query, args, err := r.builder.
		Select(lineColumns...).
		From("run_lines").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("line_index ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying run lines: %w", err)
	}
	defer rows.Close()

	var lines []*LineRecord
	for rows.Next() {
		var l LineRecord
		var status string
		if err := rows.Scan(
			&l.RunID,
			&l.Index,
			&l.Content,
			&status,
			&l.Message,
			&l.Completion,
			&l.Score,
			&l.SyntaxErrorScore,
		); err != nil {
			return nil, fmt.Errorf("scanning run line: %w", err)
		}
		l.Status = checkerStatus(status)
		lines = append(lines, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run lines: %w", err)
	}
	return lines, nil
}

// ListRuns returns the most recent runs first
func (r *SQLRepository) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := r.builder.
		Select(runColumns...).
		From("runs").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run and its lines
func (r *SQLRepository) DeleteRun(ctx context.Context, id ulid.ULID) error {
	linesQuery, linesArgs, err := r.builder.Delete("run_lines").Where(sq.Eq{"run_id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}
	runQuery, runArgs, err := r.builder.Delete("runs").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, linesQuery, linesArgs...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("deleting run lines: %w", err)
	}

	result, err := tx.ExecContext(ctx, runQuery, runArgs...)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("deleting run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		_ = tx.Rollback()
		return ErrRunNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	r.logger.Info("Deleted run", "id", id.String())
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var median sql.NullInt64
	if err := row.Scan(
		&run.ID,
		&run.Name,
		&run.Source,
		&run.LineCount,
		&run.CorruptedCount,
		&run.IncompleteCount,
		&median,
		&run.SyntaxErrorScore,
		&run.EvenScoreCount,
		&run.CreatedAt,
	); err != nil {
		return nil, err
	}
	if median.Valid {
		run.MedianScore = &median.Int64
	}
	return &run, nil
}
