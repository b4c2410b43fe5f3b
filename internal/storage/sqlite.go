// Package storage keeps an in-memory journal of the external commands run
// during this session.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/rusenback/devicemgr/internal/model"
)

const (
	// DefaultRetention is how many rows the trim routine keeps
	DefaultRetention = 500

	batchSize     = 50
	flushInterval = 2 * time.Second
	trimInterval  = time.Minute
)

// Journal stores command runs in a private in-memory database
type Journal struct {
	db        *sql.DB
	log       zerolog.Logger
	retention int
	writeChan chan *model.CommandRun
	flushChan chan chan struct{}
	closeChan chan struct{}
	done      chan struct{}
}

// NewJournal opens the in-memory journal and starts its writer
func NewJournal(log zerolog.Logger) (*Journal, error) {
	// Every connection to :memory: gets its own database, so pin one
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal tables: %w", err)
	}

	j := &Journal{
		db:        db,
		log:       log.With().Str("module", "journal").Logger(),
		retention: DefaultRetention,
		writeChan: make(chan *model.CommandRun, 1000),
		flushChan: make(chan chan struct{}),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}

	go j.writer()

	return j, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS command_runs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		command TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		bytes INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started
	ON command_runs(started_at);
	`

	_, err := db.Exec(schema)
	return err
}

// Write queues a run. It never blocks; when the queue is full the run is dropped.
func (j *Journal) Write(run *model.CommandRun) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	select {
	case j.writeChan <- run:
	default:
		j.log.Warn().Str("cmd", run.Command).Msg("journal queue full, dropping run")
	}
}

// Flush waits until every queued run is stored
func (j *Journal) Flush() {
	ack := make(chan struct{})
	select {
	case j.flushChan <- ack:
		<-ack
	case <-j.done:
	}
}

// writer batches queued runs into the database
func (j *Journal) writer() {
	defer close(j.done)

	buffer := make([]*model.CommandRun, 0, batchSize)
	flush := time.NewTicker(flushInterval)
	defer flush.Stop()
	trim := time.NewTicker(trimInterval)
	defer trim.Stop()

	drain := func() {
		for {
			select {
			case run := <-j.writeChan:
				buffer = append(buffer, run)
			default:
				return
			}
		}
	}

	for {
		select {
		case run := <-j.writeChan:
			buffer = append(buffer, run)
			if len(buffer) >= batchSize {
				j.batchWrite(buffer)
				buffer = buffer[:0]
			}

		case <-flush.C:
			if len(buffer) > 0 {
				j.batchWrite(buffer)
				buffer = buffer[:0]
			}

		case ack := <-j.flushChan:
			drain()
			if len(buffer) > 0 {
				j.batchWrite(buffer)
				buffer = buffer[:0]
			}
			close(ack)

		case <-trim.C:
			j.trim()

		case <-j.closeChan:
			drain()
			if len(buffer) > 0 {
				j.batchWrite(buffer)
			}
			return
		}
	}
}

// batchWrite writes a batch of runs in one transaction
func (j *Journal) batchWrite(runs []*model.CommandRun) {
	tx, err := j.db.Begin()
	if err != nil {
		j.log.Error().Err(err).Msg("begin journal batch")
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO command_runs
		(id, command, started_at, duration_ms, outcome, bytes)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		j.log.Error().Err(err).Msg("prepare journal insert")
		return
	}
	defer stmt.Close()

	for _, run := range runs {
		_, err := stmt.Exec(
			run.ID,
			run.Command,
			run.Started.UnixMilli(),
			run.Duration.Milliseconds(),
			run.Outcome,
			run.Bytes,
		)
		if err != nil {
			j.log.Warn().Err(err).Str("id", run.ID).Msg("journal insert")
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		j.log.Error().Err(err).Msg("commit journal batch")
	}
}

// Recent returns up to limit runs, newest first
func (j *Journal) Recent(limit int) ([]model.CommandRun, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := j.db.Query(`
		SELECT id, command, started_at, duration_ms, outcome, bytes
		FROM command_runs
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// Count returns the number of stored runs
func (j *Journal) Count() (int, error) {
	var n int
	if err := j.db.QueryRow(`SELECT COUNT(*) FROM command_runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count journal: %w", err)
	}
	return n, nil
}

func scanRows(rows *sql.Rows) ([]model.CommandRun, error) {
	var runs []model.CommandRun

	for rows.Next() {
		var (
			run        model.CommandRun
			started    int64
			durationMS int64
		)
		if err := rows.Scan(&run.ID, &run.Command, &started, &durationMS, &run.Outcome, &run.Bytes); err != nil {
			return nil, err
		}
		run.Started = time.UnixMilli(started)
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// trim keeps only the newest retention rows
func (j *Journal) trim() {
	result, err := j.db.Exec(`
		DELETE FROM command_runs
		WHERE seq <= (SELECT COALESCE(MAX(seq), 0) FROM command_runs) - ?
	`, j.retention)
	if err != nil {
		j.log.Warn().Err(err).Msg("journal trim")
		return
	}
	if n, err := result.RowsAffected(); err == nil && n > 0 {
		j.log.Debug().Int64("rows", n).Msg("journal trimmed")
	}
}

// Close flushes pending runs and releases the database
func (j *Journal) Close() error {
	select {
	case <-j.closeChan:
		return nil
	default:
	}
	close(j.closeChan)
	<-j.done
	return j.db.Close()
}
