package resultssink

import (
	"database/sql"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// SQLiteResultsSink persists every recorded snapshot to a SQLite
// database, batched and flushed every 64 rows and whenever a sweep point
// completes or the sink is closed, grounded on the
// teacher's trace-writer batching pattern. It supplements, rather than
// replaces, the file/console sinks: a SimDriver may be built with several
// sinks that all observe the same events.
type SQLiteResultsSink struct {
	db        *sql.DB
	statement *sql.Stmt

	runID     string
	batch     []rowRecord
	batchSize int
}

type rowRecord struct {
	pointIndex int
	snap       Snapshot
}

// NewSQLiteResultsSink opens (creating if necessary) a SQLite database at
// path and prepares the sweep_points table.
func NewSQLiteResultsSink(path string) (*SQLiteResultsSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	s := &SQLiteResultsSink{
		db:        db,
		runID:     xid.New().String(),
		batchSize: 64,
	}

	if err := s.createTable(); err != nil {
		return nil, err
	}
	if err := s.prepareStatement(); err != nil {
		return nil, err
	}

	atexit.Register(func() { s.Flush() })

	return s, nil
}

func (s *SQLiteResultsSink) createTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sweep_points (
			run_id TEXT,
			point_index INTEGER,
			param REAL,
			fer REAL,
			ber REAL,
			avg_iters REAL,
			frame_time_seconds REAL,
			fec INTEGER,
			frames INTEGER
		)`)
	return err
}

func (s *SQLiteResultsSink) prepareStatement() error {
	stmt, err := s.db.Prepare(`
		INSERT INTO sweep_points
			(run_id, point_index, param, fer, ber, avg_iters, frame_time_seconds, fec, frames)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	s.statement = stmt
	return nil
}

func (s *SQLiteResultsSink) Banner(sweepLen int) {}

func (s *SQLiteResultsSink) RecordErrorEvent(pointIndex int, snap Snapshot) {
	s.batch = append(s.batch, rowRecord{pointIndex, snap})
	if len(s.batch) >= s.batchSize {
		s.Flush()
	}
}

func (s *SQLiteResultsSink) PointComplete(pointIndex int, snap Snapshot) {
	s.batch = append(s.batch, rowRecord{pointIndex, snap})
	s.Flush()
}

// Flush writes all buffered rows to the database in one transaction.
func (s *SQLiteResultsSink) Flush() {
	if len(s.batch) == 0 {
		return
	}

	tx, err := s.db.Begin()
	if err != nil {
		return
	}

	for _, r := range s.batch {
		_, err := s.statement.Exec(
			s.runID, r.pointIndex, r.snap.Param, r.snap.FER(), r.snap.BER(),
			r.snap.AvgIters, r.snap.FrameTimeSeconds, r.snap.FEC, r.snap.Frames,
		)
		if err != nil {
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		return
	}
	s.batch = s.batch[:0]
}

func (s *SQLiteResultsSink) Close() error {
	s.Flush()
	if s.statement != nil {
		s.statement.Close()
	}
	return s.db.Close()
}

// RunID identifies this sink's rows within the shared sweep_points table.
func (s *SQLiteResultsSink) RunID() string { return s.runID }
