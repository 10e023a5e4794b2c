package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDriver is a minimal database/sql driver that records transaction
// lifecycle calls and executed statements, so the coordinator can be tested
// without a real store.
type recordingDriver struct {
	mu         sync.Mutex
	begun      int
	committed  int
	rolledBack int
	execs      []string
}

func (d *recordingDriver) Open(string) (driver.Conn, error) {
	return &recordingConn{d: d}, nil
}

func (d *recordingDriver) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.begun = 0
	d.committed = 0
	d.rolledBack = 0
	d.execs = nil
}

func (d *recordingDriver) snapshot() (begun, committed, rolledBack int, execs []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.begun, d.committed, d.rolledBack, append([]string(nil), d.execs...)
}

type recordingConn struct {
	d *recordingDriver
}

func (c *recordingConn) Prepare(query string) (driver.Stmt, error) {
	return &recordingStmt{d: c.d, query: query}, nil
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) Begin() (driver.Tx, error) {
	c.d.mu.Lock()
	defer c.d.mu.Unlock()
	c.d.begun++
	return &recordingTx{d: c.d}, nil
}

type recordingStmt struct {
	d     *recordingDriver
	query string
}

func (s *recordingStmt) Close() error  { return nil }
func (s *recordingStmt) NumInput() int { return -1 }

func (s *recordingStmt) Exec(args []driver.Value) (driver.Result, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.execs = append(s.d.execs, s.query)
	return driver.RowsAffected(1), nil
}

func (s *recordingStmt) Query(args []driver.Value) (driver.Rows, error) {
	return nil, errors.New("queries not supported")
}

type recordingTx struct {
	d *recordingDriver
}

func (t *recordingTx) Commit() error {
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	t.d.committed++
	return nil
}

func (t *recordingTx) Rollback() error {
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	t.d.rolledBack++
	return nil
}

var (
	txDriver         = &recordingDriver{}
	registerTxDriver sync.Once
)

func openRecordingDB(t *testing.T) *sql.DB {
	t.Helper()
	registerTxDriver.Do(func() {
		sql.Register("recording", txDriver)
	})
	txDriver.reset()

	database, err := sql.Open("recording", "")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestWithTransactionCommitsOnSuccess(t *testing.T) {
	database := openRecordingDB(t)

	called := false
	err := WithTransaction(context.Background(), database, func(tx *sql.Tx) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, called)

	begun, committed, rolledBack, _ := txDriver.snapshot()
	assert.Equal(t, 1, begun)
	assert.Equal(t, 1, committed)
	assert.Equal(t, 0, rolledBack)
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	database := openRecordingDB(t)

	failure := errors.New("synchronizer failure")
	err := WithTransaction(context.Background(), database, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(context.Background(), "INSERT INTO orders DEFAULT VALUES"); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	// All-or-nothing: a failure after work has been done inside the
	// transaction must roll back, never commit.
	begun, committed, rolledBack, _ := txDriver.snapshot()
	assert.Equal(t, 1, begun)
	assert.Equal(t, 0, committed)
	assert.Equal(t, 1, rolledBack)
}

// Sentinel errors raised inside the transaction must surface unwrapped so the
// controller boundary can map them to response codes.
func TestWithTransactionPassesSentinelErrorsThrough(t *testing.T) {
	database := openRecordingDB(t)

	err := WithTransaction(context.Background(), database, func(tx *sql.Tx) error {
		return ErrVersionConflict
	})
	require.ErrorIs(t, err, ErrVersionConflict)

	_, committed, rolledBack, _ := txDriver.snapshot()
	assert.Equal(t, 0, committed)
	assert.Equal(t, 1, rolledBack)
}

func TestWithTransactionReplaceStatementOrder(t *testing.T) {
	database := openRecordingDB(t)

	err := WithTransaction(context.Background(), database, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(context.Background(), "DELETE FROM order_lines WHERE order_id = $1", int64(5)); err != nil {
			return err
		}
		for i := 0; i < 2; i++ {
			if _, err := tx.ExecContext(context.Background(), "INSERT INTO order_lines (order_id) VALUES ($1)", int64(5)); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	// The replace contract: existing children are deleted before the
	// replacement set is inserted, all inside the committed transaction.
	begun, committed, _, execs := txDriver.snapshot()
	assert.Equal(t, 1, begun)
	assert.Equal(t, 1, committed)
	require.Len(t, execs, 3)
	assert.Contains(t, execs[0], "DELETE FROM order_lines")
	assert.Contains(t, execs[1], "INSERT INTO order_lines")
	assert.Contains(t, execs[2], "INSERT INTO order_lines")
}
