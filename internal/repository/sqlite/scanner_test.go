package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}

	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}

	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = ts.data[i].(int64)
		case *int:
			*v = ts.data[i].(int)
		case *bool:
			*v = ts.data[i].(bool)
		case *string:
			*v = ts.data[i].(string)
		case *sql.NullString:
			*v = ts.data[i].(sql.NullString)
		}
	}

	return nil
}

// TestRows implements the Rows interface over a fixed set of scanners
type TestRows struct {
	rows    []*TestScanner
	current int
	err     error
}

func (tr *TestRows) Next() bool {
	if tr.current >= len(tr.rows) {
		return false
	}
	tr.current++
	return true
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	return tr.rows[tr.current-1].Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

const (
	tsA = "2024-01-15T10:30:00.000000000Z"
	tsB = "2024-01-15T11:15:00.000000000Z"
)

func TestScanUser(t *testing.T) {
	user, err := ScanUser(&TestScanner{data: []interface{}{int64(1), "alice", "hash", tsA}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.Equal(t, 10, user.CreatedAt.Hour())

	_, err = ScanUser(&TestScanner{data: []interface{}{int64(1), "alice", "hash", "bad time"}})
	assert.Error(t, err)

	_, err = ScanUser(&TestScanner{err: sql.ErrNoRows})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestScanTask(t *testing.T) {
	tests := []struct {
		name          string
		scanner       *TestScanner
		wantStarted   bool
		wantCompleted bool
		expectErr     bool
	}{
		{
			name: "fresh task",
			scanner: &TestScanner{data: []interface{}{
				int64(3), int64(1), "Go", "learn go", false, tsA,
				sql.NullString{}, sql.NullString{}, 2, "lang",
			}},
		},
		{
			name: "completed task",
			scanner: &TestScanner{data: []interface{}{
				int64(3), int64(1), "Go", "", true, tsA,
				sql.NullString{String: tsA, Valid: true}, sql.NullString{String: tsB, Valid: true}, 3, "",
			}},
			wantStarted:   true,
			wantCompleted: true,
		},
		{
			name: "corrupt completed_at",
			scanner: &TestScanner{data: []interface{}{
				int64(3), int64(1), "Go", "", true, tsA,
				sql.NullString{}, sql.NullString{String: "nope", Valid: true}, 3, "",
			}},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := ScanTask(tt.scanner)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(3), task.ID)
			assert.Equal(t, int64(1), task.UserID)
			assert.Equal(t, tt.wantStarted, task.StartedAt != nil)
			assert.Equal(t, tt.wantCompleted, task.CompletedAt != nil)
		})
	}
}

func TestScanSubtopics(t *testing.T) {
	rows := &TestRows{rows: []*TestScanner{
		{data: []interface{}{int64(1), int64(9), "Goroutines", "", false, tsA, sql.NullString{}, 0}},
		{data: []interface{}{int64(2), int64(9), "Channels", "", true, tsA, sql.NullString{String: tsB, Valid: true}, 1}},
	}}

	subtopics, err := ScanSubtopics(rows)
	require.NoError(t, err)
	require.Len(t, subtopics, 2)
	assert.Equal(t, "Goroutines", subtopics[0].Title)
	assert.Nil(t, subtopics[0].CompletedAt)
	assert.Equal(t, 1, subtopics[1].Order)
	assert.NotNil(t, subtopics[1].CompletedAt)
}

func TestScanSessions_EmptyIsNotNil(t *testing.T) {
	sessions, err := ScanSessions(&TestRows{})
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestScanSessions_RowsError(t *testing.T) {
	_, err := ScanSessions(&TestRows{err: errors.New("cursor broke")})
	assert.EqualError(t, err, "cursor broke")
}

func TestScanTimelineRow(t *testing.T) {
	row, err := ScanTimelineRow(&TestScanner{data: []interface{}{
		int64(4), int64(9), tsA, sql.NullString{String: tsB, Valid: true}, 45, "notes", "Channels",
		sql.NullString{String: tsB, Valid: true}, "Go", "lang",
	}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), row.ID)
	assert.Equal(t, 45, row.DurationMinutes)
	assert.Equal(t, "Go", row.TaskTitle)
	assert.Equal(t, "lang", row.TaskCategory)
	require.NotNil(t, row.EndedAt)
	require.NotNil(t, row.SubtopicsStudiedAt)
}
