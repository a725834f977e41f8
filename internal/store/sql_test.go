package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notekeep/go-secure-notes/internal/logger"
)

func newMockSQL(t *testing.T) (*SQL, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := &SQL{
		db:              db,
		builder:         sq.StatementBuilder.PlaceholderFormat(sq.Question),
		errorClassifier: noopClassifier{},
		logger:          logger.Nop(),
	}
	return s, mock
}

const (
	selectQuery = "SELECT v FROM kv WHERE field = ? AND k = ?"
	existsQuery = "SELECT 1 FROM kv WHERE field = ? AND k = ?"
	upsertQuery = "INSERT INTO kv (field,k,v) VALUES (?,?,?) ON CONFLICT (field, k) DO UPDATE SET v = EXCLUDED.v"
)

func TestSQL_Get_Found(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
		WithArgs(int16(FieldNoteTitle), []byte("key")).
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow([]byte("value")))

	value, err := s.Get(context.Background(), FieldNoteTitle, []byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_Get_Absent(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
		WithArgs(int16(FieldNoteTitle), []byte("missing")).
		WillReturnRows(sqlmock.NewRows([]string{"v"}))

	value, err := s.Get(context.Background(), FieldNoteTitle, []byte("missing"))
	require.NoError(t, err)
	assert.Nil(t, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_Get_QueryError(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
		WithArgs(int16(FieldNoteTitle), []byte("key")).
		WillReturnError(errors.New("connection reset"))

	_, err := s.Get(context.Background(), FieldNoteTitle, []byte("key"))
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_Set_Upserts(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectExec(regexp.QuoteMeta(upsertQuery)).
		WithArgs(int16(FieldUserKey), []byte("account"), []byte("secret")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Set(context.Background(), FieldUserKey, []byte("account"), []byte("secret"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_Set_ExecError(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectExec(regexp.QuoteMeta(upsertQuery)).
		WithArgs(int16(FieldUserKey), []byte("account"), []byte("secret")).
		WillReturnError(errors.New("disk full"))

	err := s.Set(context.Background(), FieldUserKey, []byte("account"), []byte("secret"))
	assert.ErrorIs(t, err, ErrSettingValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_Has(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).
		WithArgs(int16(FieldUserKey), []byte("present")).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).
		WithArgs(int16(FieldUserKey), []byte("absent")).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	ok, err := s.Has(context.Background(), FieldUserKey, []byte("present"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Has(context.Background(), FieldUserKey, []byte("absent"))
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}
