package storage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/easeaico/zetazen/internal/auth"
	"github.com/easeaico/zetazen/internal/session"
	"github.com/easeaico/zetazen/internal/types"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestSessionRepo_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepo(db)

	mock.ExpectQuery(`INSERT INTO "sessions" .* ON CONFLICT \("anon_id"\) DO UPDATE SET "last_seen_at"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`SELECT \* FROM "sessions" WHERE anon_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "anon_id", "created_at", "last_seen_at"}).
			AddRow(7, "anon-1", 1000, 2000))

	sess, err := repo.Upsert(context.Background(), "anon-1", 2000)
	require.NoError(t, err)
	assert.Equal(t, &types.Session{ID: 7, AnonID: "anon-1", CreatedAt: 1000, LastSeenAt: 2000}, sess)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_GetByAnonIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "anon_id", "created_at", "last_seen_at"}))

	_, err := repo.GetByAnonID(context.Background(), "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_Touch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepo(db)

	mock.ExpectExec(`UPDATE "sessions" SET "last_seen_at"=\$1 WHERE id = \$2`).
		WithArgs(int64(5000), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Touch(context.Background(), 7, 5000))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_TouchDeletedSession(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepo(db)

	mock.ExpectExec(`UPDATE "sessions" SET "last_seen_at"=\$1 WHERE id = \$2`).
		WithArgs(int64(5000), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Touch(context.Background(), 7, 5000)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepo(db)

	mock.ExpectQuery(`INSERT INTO "messages"`).
		WithArgs(int64(1), "user", "hello", int64(1234)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	msg := &types.Message{SessionID: 1, Role: "user", Content: "hello", Timestamp: 1234}
	require.NoError(t, repo.Create(context.Background(), msg))
	assert.Equal(t, int64(42), msg.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepo_ListBefore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "messages" WHERE session_id = \$1 AND timestamp < \$2 ORDER BY timestamp ASC, id ASC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "role", "content", "timestamp"}).
			AddRow(1, 1, "user", "a", 10).
			AddRow(2, 1, "assistant", "b", 20))

	before := int64(100)
	msgs, err := repo.List(context.Background(), 1, &before, 50)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "a", msgs[0].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepo_ListCursorPresence(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepo(db)
	cols := []string{"id", "session_id", "role", "content", "timestamp"}

	mock.ExpectQuery(`SELECT \* FROM "messages" WHERE session_id = \$1 AND timestamp < \$2 ORDER BY`).
		WillReturnRows(sqlmock.NewRows(cols))
	mock.ExpectQuery(`SELECT \* FROM "messages" WHERE session_id = \$1 ORDER BY`).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, 1, "user", "a", 10))

	zero := int64(0)
	msgs, err := repo.List(context.Background(), 1, &zero, 50)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	msgs, err = repo.List(context.Background(), 1, nil, 50)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepo_RecentIsChronological(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "messages" WHERE session_id = \$1 ORDER BY timestamp DESC, id DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "role", "content", "timestamp"}).
			AddRow(3, 1, "user", "newest", 30).
			AddRow(2, 1, "assistant", "middle", 20).
			AddRow(1, 1, "user", "oldest", 10))

	msgs, err := repo.Recent(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"oldest", "middle", "newest"}, []string{msgs[0].Content, msgs[1].Content, msgs[2].Content})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMoodLogRepo_ListSinceAndDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMoodLogRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "mood_logs" WHERE session_id = \$1 AND ts >= \$2 ORDER BY ts DESC, id DESC`).
		WithArgs(int64(1), int64(500)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "mood", "note", "ts"}).
			AddRow(2, 1, "sad", "rough", 900))
	mock.ExpectExec(`DELETE FROM "mood_logs" WHERE session_id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	logs, err := repo.ListSince(context.Background(), 1, 500)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "sad", logs[0].Mood)
	assert.Equal(t, int64(900), logs[0].TS)

	n, err := repo.DeleteAll(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	now := time.Now()
	err := repo.Create(context.Background(), &types.User{ID: "u1", Name: "A", Email: "a@b.co", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdateMissingUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	name := "New"
	_, err := repo.Update(context.Background(), "missing", types.UserUpdate{Name: &name}, time.Now())
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_PruneIdleSessions(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStoreFromDB(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "sessions" WHERE last_seen_at < \$1`).
		WithArgs(int64(1000)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectExec(`DELETE FROM "sessions" WHERE last_seen_at < \$1`).
		WithArgs(int64(1000)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := store.CountIdleSessions(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	n, err = store.PruneIdleSessions(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
