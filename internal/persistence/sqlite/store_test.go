package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/session-planner/internal/persistence"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testType(id string) persistence.SessionType {
	return persistence.SessionType{ID: id, Name: "Deep Work", Category: "focus", Priority: 5}
}

func testSession(id, typeID string, start time.Time, minutes int) persistence.Session {
	return persistence.Session{ID: id, TypeID: typeID, Start: start, DurationMinutes: minutes}
}

func TestSessionTypeCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateSessionType(ctx, testType("t-1")))

	got, err := store.GetSessionType(ctx, "t-1")
	require.NoError(t, err)
	require.Equal(t, "Deep Work", got.Name)
	require.Equal(t, 5, got.Priority)
	require.False(t, got.CreatedAt.IsZero())

	err = store.CreateSessionType(ctx, testType("t-1"))
	require.ErrorIs(t, err, persistence.ErrDuplicate)

	updated := got
	updated.Name = "Focus Block"
	updated.Priority = 4
	require.NoError(t, store.UpdateSessionType(ctx, updated))

	got, err = store.GetSessionType(ctx, "t-1")
	require.NoError(t, err)
	require.Equal(t, "Focus Block", got.Name)
	require.Equal(t, 4, got.Priority)

	_, err = store.GetSessionType(ctx, "missing")
	require.ErrorIs(t, err, persistence.ErrNotFound)

	require.NoError(t, store.DeleteSessionType(ctx, "t-1"))
	require.ErrorIs(t, store.DeleteSessionType(ctx, "t-1"), persistence.ErrNotFound)
}

func TestSessionTypePriorityConstraint(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	invalid := testType("t-bad")
	invalid.Priority = 6
	require.ErrorIs(t, store.CreateSessionType(ctx, invalid), persistence.ErrConstraintViolation)
}

func TestSessionCRUDAndFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateSessionType(ctx, testType("t-1")))

	base := time.Date(2025, time.June, 11, 9, 0, 0, 0, time.Local)
	require.NoError(t, store.CreateSession(ctx, testSession("s-1", "t-1", base, 60)))
	require.NoError(t, store.CreateSession(ctx, testSession("s-2", "t-1", base.AddDate(0, 0, 1), 30)))
	require.NoError(t, store.CreateSession(ctx, testSession("s-3", "t-1", base.AddDate(0, 0, 2), 45)))

	t.Run("missing type is a foreign key violation", func(t *testing.T) {
		err := store.CreateSession(ctx, testSession("s-x", "nope", base, 60))
		require.ErrorIs(t, err, persistence.ErrForeignKeyViolation)
	})

	t.Run("list all ordered by start", func(t *testing.T) {
		sessions, err := store.ListSessions(ctx, persistence.SessionFilter{})
		require.NoError(t, err)
		require.Len(t, sessions, 3)
		require.Equal(t, []string{"s-1", "s-2", "s-3"}, []string{sessions[0].ID, sessions[1].ID, sessions[2].ID})
		require.True(t, sessions[0].Start.Equal(base))
	})

	t.Run("range and exclusion filters", func(t *testing.T) {
		lower := base.Add(time.Hour)
		sessions, err := store.ListSessions(ctx, persistence.SessionFilter{StartsAt: &lower})
		require.NoError(t, err)
		require.Len(t, sessions, 2)

		upper := base.AddDate(0, 0, 2)
		sessions, err = store.ListSessions(ctx, persistence.SessionFilter{StartsBelow: &upper})
		require.NoError(t, err)
		require.Len(t, sessions, 2)

		sessions, err = store.ListSessions(ctx, persistence.SessionFilter{ExcludeID: "s-2"})
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		for _, session := range sessions {
			require.NotEqual(t, "s-2", session.ID)
		}
	})

	t.Run("update toggles completion and reschedules", func(t *testing.T) {
		session, err := store.GetSession(ctx, "s-1")
		require.NoError(t, err)

		session.Completed = true
		session.Start = base.Add(2 * time.Hour)
		session.DurationMinutes = 90
		require.NoError(t, store.UpdateSession(ctx, session))

		got, err := store.GetSession(ctx, "s-1")
		require.NoError(t, err)
		require.True(t, got.Completed)
		require.True(t, got.Start.Equal(base.Add(2*time.Hour)))
		require.Equal(t, 90, got.DurationMinutes)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteSession(ctx, "s-3"))
		_, err := store.GetSession(ctx, "s-3")
		require.ErrorIs(t, err, persistence.ErrNotFound)
	})
}

func TestDeleteSessionTypeCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateSessionType(ctx, testType("t-1")))
	base := time.Date(2025, time.June, 11, 9, 0, 0, 0, time.Local)
	require.NoError(t, store.CreateSession(ctx, testSession("s-1", "t-1", base, 60)))

	require.NoError(t, store.DeleteSessionType(ctx, "t-1"))

	sessions, err := store.ListSessions(ctx, persistence.SessionFilter{})
	require.NoError(t, err)
	require.Empty(t, sessions)
}

func TestCreateSessionIfFree(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateSessionType(ctx, testType("t-1")))

	base := time.Date(2025, time.June, 11, 9, 0, 0, 0, time.Local)
	require.NoError(t, store.CreateSession(ctx, testSession("s-1", "t-1", base, 60)))

	t.Run("overlap blocks the insert and lists the conflict", func(t *testing.T) {
		conflicts, err := store.CreateSessionIfFree(ctx, testSession("s-2", "t-1", base.Add(30*time.Minute), 60))
		require.NoError(t, err)
		require.Len(t, conflicts, 1)
		require.Equal(t, "s-1", conflicts[0].ID)

		_, err = store.GetSession(ctx, "s-2")
		require.ErrorIs(t, err, persistence.ErrNotFound)
	})

	t.Run("adjacent interval is free", func(t *testing.T) {
		conflicts, err := store.CreateSessionIfFree(ctx, testSession("s-3", "t-1", base.Add(time.Hour), 60))
		require.NoError(t, err)
		require.Empty(t, conflicts)

		_, err = store.GetSession(ctx, "s-3")
		require.NoError(t, err)
	})
}
