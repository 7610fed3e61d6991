package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

func testInit(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}
	if testDB != nil {
		return
	}

	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatal("Failed to connect to test database: " + err.Error())
	}
}

func setupTestData(t *testing.T) {
	ctx := context.Background()
	for _, table := range []string{"attendance_events", "geofence_zones", "users"} {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createUser(t *testing.T, ctx context.Context) string {
	var userID string
	email := fmt.Sprintf("repo-%d@example.com", time.Now().UnixNano())
	err := testDB.QueryRow(ctx, `
		INSERT INTO users (email, full_name, role)
		VALUES ($1, 'Repo Test User', 'employee')
		RETURNING id
	`, email).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func newEvent(userID string, eventType checkclock.EventType, occurredAt time.Time) checkclock.AttendanceEvent {
	return checkclock.AttendanceEvent{
		UserID:         userID,
		Date:           day(occurredAt),
		EventType:      eventType,
		OccurredAt:     occurredAt,
		ApprovalStatus: checkclock.StatusPending,
	}
}

func TestAttendanceEventRepository_AppendAndListDay(t *testing.T) {
	testInit(t)
	setupTestData(t)
	ctx := context.Background()

	userID := createUser(t, ctx)
	repo := postgresql.NewAttendanceEventRepository(testDB)
	base := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)

	created, err := repo.Append(ctx, newEvent(userID, checkclock.EventClockIn, base))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Append(ctx, newEvent(userID, checkclock.EventBreakStart, base.Add(4*time.Hour)))
	require.NoError(t, err)

	events, err := repo.ListDay(ctx, userID, day(base))
	require.NoError(t, err)
	require.Len(t, events, 2)
	// Ordered by occurred_at ascending.
	assert.Equal(t, checkclock.EventClockIn, events[0].EventType)
	assert.Equal(t, checkclock.EventBreakStart, events[1].EventType)

	// Another day stays empty.
	events, err = repo.ListDay(ctx, userID, day(base.AddDate(0, 0, 1)))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestAttendanceEventRepository_Append_DuplicateSingleton(t *testing.T) {
	testInit(t)
	setupTestData(t)
	ctx := context.Background()

	userID := createUser(t, ctx)
	repo := postgresql.NewAttendanceEventRepository(testDB)
	base := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)

	_, err := repo.Append(ctx, newEvent(userID, checkclock.EventClockIn, base))
	require.NoError(t, err)

	// The partial unique index backs up the state machine even when the
	// insert arrives without prior validation.
	_, err = repo.Append(ctx, newEvent(userID, checkclock.EventClockIn, base.Add(time.Minute)))
	assert.ErrorIs(t, err, checkclock.ErrAlreadyClockedIn)

	// Break events are not singletons.
	_, err = repo.Append(ctx, newEvent(userID, checkclock.EventBreakStart, base.Add(time.Hour)))
	require.NoError(t, err)
	_, err = repo.Append(ctx, newEvent(userID, checkclock.EventBreakEnd, base.Add(2*time.Hour)))
	require.NoError(t, err)
	_, err = repo.Append(ctx, newEvent(userID, checkclock.EventBreakStart, base.Add(3*time.Hour)))
	require.NoError(t, err)
}

func TestAttendanceEventRepository_GetByID(t *testing.T) {
	testInit(t)
	setupTestData(t)
	ctx := context.Background()

	userID := createUser(t, ctx)
	repo := postgresql.NewAttendanceEventRepository(testDB)

	created, err := repo.Append(ctx, newEvent(userID, checkclock.EventClockIn, time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.UserName)
	assert.Equal(t, "Repo Test User", *got.UserName)

	_, err = repo.GetByID(ctx, "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b")
	assert.ErrorIs(t, err, checkclock.ErrEventNotFound)
}

func TestAttendanceEventRepository_List_FilterAndPaginate(t *testing.T) {
	testInit(t)
	setupTestData(t)
	ctx := context.Background()

	userID := createUser(t, ctx)
	otherID := createUser(t, ctx)
	repo := postgresql.NewAttendanceEventRepository(testDB)

	for i := 0; i < 3; i++ {
		occurredAt := time.Date(2024, 3, 11+i, 8, 0, 0, 0, time.UTC)
		_, err := repo.Append(ctx, newEvent(userID, checkclock.EventClockIn, occurredAt))
		require.NoError(t, err)
	}
	_, err := repo.Append(ctx, newEvent(otherID, checkclock.EventClockIn, time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	filter := checkclock.EventFilter{UserID: &userID}
	require.NoError(t, filter.Validate())

	events, total, err := repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, events, 3)
	// Default sort is occurred_at descending.
	assert.True(t, events[0].OccurredAt.After(events[2].OccurredAt))

	// Page past the data comes back empty but keeps the total.
	filter = checkclock.EventFilter{UserID: &userID, Page: 2, PerPage: 2}
	require.NoError(t, filter.Validate())

	events, total, err = repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, events, 1)

	// Date range filter.
	from, to := "2024-03-12", "2024-03-13"
	filter = checkclock.EventFilter{UserID: &userID, DateFrom: &from, DateTo: &to}
	require.NoError(t, filter.Validate())

	events, total, err = repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, events, 2)
}

func TestAttendanceEventRepository_DecidePending(t *testing.T) {
	testInit(t)
	setupTestData(t)
	ctx := context.Background()

	userID := createUser(t, ctx)
	adminID := createUser(t, ctx)
	repo := postgresql.NewAttendanceEventRepository(testDB)

	created, err := repo.Append(ctx, newEvent(userID, checkclock.EventClockIn, time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	now := time.Now()
	created.ApprovalStatus = checkclock.StatusApproved
	created.ApprovedBy = &adminID
	created.ApprovedAt = &now

	require.NoError(t, repo.DecidePending(ctx, created))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, checkclock.StatusApproved, got.ApprovalStatus)

	// A second decision fails: the row is no longer pending.
	err = repo.DecidePending(ctx, created)
	assert.ErrorIs(t, err, checkclock.ErrAlreadyDecided)

	// A missing row fails as not found, not as already decided.
	created.ID = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"
	err = repo.DecidePending(ctx, created)
	assert.ErrorIs(t, err, checkclock.ErrEventNotFound)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	testInit(t)
	setupTestData(t)
	ctx := context.Background()

	userID := createUser(t, ctx)
	repo := postgresql.NewAttendanceEventRepository(testDB)
	occurredAt := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)

	sentinel := fmt.Errorf("boom")
	err := postgresql.WithTransaction(ctx, testDB, func(txCtx context.Context) error {
		if _, err := repo.Append(txCtx, newEvent(userID, checkclock.EventClockIn, occurredAt)); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	events, err := repo.ListDay(ctx, userID, day(occurredAt))
	require.NoError(t, err)
	assert.Empty(t, events, "insert must roll back with the transaction")
}
