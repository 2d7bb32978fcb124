package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func seedEntry(t *testing.T, s *Store, in CreateEntryInput) int64 {
	t.Helper()
	entry, err := s.CreateEntry(context.Background(), in)
	require.NoError(t, err)
	return entry.ID
}

func TestCreateEntryDefaultsTimestamp(t *testing.T) {
	s := newTestStore(t)

	entry, err := s.CreateEntry(context.Background(), CreateEntryInput{
		EntryType: "note",
		Content:   "Första anteckningen",
	})
	require.NoError(t, err)
	require.NotZero(t, entry.ID)
	require.NotEmpty(t, entry.Timestamp)
}

func TestCreateEntryExplicitTimestamp(t *testing.T) {
	s := newTestStore(t)

	entry, err := s.CreateEntry(context.Background(), CreateEntryInput{
		EntryType: "reflection",
		Content:   "Bakåtdaterad reflektion",
		Timestamp: strPtr("2026-01-15 08:30:00"),
	})
	require.NoError(t, err)
	require.Equal(t, "2026-01-15 08:30:00", entry.Timestamp)
}

func TestGetEntryEnrichment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Hälsa")
	taskID := seedTask(t, s, "Träna", roleID)

	entryID := seedEntry(t, s, CreateEntryInput{
		EntryType:     "task",
		Content:       "Sprang fem kilometer",
		RelatedTaskID: &taskID,
		RelatedRoleID: &roleID,
	})

	entry, err := s.GetEntry(ctx, entryID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.NotNil(t, entry.TaskTitle)
	require.Equal(t, "Träna", *entry.TaskTitle)
	require.NotNil(t, entry.RoleName)
	require.Equal(t, "Hälsa", *entry.RoleName)
	require.Nil(t, entry.ProjectName)
}

func TestGetEntryMissingReturnsNil(t *testing.T) {
	s := newTestStore(t)

	entry, err := s.GetEntry(context.Background(), 9)
	require.NoError(t, err)
	require.Nil(t, entry)
}

func TestEntryOutlivesDeletedTask(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Arbete")
	taskID := seedTask(t, s, "Kortlivad", roleID)

	entryID := seedEntry(t, s, CreateEntryInput{
		EntryType:     "task",
		Content:       "Jobbade på uppgiften",
		RelatedTaskID: &taskID,
	})

	require.NoError(t, s.DeleteTask(ctx, taskID))

	entry, err := s.GetEntry(ctx, entryID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, "Jobbade på uppgiften", entry.Content)
	require.Nil(t, entry.RelatedTaskID)
	require.Nil(t, entry.TaskTitle)
}

func TestGetEntriesByTaskChronological(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Arbete")
	taskID := seedTask(t, s, "Långkörare", roleID)

	later := seedEntry(t, s, CreateEntryInput{
		EntryType:     "task",
		Content:       "Andra passet",
		Timestamp:     strPtr("2026-02-02 10:00:00"),
		RelatedTaskID: &taskID,
	})
	earlier := seedEntry(t, s, CreateEntryInput{
		EntryType:     "task",
		Content:       "Första passet",
		Timestamp:     strPtr("2026-02-01 10:00:00"),
		RelatedTaskID: &taskID,
	})

	entries, err := s.GetEntriesByTask(ctx, taskID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, earlier, entries[0].ID)
	require.Equal(t, later, entries[1].ID)
}

func TestGetEntriesByRoleNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Hälsa")

	earlier := seedEntry(t, s, CreateEntryInput{
		EntryType:     "checkin",
		Content:       "Morgonkoll",
		Timestamp:     strPtr("2026-02-01 07:00:00"),
		RelatedRoleID: &roleID,
	})
	later := seedEntry(t, s, CreateEntryInput{
		EntryType:     "checkin",
		Content:       "Kvällskoll",
		Timestamp:     strPtr("2026-02-01 21:00:00"),
		RelatedRoleID: &roleID,
	})

	entries, err := s.GetEntriesByRole(ctx, roleID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, later, entries[0].ID)
	require.Equal(t, earlier, entries[1].ID)
}

func TestGetEntriesByTypeWithLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, ts := range []string{"2026-03-01 09:00:00", "2026-03-02 09:00:00", "2026-03-03 09:00:00"} {
		seedEntry(t, s, CreateEntryInput{
			EntryType: "idea",
			Content:   "Idé",
			Timestamp: strPtr(ts),
		})
	}
	seedEntry(t, s, CreateEntryInput{EntryType: "note", Content: "Inte en idé"})

	ideas, err := s.GetEntriesByType(ctx, "idea", nil)
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	require.Equal(t, "2026-03-03 09:00:00", ideas[0].Timestamp)

	capped, err := s.GetEntriesByType(ctx, "idea", int64Ptr(2))
	require.NoError(t, err)
	require.Len(t, capped, 2)
	require.Equal(t, "2026-03-03 09:00:00", capped[0].Timestamp)
}

func TestGetEntriesByDateRangeInclusive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inRange1 := seedEntry(t, s, CreateEntryInput{
		EntryType: "note", Content: "Dag ett", Timestamp: strPtr("2026-04-01 23:59:00"),
	})
	inRange2 := seedEntry(t, s, CreateEntryInput{
		EntryType: "note", Content: "Dag tre", Timestamp: strPtr("2026-04-03 00:00:01"),
	})
	seedEntry(t, s, CreateEntryInput{
		EntryType: "note", Content: "Utanför", Timestamp: strPtr("2026-04-04 09:00:00"),
	})

	entries, err := s.GetEntriesByDateRange(ctx, "2026-04-01", "2026-04-03")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, inRange1, entries[0].ID)
	require.Equal(t, inRange2, entries[1].ID)
}

func TestGetEntriesForDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	morning := seedEntry(t, s, CreateEntryInput{
		EntryType: "checkin", Content: "Morgon", Timestamp: strPtr("2026-05-10 07:00:00"),
	})
	evening := seedEntry(t, s, CreateEntryInput{
		EntryType: "reflection", Content: "Kväll", Timestamp: strPtr("2026-05-10 22:00:00"),
	})
	seedEntry(t, s, CreateEntryInput{
		EntryType: "note", Content: "Annan dag", Timestamp: strPtr("2026-05-11 12:00:00"),
	})

	entries, err := s.GetEntriesForDate(ctx, "2026-05-10")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, morning, entries[0].ID)
	require.Equal(t, evening, entries[1].ID)
}

func TestGetEntriesForDateDefaultsToToday(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	todayEntry := seedEntry(t, s, CreateEntryInput{
		EntryType: "note", Content: "Just nu",
	})
	seedEntry(t, s, CreateEntryInput{
		EntryType: "note", Content: "Förra veckan", Timestamp: strPtr("2020-01-01 12:00:00"),
	})

	entries, err := s.GetEntriesForDate(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, todayEntry, entries[0].ID)
}

// Entries are immutable: reading the same entry repeatedly always returns
// identical content, no matter what else happens in the database.
func TestEntriesAreImmutable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Hälsa")

	entryID := seedEntry(t, s, CreateEntryInput{
		EntryType:     "reflection",
		Content:       "Orört innehåll",
		RelatedRoleID: &roleID,
	})

	first, err := s.GetEntry(ctx, entryID)
	require.NoError(t, err)

	seedEntry(t, s, CreateEntryInput{EntryType: "note", Content: "Brus"})

	second, err := s.GetEntry(ctx, entryID)
	require.NoError(t, err)
	require.Equal(t, first.Content, second.Content)
	require.Equal(t, first.Timestamp, second.Timestamp)
	require.Equal(t, first.EntryType, second.EntryType)
}
