package attendance

import (
	"testing"
	"time"

	"github.com/Niranjjith/Attendance-System/internal/entity"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres"

	"github.com/stretchr/testify/require"
)

func TestValidStatus(t *testing.T) {
	require.True(t, ValidStatus(entity.StatusPresent))
	require.True(t, ValidStatus(entity.StatusAbsent))
	require.True(t, ValidStatus(entity.StatusLate))

	require.False(t, ValidStatus(""))
	require.False(t, ValidStatus("PRESENT"))
	require.False(t, ValidStatus("excused"))
}

func TestValidEntriesDropsUnknownStatuses(t *testing.T) {
	entries := []MarkEntry{
		{StudentID: 1, Status: "present"},
		{StudentID: 2, Status: "sick"},
		{StudentID: 3, Status: "late"},
		{StudentID: 4, Status: ""},
		{StudentID: 5, Status: "absent"},
	}

	valid := ValidEntries(entries)

	require.Len(t, valid, 3)
	require.Equal(t, 1, valid[0].StudentID)
	require.Equal(t, 3, valid[1].StudentID)
	require.Equal(t, 5, valid[2].StudentID)
}

func TestNormalizeDay(t *testing.T) {
	in := time.Date(2024, 3, 15, 17, 45, 12, 999, time.UTC)
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	require.Equal(t, want, NormalizeDay(in))
}

func TestParseDay(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	day, err := ParseDay("2024-03-15")
	require.NoError(t, err)
	require.Equal(t, want, day)

	day, err = ParseDay("2024-03-15T10:30:00Z")
	require.NoError(t, err)
	require.Equal(t, want, day)

	_, err = ParseDay("15/03/2024")
	require.Error(t, err)
}

func TestParseDayTimesOfDayCollapseToSameKey(t *testing.T) {
	morning, err := ParseDay("2024-03-15T08:00:00Z")
	require.NoError(t, err)

	evening, err := ParseDay("2024-03-15T20:00:00Z")
	require.NoError(t, err)

	require.Equal(t, morning, evening)
}

func TestCanAmend(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("locked wins over everything", func(t *testing.T) {
		err := CanAmend(true, day, day.Add(time.Hour))
		require.ErrorIs(t, err, postgres.ErrAttendanceLocked)
	})

	t.Run("inside the window", func(t *testing.T) {
		require.NoError(t, CanAmend(false, day, day.Add(23*time.Hour+59*time.Minute)))
	})

	t.Run("exactly at the boundary", func(t *testing.T) {
		require.NoError(t, CanAmend(false, day, day.Add(EditWindow)))
	})

	t.Run("past the window", func(t *testing.T) {
		err := CanAmend(false, day, day.Add(EditWindow+time.Minute))
		require.ErrorIs(t, err, postgres.ErrEditWindowExpired)
	})
}

func TestNewChange(t *testing.T) {
	now := time.Now()
	old := "present"

	change := NewChange(7, &old, "absent", "correction", now)

	require.Equal(t, 7, change.ChangedBy)
	require.Equal(t, &old, change.OldStatus)
	require.Equal(t, "absent", change.NewStatus)
	require.Equal(t, "correction", change.Reason)
	require.Equal(t, now, change.ChangedAt)
}

func TestNewChangeInitialMarkingHasNoOldStatus(t *testing.T) {
	change := NewChange(7, nil, "present", reasonInitial, time.Now())

	require.Nil(t, change.OldStatus)
	require.Equal(t, "Initial marking", change.Reason)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name    string
		present int
		late    int
		total   int
		want    float64
	}{
		{"late counts toward attendance", 3, 1, 5, 80},
		{"empty partition", 0, 0, 0, 0},
		{"all present", 5, 0, 5, 100},
		{"none present", 0, 0, 4, 0},
		{"rounds to two decimals", 1, 0, 3, 33.33},
		{"rounds up", 2, 0, 3, 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Percentage(tt.present, tt.late, tt.total))
		})
	}
}
