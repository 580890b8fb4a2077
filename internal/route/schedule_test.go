package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-route-planner/internal/tags"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

func threeMuseums() []types.Place {
	return []types.Place{
		north(rostov, 0.5, "a", tags.Museum),
		north(rostov, 1.0, "b", tags.Museum),
		north(rostov, 5.0, "c", tags.Museum),
	}
}

func hours(from, to string) types.OpeningInterval {
	f, err := types.ParseClockTime(from)
	if err != nil {
		panic(err)
	}
	tt, err := types.ParseClockTime(to)
	if err != nil {
		panic(err)
	}
	return types.OpeningInterval{From: f, To: tt}
}

func TestBuildSchedule(t *testing.T) {
	got := BuildSchedule(planDate, rostov, threeMuseums(), ScheduleOptions{})

	require.Len(t, got.Stops, 3)
	assert.Zero(t, got.Dropped)

	wantArrive := []string{"2025-06-01T10:08:00+03:00", "2025-06-01T11:31:00+03:00", "2025-06-01T12:58:00+03:00"}
	wantLeave := []string{"2025-06-01T11:23:00+03:00", "2025-06-01T12:46:00+03:00", "2025-06-01T14:13:00+03:00"}
	for i, s := range got.Stops {
		assert.Equal(t, wantArrive[i], s.Arrive, "arrive %d", i)
		assert.Equal(t, wantLeave[i], s.Leave, "leave %d", i)
	}

	assert.Equal(t, []int{8, 8, 12}, []int{
		got.Stops[0].TravelMinFromPrev,
		got.Stops[1].TravelMinFromPrev,
		got.Stops[2].TravelMinFromPrev,
	})
	assert.InDelta(t, 0.5, got.Stops[0].DistanceKmFromPrev, 1e-9)
	assert.InDelta(t, 4.0, got.Stops[2].DistanceKmFromPrev, 1e-9)

	wantTotal := TravelMinutes(0.5) + TravelMinutes(0.5) + TravelMinutes(4) + 3*75
	assert.Equal(t, wantTotal, got.TotalMinutes)
	assert.Equal(t, 253, got.TotalMinutes)
}

func TestBuildScheduleTimesAreMonotonic(t *testing.T) {
	got := BuildSchedule(planDate, rostov, threeMuseums(), ScheduleOptions{})
	require.NotEmpty(t, got.Stops)

	prevLeave := clock(t, "2025-06-01T10:00:00+03:00")
	for _, s := range got.Stops {
		arrive, leave := clock(t, s.Arrive), clock(t, s.Leave)
		assert.False(t, arrive.Before(prevLeave))
		assert.False(t, leave.Before(arrive))
		prevLeave = leave
	}
}

func TestBuildScheduleTruncatesAtDayEnd(t *testing.T) {
	got := BuildSchedule(planDate, rostov, threeMuseums(), ScheduleOptions{DayEnd: ptr(types.NewClockTime(12, 0))})

	require.Len(t, got.Stops, 1)
	assert.Equal(t, 2, got.Dropped)
	assert.Equal(t, 8+75, got.TotalMinutes)
}

func TestBuildScheduleLeaveAtDayEndIsKept(t *testing.T) {
	// 10:00 + 8 min travel + 75 min visit ends at 11:23
	got := BuildSchedule(planDate, rostov, threeMuseums()[:1], ScheduleOptions{DayEnd: ptr(types.NewClockTime(11, 23))})
	assert.Len(t, got.Stops, 1)
	assert.Zero(t, got.Dropped)
}

func TestBuildScheduleMidnightDayEnd(t *testing.T) {
	got := BuildSchedule(planDate, rostov, threeMuseums(), ScheduleOptions{DayEnd: ptr(types.NewClockTime(0, 0))})
	assert.Empty(t, got.Stops)
	assert.Equal(t, 3, got.Dropped)
}

func TestBuildScheduleMidnightDayStart(t *testing.T) {
	got := BuildSchedule(planDate, rostov, threeMuseums()[:1], ScheduleOptions{DayStart: ptr(types.NewClockTime(0, 0))})
	require.Len(t, got.Stops, 1)
	assert.Equal(t, "2025-06-01T00:08:00+03:00", got.Stops[0].Arrive)
}

func TestBuildScheduleEmptyRoute(t *testing.T) {
	got := BuildSchedule(planDate, rostov, nil, ScheduleOptions{})
	assert.Empty(t, got.Stops)
	assert.NotNil(t, got.Stops)
	assert.Zero(t, got.TotalMinutes)
}

func TestBuildScheduleOpeningHours(t *testing.T) {
	tests := []struct {
		name  string
		hours []types.OpeningInterval
		want  string
	}{
		{"waits for opening", []types.OpeningInterval{hours("12:00", "18:00")}, "2025-06-01T12:00:00+03:00"},
		{"skips closed morning window", []types.OpeningInterval{hours("09:00", "10:00"), hours("13:00", "15:00")}, "2025-06-01T13:00:00+03:00"},
		{"unordered windows", []types.OpeningInterval{hours("13:00", "15:00"), hours("09:00", "10:00")}, "2025-06-01T13:00:00+03:00"},
		{"already open", []types.OpeningInterval{hours("09:00", "18:00")}, "2025-06-01T10:08:00+03:00"},
		{"closed for the day keeps arrival", []types.OpeningInterval{hours("09:00", "10:00")}, "2025-06-01T10:08:00+03:00"},
		{"degenerate window means always open", []types.OpeningInterval{hours("18:00", "09:00")}, "2025-06-01T10:08:00+03:00"},
		{"no hours", nil, "2025-06-01T10:08:00+03:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := north(rostov, 0.5, "p", tags.Museum)
			p.OpeningHours = tt.hours

			got := BuildSchedule(planDate, rostov, []types.Place{p}, ScheduleOptions{})
			require.Len(t, got.Stops, 1)
			assert.Equal(t, tt.want, got.Stops[0].Arrive)
		})
	}
}

func TestBuildScheduleMealPadding(t *testing.T) {
	t.Run("first stop after the threshold is padded once", func(t *testing.T) {
		late := north(rostov, 0.5, "late", tags.Museum)
		late.OpeningHours = []types.OpeningInterval{hours("14:00", "18:00")}
		next := north(rostov, 1.0, "next", tags.Museum)

		got := BuildSchedule(planDate, rostov, []types.Place{late, next}, ScheduleOptions{})
		require.Len(t, got.Stops, 2)
		assert.Equal(t, "2025-06-01T14:10:00+03:00", got.Stops[0].Arrive)
		assert.Equal(t, "2025-06-01T15:25:00+03:00", got.Stops[0].Leave)
		assert.Equal(t, "2025-06-01T15:33:00+03:00", got.Stops[1].Arrive)
	})

	t.Run("meal stop is not padded", func(t *testing.T) {
		cafe := north(rostov, 0.5, "cafe", tags.Food)
		cafe.OpeningHours = []types.OpeningInterval{hours("14:00", "22:00")}

		got := BuildSchedule(planDate, rostov, []types.Place{cafe}, ScheduleOptions{})
		require.Len(t, got.Stops, 1)
		assert.Equal(t, "2025-06-01T14:00:00+03:00", got.Stops[0].Arrive)
		assert.Equal(t, "2025-06-01T14:45:00+03:00", got.Stops[0].Leave)
	})

	t.Run("food stop past threshold consumes the padding", func(t *testing.T) {
		cafe := north(rostov, 0.5, "cafe", tags.Food)
		cafe.OpeningHours = []types.OpeningInterval{hours("14:00", "22:00")}
		museum := north(rostov, 1.0, "museum", tags.Museum)

		got := BuildSchedule(planDate, rostov, []types.Place{cafe, museum}, ScheduleOptions{})
		require.Len(t, got.Stops, 2)
		assert.Equal(t, "2025-06-01T14:00:00+03:00", got.Stops[0].Arrive)
		assert.Equal(t, "2025-06-01T14:45:00+03:00", got.Stops[0].Leave)
		// 14:45 + 8 min travel, no padding left for the museum
		assert.Equal(t, "2025-06-01T14:53:00+03:00", got.Stops[1].Arrive)
	})

	t.Run("padding is not counted in total minutes", func(t *testing.T) {
		late := north(rostov, 0.5, "late", tags.Museum)
		late.OpeningHours = []types.OpeningInterval{hours("14:00", "18:00")}

		got := BuildSchedule(planDate, rostov, []types.Place{late}, ScheduleOptions{})
		assert.Equal(t, 8+75, got.TotalMinutes)
	})
}
