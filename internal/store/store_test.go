package store

import (
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refectory/internal/database"
	"refectory/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))
	return New(db)
}

func TestSeedCreatesTwoCycles(t *testing.T) {
	st := openTestStore(t)
	cycles, err := st.Cycles()
	require.NoError(t, err)
	require.Len(t, cycles, 2)
	assert.Equal(t, 7, cycles[0].DaysCount)

	cfg, err := st.RotationSettings()
	require.NoError(t, err)
	assert.True(t, models.SameDate(cfg.BaseDate, models.DefaultBaseDate))
}

func TestResolveDateUsesSettings(t *testing.T) {
	st := openTestStore(t)

	cycle, day, err := st.ResolveDate(date(2025, 12, 15))
	require.NoError(t, err)
	assert.Equal(t, 1, day)
	second := cycle.ID

	// Forcing the first cycle overrides the alternation.
	cycles, err := st.Cycles()
	require.NoError(t, err)
	_, err = st.UpdateRotationSettings(models.DefaultBaseDate, cycles[0].ID)
	require.NoError(t, err)

	cycle, _, err = st.ResolveDate(date(2025, 12, 15))
	require.NoError(t, err)
	assert.NotEqual(t, second, cycle.ID)
	assert.Equal(t, cycles[0].ID, cycle.ID)

	// Clearing the override restores alternation.
	_, err = st.UpdateRotationSettings(models.DefaultBaseDate, 0)
	require.NoError(t, err)
	cycle, _, err = st.ResolveDate(date(2025, 12, 15))
	require.NoError(t, err)
	assert.Equal(t, second, cycle.ID)
}

func TestUpdateRotationSettingsUnknownForcedCycle(t *testing.T) {
	st := openTestStore(t)
	cfg, err := st.UpdateRotationSettings(date(2026, 1, 5), 999)
	require.NoError(t, err)
	assert.Zero(t, cfg.ForcedCycleID, "unknown cycle id clears the override")
	assert.True(t, models.SameDate(cfg.BaseDate, date(2026, 1, 5)))

	// The settings row stays a singleton across updates.
	again, err := st.RotationSettings()
	require.NoError(t, err)
	assert.Equal(t, cfg.ID, again.ID)
	assert.True(t, models.SameDate(again.BaseDate, date(2026, 1, 5)))
}

func TestCreateGuestWithSeat(t *testing.T) {
	st := openTestStore(t)
	g := models.Guest{
		FullName:  "Ivanova A.P.",
		StartDate: date(2025, 12, 10),
		EndDate:   date(2025, 12, 20),
		DietKind:  models.DietB,
	}
	created, err := st.CreateGuestWithSeat(g, 12, 3)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Len(t, created.AccessCode, 4)

	seat, err := st.SeatFor(created.ID, date(2025, 12, 15))
	require.NoError(t, err)
	assert.Equal(t, 12, seat.Table.Number)
	assert.Equal(t, 3, seat.PlaceNumber)

	// The same place overlapping the stay is refused.
	other := models.Guest{
		FullName:  "Sidorov K.M.",
		StartDate: date(2025, 12, 18),
		EndDate:   date(2025, 12, 25),
		DietKind:  models.DietB,
	}
	_, err = st.CreateGuestWithSeat(other, 12, 3)
	assert.Equal(t, ErrSeatTaken, err)

	// A non-overlapping window on the same place is fine.
	other.StartDate = date(2025, 12, 21)
	_, err = st.CreateGuestWithSeat(other, 12, 3)
	assert.NoError(t, err)
}

func TestGuestByAccessCode(t *testing.T) {
	st := openTestStore(t)
	g, err := st.CreateGuestWithSeat(models.Guest{
		FullName:  "Ivanova A.P.",
		StartDate: date(2025, 12, 10),
		EndDate:   date(2025, 12, 20),
		DietKind:  models.DietB,
	}, 1, 1)
	require.NoError(t, err)

	found, err := st.GuestByAccessCode(g.AccessCode, date(2025, 12, 15))
	require.NoError(t, err)
	assert.Equal(t, g.ID, found.ID)

	// After the stay the code no longer works.
	_, err = st.GuestByAccessCode(g.AccessCode, date(2025, 12, 21))
	assert.Equal(t, ErrNotFound, err)

	_, err = st.GuestByAccessCode("0000-none", date(2025, 12, 15))
	assert.Equal(t, ErrNotFound, err)
}

func TestCleanupDepartedGuests(t *testing.T) {
	st := openTestStore(t)
	gone, err := st.CreateGuestWithSeat(models.Guest{
		FullName:  "Departed D.D.",
		StartDate: date(2025, 12, 1),
		EndDate:   date(2025, 12, 5),
		DietKind:  models.DietB,
	}, 2, 1)
	require.NoError(t, err)
	staying, err := st.CreateGuestWithSeat(models.Guest{
		FullName:  "Staying S.S.",
		StartDate: date(2025, 12, 1),
		EndDate:   date(2025, 12, 30),
		DietKind:  models.DietB,
	}, 2, 2)
	require.NoError(t, err)
	require.NoError(t, st.ReplaceOrderItems(gone.ID, date(2025, 12, 4), models.MealLunch, nil))

	purged, err := st.CleanupDepartedGuests(date(2025, 12, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	_, err = st.Guest(gone.ID)
	assert.Equal(t, ErrNotFound, err)
	_, err = st.SeatFor(gone.ID, date(2025, 12, 4))
	assert.Equal(t, ErrNotFound, err)

	_, err = st.Guest(staying.ID)
	assert.NoError(t, err)
}

func TestReplaceOrderItemsReplacesWholeSet(t *testing.T) {
	st := openTestStore(t)
	g, err := st.CreateGuestWithSeat(models.Guest{
		FullName:  "Ivanova A.P.",
		StartDate: date(2025, 12, 10),
		EndDate:   date(2025, 12, 20),
		DietKind:  models.DietB,
	}, 1, 1)
	require.NoError(t, err)

	d := date(2025, 12, 12)
	require.NoError(t, st.ReplaceOrderItems(g.ID, d, models.MealLunch, []uint{101, 102}))
	require.NoError(t, st.ReplaceOrderItems(g.ID, d, models.MealLunch, []uint{103}))

	var orders []models.Order
	require.NoError(t, st.DB().Preload("Items").Where("guest_id = ?", g.ID).Find(&orders).Error)
	require.Len(t, orders, 1, "unique per (guest, date, meal)")
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, uint(103), orders[0].Items[0].MenuItemID)
}

func TestSubmitDay(t *testing.T) {
	st := openTestStore(t)
	g, err := st.CreateGuestWithSeat(models.Guest{
		FullName:  "Ivanova A.P.",
		StartDate: date(2025, 12, 10),
		EndDate:   date(2025, 12, 20),
		DietKind:  models.DietB,
	}, 1, 1)
	require.NoError(t, err)

	d := date(2025, 12, 12)
	require.NoError(t, st.ReplaceOrderItems(g.ID, d, models.MealDinner, []uint{55}))

	// Lunch selected, dinner submitted empty: the dinner order is removed.
	err = st.SubmitDay(g.ID, d, map[models.MealTime][]uint{
		models.MealLunch: {42},
	})
	require.NoError(t, err)

	slots, err := st.NonEmptyOrderSlotsForGuest(g.ID, d)
	require.NoError(t, err)
	assert.True(t, slots[models.MealLunch])
	assert.False(t, slots[models.MealDinner])

	var count int
	require.NoError(t, st.DB().Model(&models.Order{}).Where("guest_id = ?", g.ID).Count(&count).Error)
	assert.Equal(t, 1, count)
}

func TestMoveGuestSplitsAssignment(t *testing.T) {
	st := openTestStore(t)
	g, err := st.CreateGuestWithSeat(models.Guest{
		FullName:  "Ivanova A.P.",
		StartDate: date(2025, 12, 10),
		EndDate:   date(2025, 12, 20),
		DietKind:  models.DietB,
	}, 7, 1)
	require.NoError(t, err)

	require.NoError(t, st.MoveGuest(g.ID, date(2025, 12, 15), 8, 2))

	before, err := st.SeatFor(g.ID, date(2025, 12, 14))
	require.NoError(t, err)
	assert.Equal(t, 7, before.Table.Number)
	assert.True(t, models.SameDate(before.EndDate, date(2025, 12, 14)))

	after, err := st.SeatFor(g.ID, date(2025, 12, 15))
	require.NoError(t, err)
	assert.Equal(t, 8, after.Table.Number)
	assert.Equal(t, 2, after.PlaceNumber)
	assert.True(t, models.SameDate(after.EndDate, date(2025, 12, 20)))
}

func TestMoveGuestFromStartRetargetsInPlace(t *testing.T) {
	st := openTestStore(t)
	g, err := st.CreateGuestWithSeat(models.Guest{
		FullName:  "Ivanova A.P.",
		StartDate: date(2025, 12, 10),
		EndDate:   date(2025, 12, 20),
		DietKind:  models.DietB,
	}, 7, 1)
	require.NoError(t, err)

	require.NoError(t, st.MoveGuest(g.ID, date(2025, 12, 10), 9, 4))

	var count int
	require.NoError(t, st.DB().Model(&models.SeatAssignment{}).Where("guest_id = ?", g.ID).Count(&count).Error)
	assert.Equal(t, 1, count, "move on the start date keeps a single assignment")

	seat, err := st.SeatFor(g.ID, date(2025, 12, 10))
	require.NoError(t, err)
	assert.Equal(t, 9, seat.Table.Number)
}

func TestMoveGuestRejectsTakenSeat(t *testing.T) {
	st := openTestStore(t)
	g, err := st.CreateGuestWithSeat(models.Guest{
		FullName:  "Ivanova A.P.",
		StartDate: date(2025, 12, 10),
		EndDate:   date(2025, 12, 20),
		DietKind:  models.DietB,
	}, 7, 1)
	require.NoError(t, err)
	_, err = st.CreateGuestWithSeat(models.Guest{
		FullName:  "Sidorov K.M.",
		StartDate: date(2025, 12, 10),
		EndDate:   date(2025, 12, 20),
		DietKind:  models.DietB,
	}, 7, 2)
	require.NoError(t, err)

	err = st.MoveGuest(g.ID, date(2025, 12, 12), 7, 2)
	assert.Equal(t, ErrSeatTaken, err)

	err = st.MoveGuest(g.ID, date(2025, 12, 25), 8, 1)
	assert.Error(t, err, "cannot move past the end of the stay")
}
