package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selfcare-course-bot/internal/content"
	"selfcare-course-bot/internal/models"
)

type fakeStore struct {
	users   []models.User
	listErr error

	logged    map[string]bool // chatID/day/slot/date
	logErr    error
	completed map[string]bool // chatID/day
	advanced  map[int64]int
	finished  map[int64]bool
}

func newFakeStore(users ...models.User) *fakeStore {
	return &fakeStore{
		users:     users,
		logged:    map[string]bool{},
		completed: map[string]bool{},
		advanced:  map[int64]int{},
		finished:  map[int64]bool{},
	}
}

func slotKey(chatID int64, day int, slot models.Slot, date string) string {
	return fmt.Sprintf("%d/%d/%s/%s", chatID, day, slot, date)
}

func dayKey(chatID int64, day int) string {
	return fmt.Sprintf("%d/%d", chatID, day)
}

func (f *fakeStore) ListActiveUsers(context.Context, int64) ([]models.User, error) {
	return f.users, f.listErr
}

func (f *fakeStore) WasSlotSentToday(_ context.Context, chatID int64, day int, slot models.Slot, date string) bool {
	return f.logged[slotKey(chatID, day, slot, date)]
}

func (f *fakeStore) LogSlotSent(_ context.Context, chatID int64, day int, slot models.Slot, date string) error {
	if f.logErr != nil {
		return f.logErr
	}
	f.logged[slotKey(chatID, day, slot, date)] = true
	return nil
}

func (f *fakeStore) AllSlotsSentToday(_ context.Context, chatID int64, day int, date string) bool {
	for _, slot := range models.Slots {
		if !f.logged[slotKey(chatID, day, slot, date)] {
			return false
		}
	}
	return true
}

func (f *fakeStore) MarkDayCompleted(_ context.Context, chatID int64, day int, _ string) (bool, error) {
	key := dayKey(chatID, day)
	if f.completed[key] {
		return false, nil
	}
	f.completed[key] = true
	return true, nil
}

func (f *fakeStore) AdvanceUserDay(_ context.Context, chatID int64, newDay int) error {
	f.advanced[chatID] = newDay
	return nil
}

func (f *fakeStore) MarkCourseCompleted(_ context.Context, chatID int64) error {
	f.finished[chatID] = true
	return nil
}

type fakeSender struct {
	sends   []int64
	texts   []string
	options [][]content.Option
	failFor map[int64]error
}

func (f *fakeSender) SendSlot(chatID int64, text string, options []content.Option) error {
	if err := f.failFor[chatID]; err != nil {
		return err
	}
	f.sends = append(f.sends, chatID)
	f.texts = append(f.texts, text)
	f.options = append(f.options, options)
	return nil
}

func newEngine(store Store, sender Sender) *Engine {
	return NewEngine(store, sender, content.Day, time.UTC, 30*24*time.Hour)
}

func activeUser(chatID int64, day int) models.User {
	return models.User{ChatID: chatID, CurrentDay: day, Notifications: true}
}

func TestRunSlot_SendsAndLogs(t *testing.T) {
	store := newFakeStore(activeUser(100, 1))
	sender := &fakeSender{}
	e := newEngine(store, sender)

	e.RunSlot(context.Background(), models.SlotMorning)

	require.Len(t, sender.sends, 1)
	assert.Equal(t, int64(100), sender.sends[0])
	assert.True(t, store.logged[slotKey(100, 1, models.SlotMorning, e.Today())])
}

func TestRunSlot_SecondTickSameDaySendsNothing(t *testing.T) {
	store := newFakeStore(activeUser(100, 1))
	sender := &fakeSender{}
	e := newEngine(store, sender)

	e.RunSlot(context.Background(), models.SlotMorning)
	e.RunSlot(context.Background(), models.SlotMorning)

	assert.Len(t, sender.sends, 1)
}

func TestRunSlot_EveningCarriesOptions(t *testing.T) {
	// day 3 is a reflection day with evening options
	store := newFakeStore(activeUser(100, 3))
	sender := &fakeSender{}
	e := newEngine(store, sender)

	e.RunSlot(context.Background(), models.SlotExercise)
	e.RunSlot(context.Background(), models.SlotEvening)

	require.Len(t, sender.options, 2)
	assert.Empty(t, sender.options[0], "options belong to the evening slot only")
	assert.NotEmpty(t, sender.options[1])
}

func TestFullDayAdvancesUser(t *testing.T) {
	store := newFakeStore(activeUser(100, 2))
	sender := &fakeSender{}
	e := newEngine(store, sender)

	ctx := context.Background()
	for _, slot := range models.Slots {
		e.RunSlot(ctx, slot)
	}

	assert.Equal(t, 3, store.advanced[100])
	assert.False(t, store.finished[100])
}

func TestDaySevenCompletesCourse(t *testing.T) {
	store := newFakeStore(activeUser(100, 7))
	sender := &fakeSender{}
	e := newEngine(store, sender)

	ctx := context.Background()
	for _, slot := range models.Slots {
		e.RunSlot(ctx, slot)
	}

	assert.True(t, store.finished[100])
	assert.Zero(t, store.advanced[100], "current day must stay at 7")
}

func TestEveningWithMissingSlotDoesNotAdvance(t *testing.T) {
	store := newFakeStore(activeUser(100, 4))
	sender := &fakeSender{}
	e := newEngine(store, sender)

	ctx := context.Background()
	e.RunSlot(ctx, models.SlotMorning)
	e.RunSlot(ctx, models.SlotEvening) // exercise and phrase never fired

	assert.Zero(t, store.advanced[100])
	assert.False(t, store.completed[dayKey(100, 4)])
}

func TestCompletedDayIsMonotone(t *testing.T) {
	store := newFakeStore()
	sender := &fakeSender{}
	e := newEngine(store, sender)

	ctx := context.Background()
	today := e.Today()
	for _, slot := range models.Slots {
		require.NoError(t, store.LogSlotSent(ctx, 100, 2, slot, today))
	}

	require.NoError(t, e.CompleteDayIfDone(ctx, 100, 2, today))
	require.Equal(t, 3, store.advanced[100])

	// re-running the check must not advance again
	store.advanced[100] = 0
	require.NoError(t, e.CompleteDayIfDone(ctx, 100, 2, today))
	assert.Zero(t, store.advanced[100])
}

func TestDefensiveSkips(t *testing.T) {
	completed := activeUser(1, 7)
	completed.CourseCompleted = true
	corrupt := activeUser(2, 9)

	store := newFakeStore(completed, corrupt)
	sender := &fakeSender{}
	e := newEngine(store, sender)

	e.RunSlot(context.Background(), models.SlotMorning)

	assert.Empty(t, sender.sends)
}

func TestCatalogAbsentSkipsWithoutSideEffects(t *testing.T) {
	store := newFakeStore(activeUser(100, 5))
	sender := &fakeSender{}
	emptyCatalog := func(int) (content.DayContent, bool) { return content.DayContent{}, false }
	e := NewEngine(store, sender, emptyCatalog, time.UTC, 30*24*time.Hour)

	e.RunSlot(context.Background(), models.SlotMorning)

	assert.Empty(t, sender.sends)
	assert.Empty(t, store.logged)
}

func TestListFailureAbortsCycle(t *testing.T) {
	store := newFakeStore(activeUser(100, 1))
	store.listErr = errors.New("db down")
	sender := &fakeSender{}
	e := newEngine(store, sender)

	e.RunSlot(context.Background(), models.SlotMorning)

	assert.Empty(t, sender.sends)
}

func TestOneFailingUserDoesNotBlockOthers(t *testing.T) {
	store := newFakeStore(activeUser(1, 1), activeUser(2, 1))
	sender := &fakeSender{failFor: map[int64]error{1: errors.New("blocked")}}
	e := newEngine(store, sender)

	e.RunSlot(context.Background(), models.SlotMorning)

	require.Len(t, sender.sends, 1)
	assert.Equal(t, int64(2), sender.sends[0])
	assert.False(t, store.logged[slotKey(1, 1, models.SlotMorning, e.Today())],
		"failed delivery must not be logged")
}
