package services

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/storage"
	"github.com/yeremiapane/restaurant-orders/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	utils.SilenceLoggers()
	os.Exit(m.Run())
}

var errBoom = errors.New("disk full")

// failingKV wraps a working adapter and fails the operations that are
// switched on.
type failingKV struct {
	storage.KV
	mu         sync.Mutex
	failGet    bool
	failSet    bool
	failRemove bool
}

func (f *failingKV) fail(get, set, remove bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet, f.failSet, f.failRemove = get, set, remove
}

func (f *failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	failing := f.failGet
	f.mu.Unlock()
	if failing {
		return "", false, errBoom
	}
	return f.KV.Get(ctx, key)
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	failing := f.failSet
	f.mu.Unlock()
	if failing {
		return errBoom
	}
	return f.KV.Set(ctx, key, value)
}

func (f *failingKV) SetMany(ctx context.Context, entries map[string]string) error {
	f.mu.Lock()
	failing := f.failSet
	f.mu.Unlock()
	if failing {
		return errBoom
	}
	return f.KV.SetMany(ctx, entries)
}

func (f *failingKV) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	failing := f.failRemove
	f.mu.Unlock()
	if failing {
		return errBoom
	}
	return f.KV.Remove(ctx, key)
}

type recordingNotifier struct {
	mu           sync.Mutex
	orders       []models.Order
	tables       []models.Table
	reservations []models.Reservation
	deleted      []string
}

func (r *recordingNotifier) OrderUpdated(o models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, o)
}

func (r *recordingNotifier) TableUpdated(t models.Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables = append(r.tables, t)
}

func (r *recordingNotifier) ReservationUpdated(res models.Reservation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reservations = append(r.reservations, res)
}

func (r *recordingNotifier) ReservationDeleted(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	store    *Store
	kv       *failingKV
	clock    *testClock
	notifier *recordingNotifier
}

// setupTestStore returns a seeded store on an in-memory sqlite database.
// Ids are sequential and the clock only moves when told to.
func setupTestStore(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	gormKV := storage.NewGormKV(db)
	require.NoError(t, gormKV.Migrate())

	kv := &failingKV{KV: gormKV}
	clock := &testClock{now: time.Date(2024, time.March, 13, 12, 30, 0, 0, time.Local)}
	notifier := &recordingNotifier{}

	store := NewStore(kv)
	store.Now = clock.Now
	store.Notifier = notifier
	seq := 0
	store.NewID = func() string {
		seq++
		return "gen-" + strconv.Itoa(seq)
	}

	require.NoError(t, store.Seed(context.Background()))
	return &testEnv{store: store, kv: kv, clock: clock, notifier: notifier}
}

func TestSeed_WritesEveryCollection(t *testing.T) {
	env := setupTestStore(t)
	ctx := context.Background()

	items, err := env.store.ListMenuItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 6)

	tables, err := env.store.ListTables(ctx)
	require.NoError(t, err)
	assert.Len(t, tables, 10)
	assert.Equal(t, models.TableOccupied, tables[1].Status)
	require.NotNil(t, tables[1].CurrentOrder)
	assert.Nil(t, tables[0].CurrentOrder)

	waiters, err := env.store.ListWaiters(ctx)
	require.NoError(t, err)
	require.Len(t, waiters, 1)
	assert.Equal(t, "garson1", waiters[0].Username)

	orders, err := env.store.ListOrders(ctx)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestSeed_KeepsExistingCollections(t *testing.T) {
	env := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, env.store.DeleteMenuItem(ctx, "1"))
	require.NoError(t, env.store.Seed(ctx))

	items, err := env.store.ListMenuItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestReadFailure_ReturnsEmptyList(t *testing.T) {
	env := setupTestStore(t)
	env.kv.fail(true, false, false)

	items, err := env.store.ListMenuItems(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorage)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

// stuckNotifier holds OrderUpdated until released.
type stuckNotifier struct {
	nopNotifier
	entered chan struct{}
	release chan struct{}
}

func (n *stuckNotifier) OrderUpdated(models.Order) {
	close(n.entered)
	<-n.release
}

func TestNotifier_DoesNotHoldStoreLock(t *testing.T) {
	env := setupTestStore(t)
	ctx := context.Background()
	notifier := &stuckNotifier{entered: make(chan struct{}), release: make(chan struct{})}
	env.store.Notifier = notifier

	placed := make(chan error, 1)
	go func() {
		_, err := env.store.AddOrder(ctx, sampleOrder("1"))
		placed <- err
	}()
	<-notifier.entered

	updated := make(chan error, 1)
	go func() {
		_, err := env.store.UpdateTableStatus(ctx, "5", models.TableAvailable)
		updated <- err
	}()

	select {
	case err := <-updated:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("table update blocked behind a stuck notifier")
	}

	close(notifier.release)
	require.NoError(t, <-placed)
}
