package autosave

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/alzaabi555/rased/internal/classroom"
	"github.com/alzaabi555/rased/internal/state"
	"github.com/alzaabi555/rased/internal/storage"
)

type recordingBackend struct {
	mu       sync.Mutex
	saves    []classroom.Snapshot
	err      error
	failures int // saves to fail before err applies
}

func (b *recordingBackend) Name() string { return "recording" }

func (b *recordingBackend) Load(context.Context) (classroom.Snapshot, error) {
	return classroom.Snapshot{}, storage.ErrNotFound
}

func (b *recordingBackend) Save(_ context.Context, snap classroom.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failures > 0 {
		b.failures--
		return errors.New("transient")
	}
	if b.err != nil {
		return b.err
	}
	b.saves = append(b.saves, snap)
	return nil
}

func (b *recordingBackend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.saves)
}

func (b *recordingBackend) last() classroom.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves[len(b.saves)-1]
}

func loadedStore() *state.Store {
	s := state.New(classroom.DefaultSnapshot())
	s.RecordLoad("file", nil)
	return s
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSaver_DebouncesBurstIntoOneSave(t *testing.T) {
	store := loadedStore()
	backend := &recordingBackend{}
	saver := New(store, backend, Options{Delay: 40 * time.Millisecond, Grace: -1}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	saver.Start(ctx)
	time.Sleep(10 * time.Millisecond)

	for _, c := range []string{"a", "b", "c"} {
		store.SetClasses(state.Value([]string{c}))
		time.Sleep(5 * time.Millisecond)
	}

	waitFor(t, func() bool { return backend.count() >= 1 })
	time.Sleep(100 * time.Millisecond)

	if n := backend.count(); n != 1 {
		t.Fatalf("saves = %d, want 1", n)
	}
	if got := backend.last().Classes; !reflect.DeepEqual(got, []string{"c"}) {
		t.Fatalf("saved classes = %v, want the latest value [c]", got)
	}
	if store.Status().Dirty() {
		t.Fatal("store still dirty after save")
	}
}

func TestSaver_LoadedStateIsNotResaved(t *testing.T) {
	store := loadedStore()
	backend := &recordingBackend{}
	saver := New(store, backend, Options{Delay: 10 * time.Millisecond, Grace: 20 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	saver.Start(ctx)

	time.Sleep(100 * time.Millisecond)
	if n := backend.count(); n != 0 {
		t.Fatalf("saves = %d, want 0 for an untouched store", n)
	}
}

func TestSaver_EditDuringGraceIsSavedAfterwards(t *testing.T) {
	store := loadedStore()
	backend := &recordingBackend{}
	saver := New(store, backend, Options{Delay: 10 * time.Millisecond, Grace: 50 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	saver.Start(ctx)

	store.SetClasses(state.Value([]string{"4A"}))
	time.Sleep(20 * time.Millisecond)
	if n := backend.count(); n != 0 {
		t.Fatalf("saved during grace window")
	}
	waitFor(t, func() bool { return backend.count() == 1 })
}

func TestSaver_FlushWritesPendingChange(t *testing.T) {
	store := loadedStore()
	backend := &recordingBackend{}
	saver := New(store, backend, Options{Delay: time.Hour}, zerolog.Nop())

	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("Flush on clean store: %v", err)
	}
	if backend.count() != 0 {
		t.Fatal("Flush wrote an unchanged store")
	}

	store.SetClasses(state.Value([]string{"4A"}))
	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if backend.count() != 1 {
		t.Fatalf("saves = %d, want 1", backend.count())
	}
	_ = saver.Flush(context.Background())
	if backend.count() != 1 {
		t.Fatal("second Flush should be a no-op")
	}
}

func TestSaver_FailureIsRecorded(t *testing.T) {
	store := loadedStore()
	backend := &recordingBackend{err: errors.New("disk full")}
	saver := New(store, backend, Options{}, zerolog.Nop())

	store.SetClasses(state.Value([]string{"4A"}))
	if err := saver.Flush(context.Background()); err == nil {
		t.Fatal("Flush should return the backend error")
	}
	st := store.Status()
	if st.SaveError == nil || !st.Dirty() || st.ConsecutiveFailures != 1 {
		t.Fatalf("status = %#v", st)
	}
}

func TestSaver_RetriesAfterTransientFailure(t *testing.T) {
	store := loadedStore()
	backend := &recordingBackend{failures: 2}
	saver := New(store, backend, Options{Delay: 10 * time.Millisecond, Grace: -1}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	saver.Start(ctx)
	time.Sleep(5 * time.Millisecond)

	store.SetClasses(state.Value([]string{"4A"}))
	waitFor(t, func() bool { return backend.count() == 1 })

	st := store.Status()
	if st.Dirty() || st.SaveError != nil || st.ConsecutiveFailures != 0 {
		t.Fatalf("status after recovery = %+v", st)
	}
	if got := backend.last().Classes; !reflect.DeepEqual(got, []string{"4A"}) {
		t.Fatalf("saved classes = %v", got)
	}
}

func TestSaver_ExclusiveBlocksSaves(t *testing.T) {
	store := loadedStore()
	backend := &recordingBackend{}
	saver := New(store, backend, Options{Delay: time.Hour}, zerolog.Nop())

	store.SetClasses(state.Value([]string{"4A"}))
	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_ = saver.Exclusive(func() error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered
	go func() { done <- saver.Flush(context.Background()) }()

	time.Sleep(30 * time.Millisecond)
	if backend.count() != 0 {
		t.Fatal("save ran while Exclusive held the lock")
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if backend.count() != 1 {
		t.Fatalf("saves = %d, want 1", backend.count())
	}
}

func TestSaver_PersistsLatestValueToFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	file := storage.NewFileBackend(fs, "/data")
	store := loadedStore()
	saver := New(store, file, Options{Delay: 20 * time.Millisecond, Grace: -1}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	saver.Start(ctx)
	time.Sleep(10 * time.Millisecond)

	store.SetTeacherInfo(state.Value(classroom.TeacherInfo{Name: "first"}))
	store.SetTeacherInfo(state.Value(classroom.TeacherInfo{Name: "second"}))
	waitFor(t, func() bool { return !store.Status().Dirty() })
	cancel()

	got, err := file.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.TeacherInfo.Name != "second" {
		t.Fatalf("persisted teacher = %q, want second", got.TeacherInfo.Name)
	}
}

func TestNew_Defaults(t *testing.T) {
	saver := New(loadedStore(), &recordingBackend{}, Options{}, zerolog.Nop())
	if saver.Delay() != DefaultDelay || saver.grace != DefaultGrace {
		t.Fatalf("delay=%v grace=%v", saver.Delay(), saver.grace)
	}
}
