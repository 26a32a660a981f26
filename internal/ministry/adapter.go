package ministry

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/alzaabi555/rased/internal/classroom"
)

// Phase is the adapter's session state.
type Phase int

const (
	PhaseUnauthenticated Phase = iota
	PhaseAuthenticating
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Adapter tracks one teacher's ministry session. Nothing it holds is
// persisted; a restart starts unauthenticated.
type Adapter struct {
	api API
	log zerolog.Logger

	mu       sync.Mutex
	phase    Phase
	session  Session
	filters  []Filter
	selected *Filter
	lastErr  error
}

// NewAdapter wraps api.
func NewAdapter(api API, log zerolog.Logger) *Adapter {
	return &Adapter{api: api, log: log.With().Str("component", "ministry").Logger()}
}

// Phase returns the current session state.
func (a *Adapter) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// Session returns the active session, if any.
func (a *Adapter) Session() (Session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session, a.phase == PhaseAuthenticated
}

// Filters returns the last fetched class list.
func (a *Adapter) Filters() []Filter {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.filters)
}

// Selected returns the chosen class.
func (a *Adapter) Selected() (Filter, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.selected == nil {
		return Filter{}, false
	}
	return *a.selected, true
}

// LastError returns the most recent failure, cleared by the next success.
func (a *Adapter) LastError() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Login moves Unauthenticated → Authenticating → Authenticated, or back to
// Unauthenticated on failure.
func (a *Adapter) Login(ctx context.Context, creds Credentials) error {
	a.mu.Lock()
	if a.phase == PhaseAuthenticating {
		a.mu.Unlock()
		return ErrBusy
	}
	a.phase = PhaseAuthenticating
	a.session, a.filters, a.selected = Session{}, nil, nil
	a.mu.Unlock()

	session, err := a.api.Login(ctx, creds)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastErr = err
	if err != nil {
		a.phase = PhaseUnauthenticated
		a.log.Warn().Err(err).Msg("login failed")
		return err
	}
	a.phase = PhaseAuthenticated
	a.session = session
	return nil
}

// LoadFilters fetches the class list. A failure leaves the session intact.
func (a *Adapter) LoadFilters(ctx context.Context) ([]Filter, error) {
	session, err := a.requireSession()
	if err != nil {
		return nil, err
	}

	filters, err := a.api.FetchFilters(ctx, session)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastErr = err
	if err != nil {
		a.log.Warn().Err(err).Msg("fetch filters failed")
		return nil, err
	}
	a.filters = slices.Clone(filters)
	a.selected = nil
	return filters, nil
}

// Select chooses a class from the fetched list by Filter.ID.
func (a *Adapter) Select(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.phase != PhaseAuthenticated {
		return ErrNotAuthenticated
	}
	for _, f := range a.filters {
		if f.ID() == id {
			chosen := f
			a.selected = &chosen
			return nil
		}
	}
	return fmt.Errorf("%w: unknown class %q", ErrNoSelection, id)
}

// SubmitAttendance sends the selected class's attendance for date. The
// adapter stays authenticated whatever the outcome.
func (a *Adapter) SubmitAttendance(ctx context.Context, students []classroom.Student, date string) (Ack, int, error) {
	session, filter, err := a.requireSelection()
	if err != nil {
		return Ack{}, 0, err
	}
	entries := AbsenceBatch(students, filter, date)
	ack, err := a.api.SubmitAbsence(ctx, session, filter, date, entries)
	a.record(err, "submit attendance")
	if err != nil {
		return Ack{}, 0, err
	}
	a.log.Info().Str("class", filter.Label()).Str("date", date).Int("entries", len(entries)).Msg("attendance submitted")
	return ack, len(entries), nil
}

// SubmitGrades sends the selected class's marks in category for sem.
func (a *Adapter) SubmitGrades(ctx context.Context, students []classroom.Student, cfg MarksConfig, category string, sem classroom.Semester) (Ack, int, error) {
	session, filter, err := a.requireSelection()
	if err != nil {
		return Ack{}, 0, err
	}
	if cfg.ClassID == "" {
		cfg.ClassID = filter.ClassID
	}
	if cfg.GradeID == "" {
		cfg.GradeID = filter.GradeID
	}
	entries := MarksBatch(students, filter, category, sem)
	ack, err := a.api.SubmitMarks(ctx, session, cfg, entries)
	a.record(err, "submit marks")
	if err != nil {
		return Ack{}, 0, err
	}
	a.log.Info().Str("class", filter.Label()).Str("category", category).Int("entries", len(entries)).Msg("marks submitted")
	return ack, len(entries), nil
}

// Logout discards the session and everything fetched with it.
func (a *Adapter) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.phase = PhaseUnauthenticated
	a.session, a.filters, a.selected, a.lastErr = Session{}, nil, nil, nil
}

func (a *Adapter) requireSession() (Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.phase != PhaseAuthenticated {
		return Session{}, ErrNotAuthenticated
	}
	return a.session, nil
}

func (a *Adapter) requireSelection() (Session, Filter, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.phase != PhaseAuthenticated {
		return Session{}, Filter{}, ErrNotAuthenticated
	}
	if a.selected == nil {
		return Session{}, Filter{}, ErrNoSelection
	}
	return a.session, *a.selected, nil
}

func (a *Adapter) record(err error, op string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastErr = err
	if err != nil {
		a.log.Warn().Err(err).Str("op", op).Msg("ministry call failed")
	}
}
