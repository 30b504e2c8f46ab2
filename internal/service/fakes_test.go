package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/roomescape-reservation/internal/model"
	"github.com/iliyamo/roomescape-reservation/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// store is an in-memory stand-in for the relational repositories.  It
// enforces the same unique and foreign-key rules as the schema.
type store struct {
	mu           sync.Mutex
	seq          int64
	times        map[int64]model.ReservationTime
	themes       map[int64]model.Theme
	reservations map[int64]model.Reservation
	members      map[int64]model.Member

	saves int   // reservation Save calls
	err   error // returned by every call when set
}

func newStore() *store {
	return &store{
		times:        map[int64]model.ReservationTime{},
		themes:       map[int64]model.Theme{},
		reservations: map[int64]model.Reservation{},
		members:      map[int64]model.Member{},
	}
}

func (s *store) next() int64 {
	s.seq++
	return s.seq
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// reservationRepo

type reservationRepo struct{ *store }

func (r reservationRepo) FindAll(context.Context) ([]model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []model.Reservation{}
	for _, id := range sortedKeys(r.reservations) {
		out = append(out, r.reservations[id])
	}
	return out, nil
}

func (r reservationRepo) FindByID(_ context.Context, id int64) (model.Reservation, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return model.Reservation{}, false, r.err
	}
	res, ok := r.reservations[id]
	return res, ok, nil
}

func (r reservationRepo) FetchByID(ctx context.Context, id int64) (model.Reservation, error) {
	res, ok, err := r.FindByID(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if !ok {
		return model.Reservation{}, repository.ErrReservationNotFound
	}
	return res, nil
}

func (r reservationRepo) FindAllByDateAndThemeID(_ context.Context, date time.Time, themeID int64) ([]model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []model.Reservation{}
	for _, id := range sortedKeys(r.reservations) {
		res := r.reservations[id]
		if res.Theme.ID == themeID && res.Date.Equal(date) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r reservationRepo) Save(_ context.Context, res model.Reservation) (model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.err != nil {
		return model.Reservation{}, r.err
	}
	for _, existing := range r.reservations {
		if existing.Theme.ID == res.Theme.ID && existing.Time.ID == res.Time.ID && existing.Date.Equal(res.Date) {
			return model.Reservation{}, repository.ErrDuplicateReservation
		}
	}
	res.ID = r.next()
	res.Time = r.times[res.Time.ID]
	res.Theme = r.themes[res.Theme.ID]
	r.reservations[res.ID] = res
	return res, nil
}

func (r reservationRepo) DeleteByID(_ context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	if _, ok := r.reservations[id]; !ok {
		return 0, nil
	}
	delete(r.reservations, id)
	return 1, nil
}

func (r reservationRepo) exists(match func(model.Reservation) bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	for _, res := range r.reservations {
		if match(res) {
			return true, nil
		}
	}
	return false, nil
}

func (r reservationRepo) ExistsByTimeID(_ context.Context, timeID int64) (bool, error) {
	return r.exists(func(res model.Reservation) bool { return res.Time.ID == timeID })
}

func (r reservationRepo) ExistsByThemeID(_ context.Context, themeID int64) (bool, error) {
	return r.exists(func(res model.Reservation) bool { return res.Theme.ID == themeID })
}

func (r reservationRepo) ExistsByThemeAndDateAndTimeID(_ context.Context, themeID int64, date time.Time, timeID int64) (bool, error) {
	return r.exists(func(res model.Reservation) bool {
		return res.Theme.ID == themeID && res.Time.ID == timeID && res.Date.Equal(date)
	})
}

func (r reservationRepo) FindPopularThemes(_ context.Context, from, until time.Time, limit int) ([]model.Theme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	counts := map[int64]int{}
	for _, res := range r.reservations {
		if !res.Date.Before(from) && !res.Date.After(until) {
			counts[res.Theme.ID]++
		}
	}
	ids := sortedKeys(counts)
	sort.SliceStable(ids, func(i, j int) bool { return counts[ids[i]] > counts[ids[j]] })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	out := []model.Theme{}
	for _, id := range ids {
		out = append(out, r.themes[id])
	}
	return out, nil
}

// timeRepo

type timeRepo struct{ *store }

func (r timeRepo) FindAll(context.Context) ([]model.ReservationTime, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []model.ReservationTime{}
	for _, id := range sortedKeys(r.times) {
		out = append(out, r.times[id])
	}
	return out, nil
}

func (r timeRepo) FindByID(_ context.Context, id int64) (model.ReservationTime, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return model.ReservationTime{}, false, r.err
	}
	t, ok := r.times[id]
	return t, ok, nil
}

func (r timeRepo) FetchByID(ctx context.Context, id int64) (model.ReservationTime, error) {
	t, ok, err := r.FindByID(ctx, id)
	if err != nil {
		return model.ReservationTime{}, err
	}
	if !ok {
		return model.ReservationTime{}, repository.ErrReservationTimeNotFound
	}
	return t, nil
}

func (r timeRepo) Save(_ context.Context, t model.ReservationTime) (model.ReservationTime, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return model.ReservationTime{}, r.err
	}
	t.ID = r.next()
	r.times[t.ID] = t
	return t, nil
}

func (r timeRepo) DeleteByID(_ context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	if _, ok := r.times[id]; !ok {
		return 0, nil
	}
	for _, res := range r.reservations {
		if res.Time.ID == id {
			return 0, repository.ErrConflict
		}
	}
	delete(r.times, id)
	return 1, nil
}

// themeRepo

type themeRepo struct{ *store }

func (r themeRepo) FindAll(context.Context) ([]model.Theme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []model.Theme{}
	for _, id := range sortedKeys(r.themes) {
		out = append(out, r.themes[id])
	}
	return out, nil
}

func (r themeRepo) FindByID(_ context.Context, id int64) (model.Theme, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return model.Theme{}, false, r.err
	}
	t, ok := r.themes[id]
	return t, ok, nil
}

func (r themeRepo) FetchByID(ctx context.Context, id int64) (model.Theme, error) {
	t, ok, err := r.FindByID(ctx, id)
	if err != nil {
		return model.Theme{}, err
	}
	if !ok {
		return model.Theme{}, repository.ErrThemeNotFound
	}
	return t, nil
}

func (r themeRepo) Save(_ context.Context, t model.Theme) (model.Theme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return model.Theme{}, r.err
	}
	t.ID = r.next()
	r.themes[t.ID] = t
	return t, nil
}

func (r themeRepo) DeleteByID(_ context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	if _, ok := r.themes[id]; !ok {
		return 0, nil
	}
	for _, res := range r.reservations {
		if res.Theme.ID == id {
			return 0, repository.ErrConflict
		}
	}
	delete(r.themes, id)
	return 1, nil
}

// memberRepo

type memberRepo struct{ *store }

func (r memberRepo) FindAll(context.Context) ([]model.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []model.Member{}
	for _, id := range sortedKeys(r.members) {
		out = append(out, r.members[id])
	}
	return out, nil
}

func (r memberRepo) FindByID(_ context.Context, id int64) (model.Member, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return model.Member{}, false, r.err
	}
	m, ok := r.members[id]
	return m, ok, nil
}

func (r memberRepo) FetchByID(ctx context.Context, id int64) (model.Member, error) {
	m, ok, err := r.FindByID(ctx, id)
	if err != nil {
		return model.Member{}, err
	}
	if !ok {
		return model.Member{}, repository.ErrMemberNotFound
	}
	return m, nil
}

func (r memberRepo) FindByEmail(_ context.Context, email string) (model.Member, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return model.Member{}, false, r.err
	}
	for _, m := range r.members {
		if strings.EqualFold(m.Email, strings.TrimSpace(email)) {
			return m, true, nil
		}
	}
	return model.Member{}, false, nil
}

func (r memberRepo) FetchByEmail(ctx context.Context, email string) (model.Member, error) {
	m, ok, err := r.FindByEmail(ctx, email)
	if err != nil {
		return model.Member{}, err
	}
	if !ok {
		return model.Member{}, repository.ErrMemberNotFound
	}
	return m, nil
}

func (r memberRepo) Save(ctx context.Context, m model.Member) (model.Member, error) {
	if _, ok, err := r.FindByEmail(ctx, m.Email); err != nil {
		return model.Member{}, err
	} else if ok {
		return model.Member{}, repository.ErrEmailExists
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.next()
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	r.members[m.ID] = m
	return m, nil
}

func (r memberRepo) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	m, ok, err := r.FindByEmail(ctx, email)
	if err != nil || !ok {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, m.ID)
	return 1, nil
}

var (
	_ repository.ReservationRepository     = reservationRepo{}
	_ repository.ReservationTimeRepository = timeRepo{}
	_ repository.ThemeRepository           = themeRepo{}
	_ repository.MemberRepository          = memberRepo{}
)

// observer records what the reservation service reported.
type observer struct {
	mu       sync.Mutex
	outcomes []string
	events   []bool
}

func (o *observer) ObserveReservation(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *observer) ObserveEvent(ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, ok)
}

type publisherFunc func(ctx context.Context, r model.Reservation) error

func (f publisherFunc) PublishReservationCreated(ctx context.Context, r model.Reservation) error {
	return f(ctx, r)
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
