// Package memory хранилище в памяти процесса: бронирования, пользователи и транзакции
// с теми же гарантиями уникальности, что и SQL-адаптеры
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

type slotKey struct {
	courtID int
	date    types.DateString
	hour    int
}

type txKey struct{}

// Store in-memory реализация репозиториев и менеджера транзакций.
// Транзакции выполняются строго по одной (txMu), при ошибке состояние
// восстанавливается из снимка.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	bookings map[string]*domain.Booking
	slots    map[slotKey]string
	users    map[string]*domain.User
	emails   map[string]string
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		bookings: make(map[string]*domain.Booking),
		slots:    make(map[slotKey]string),
		users:    make(map[string]*domain.User),
		emails:   make(map[string]string),
	}
}

// Bookings репозиторий бронирований поверх хранилища
func (s *Store) Bookings() *Bookings {
	return &Bookings{s: s}
}

// Users репозиторий пользователей поверх хранилища
func (s *Store) Users() *Users {
	return &Users{s: s}
}

// Do выполняет fn в транзакции
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

// DoSerializable транзакции в памяти всегда сериализуемы
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

func (s *Store) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// write выполняет изменение данных. Вне транзакции запись ждёт окончания текущей
// транзакции, чтобы откат не затёр её результат
func (s *Store) write(ctx context.Context, fn func() error) error {
	if !s.inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

type snapshot struct {
	bookings map[string]*domain.Booking
	slots    map[slotKey]string
	users    map[string]*domain.User
	emails   map[string]string
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		bookings: make(map[string]*domain.Booking, len(s.bookings)),
		slots:    make(map[slotKey]string, len(s.slots)),
		users:    make(map[string]*domain.User, len(s.users)),
		emails:   make(map[string]string, len(s.emails)),
	}
	for k, v := range s.bookings {
		snap.bookings[k] = v.Clone()
	}
	for k, v := range s.slots {
		snap.slots[k] = v
	}
	for k, v := range s.users {
		u := *v
		snap.users[k] = &u
	}
	for k, v := range s.emails {
		snap.emails[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = snap.bookings
	s.slots = snap.slots
	s.users = snap.users
	s.emails = snap.emails
}

// Bookings репозиторий бронирований
type Bookings struct {
	s *Store
}

// Create сохраняет бронирования атомарно: при занятом слоте не сохраняется ни одно
func (r *Bookings) Create(ctx context.Context, bookings []*domain.Booking) error {
	return r.s.write(ctx, func() error {
		batch := make(map[slotKey]bool, len(bookings))
		for _, b := range bookings {
			key := slotKey{courtID: b.CourtID, date: b.Date, hour: b.Hour}
			if _, taken := r.s.slots[key]; taken || batch[key] {
				return booking.ErrSlotTaken
			}
			if _, exists := r.s.bookings[b.ID]; exists {
				return booking.ErrSlotTaken
			}
			batch[key] = true
		}

		for _, b := range bookings {
			r.s.bookings[b.ID] = b.Clone()
			r.s.slots[slotKey{courtID: b.CourtID, date: b.Date, hour: b.Hour}] = b.ID
		}
		return nil
	})
}

// GetByID получает бронирование по ID
func (r *Bookings) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return b.Clone(), nil
}

// ListByDate бронирования даты по корту и часу
func (r *Bookings) ListByDate(_ context.Context, date types.DateString) ([]*domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool { return b.Date == date }, func(a, b *domain.Booking) bool {
		if a.CourtID != b.CourtID {
			return a.CourtID < b.CourtID
		}
		return a.Hour < b.Hour
	}), nil
}

// ListByUser бронирования пользователя начиная с from (пустая дата - все)
func (r *Bookings) ListByUser(_ context.Context, userID string, from types.DateString) ([]*domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool {
		return b.UserID == userID && (from.IsZero() || !b.Date.IsBefore(from))
	}, func(a, b *domain.Booking) bool {
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Hour != b.Hour {
			return a.Hour < b.Hour
		}
		return a.CourtID < b.CourtID
	}), nil
}

func (r *Bookings) list(match func(*domain.Booking) bool, less func(a, b *domain.Booking) bool) []*domain.Booking {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if match(b) {
			out = append(out, b.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Update перезаписывает корт, час, тип и атрибуты
func (r *Bookings) Update(ctx context.Context, b *domain.Booking) error {
	return r.s.write(ctx, func() error {
		current, ok := r.s.bookings[b.ID]
		if !ok {
			return booking.ErrBookingNotFound
		}

		oldKey := slotKey{courtID: current.CourtID, date: current.Date, hour: current.Hour}
		newKey := slotKey{courtID: b.CourtID, date: current.Date, hour: b.Hour}
		if holder, taken := r.s.slots[newKey]; taken && holder != b.ID {
			return booking.ErrSlotTaken
		}

		updated := current.Clone()
		updated.CourtID = b.CourtID
		updated.Hour = b.Hour
		updated.Type = b.Type
		updated.VMType = b.VMType
		updated.Opponent = b.Opponent
		updated.Opponent2 = b.Opponent2
		updated.Partner = b.Partner
		updated.Description = b.Description
		updated.UpdatedAt = b.UpdatedAt

		// освобождаем старый слот, только если он ещё наш (при переносе блока его мог занять сосед)
		if r.s.slots[oldKey] == b.ID {
			delete(r.s.slots, oldKey)
		}
		r.s.slots[newKey] = b.ID
		r.s.bookings[b.ID] = updated
		return nil
	})
}

// Delete удаляет бронирования по ID; отсутствующий id отменяет удаление целиком
func (r *Bookings) Delete(ctx context.Context, ids ...string) error {
	return r.s.write(ctx, func() error {
		for _, id := range ids {
			if _, ok := r.s.bookings[id]; !ok {
				return booking.ErrBookingNotFound
			}
		}
		for _, id := range ids {
			r.s.deleteBooking(id)
		}
		return nil
	})
}

// DeleteByUser удаляет все бронирования пользователя
func (r *Bookings) DeleteByUser(ctx context.Context, userID string) (int, error) {
	n := 0
	err := r.s.write(ctx, func() error {
		for id, b := range r.s.bookings {
			if b.UserID == userID {
				r.s.deleteBooking(id)
				n++
			}
		}
		return nil
	})
	return n, err
}

func (s *Store) deleteBooking(id string) {
	b := s.bookings[id]
	key := slotKey{courtID: b.CourtID, date: b.Date, hour: b.Hour}
	if s.slots[key] == id {
		delete(s.slots, key)
	}
	delete(s.bookings, id)
}

// Users репозиторий пользователей
type Users struct {
	s *Store
}

// Create сохраняет пользователя, email уникален без учёта регистра
func (r *Users) Create(ctx context.Context, u *domain.User) error {
	return r.s.write(ctx, func() error {
		email := domain.NormalizeEmail(u.Email)
		if _, taken := r.s.emails[email]; taken {
			return user.ErrEmailTaken
		}
		if _, exists := r.s.users[u.ID]; exists {
			return user.ErrEmailTaken
		}

		stored := *u
		stored.Email = email
		r.s.users[u.ID] = &stored
		r.s.emails[email] = u.ID
		return nil
	})
}

// GetByID получает пользователя по ID
func (r *Users) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

// GetByEmail получает пользователя по email
func (r *Users) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.emails[domain.NormalizeEmail(email)]
	r.s.mu.RUnlock()

	if !ok {
		return nil, user.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

// List все пользователи, новые первыми
func (r *Users) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Email < out[j].Email
	})
	return out, nil
}

// UpdateStatus меняет статус учётной записи
func (r *Users) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, at time.Time) error {
	return r.update(ctx, id, func(u *domain.User) {
		u.Status = status
		u.UpdatedAt = at
	})
}

// UpdateRole меняет роль
func (r *Users) UpdateRole(ctx context.Context, id string, role domain.Role, at time.Time) error {
	return r.update(ctx, id, func(u *domain.User) {
		u.Role = role
		u.UpdatedAt = at
	})
}

func (r *Users) update(ctx context.Context, id string, apply func(*domain.User)) error {
	return r.s.write(ctx, func() error {
		u, ok := r.s.users[id]
		if !ok {
			return user.ErrUserNotFound
		}
		updated := *u
		apply(&updated)
		r.s.users[id] = &updated
		return nil
	})
}

// Delete удаляет пользователя
func (r *Users) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func() error {
		u, ok := r.s.users[id]
		if !ok {
			return user.ErrUserNotFound
		}
		delete(r.s.emails, u.Email)
		delete(r.s.users, id)
		return nil
	})
}
