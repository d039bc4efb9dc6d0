package create_booking

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	offerStorage "github.com/m04kA/Blane-SchedulingService/internal/infra/storage/offer"
	"github.com/m04kA/Blane-SchedulingService/pkg/types"
)

// --- фейки для изоляции usecase от БД ---

type fakeOfferRepo struct {
	offers map[int64]*domain.Offer
}

func (r *fakeOfferRepo) GetByID(_ context.Context, id int64) (*domain.Offer, error) {
	offer, ok := r.offers[id]
	if !ok {
		return nil, offerStorage.ErrOfferNotFound
	}
	cp := *offer
	return &cp, nil
}

type fakeBookingRepo struct {
	mu      sync.Mutex
	nextID  int64
	created []*domain.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := *booking
	cp.ID = r.nextID
	cp.CreatedAt = time.Now()
	r.created = append(r.created, &cp)
	return &cp, nil
}

// fakeLedger хранит счётчики в памяти; условный инкремент под мьютексом,
// как это делает UPSERT с условием в Postgres
type fakeLedger struct {
	mu     sync.Mutex
	counts map[string]int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{counts: make(map[string]int)}
}

func ledgerKey(offerID int64, scope domain.CapacityScope, unitKey string) string {
	return strconv.FormatInt(offerID, 10) + "|" + string(scope) + "|" + unitKey
}

func (l *fakeLedger) CountReserved(_ context.Context, offerID int64, scope domain.CapacityScope, unitKey string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[ledgerKey(offerID, scope, unitKey)], nil
}

func (l *fakeLedger) TryReserve(_ context.Context, offerID int64, scope domain.CapacityScope, unitKey string, amount, ceiling int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := ledgerKey(offerID, scope, unitKey)
	if ceiling > 0 && l.counts[key]+amount > ceiling {
		return false, nil
	}
	l.counts[key] += amount
	return true, nil
}

// passthroughTxManager выполняет функцию без реальной транзакции
type passthroughTxManager struct{}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (p *fixedTime) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recordingObserver struct {
	mu       sync.Mutex
	admitted int
	rejected map[string]int
	reserves map[string]int
}

func (o *recordingObserver) ObserveDecision(admitted bool, reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if admitted {
		o.admitted++
		return
	}
	if o.rejected == nil {
		o.rejected = make(map[string]int)
	}
	o.rejected[reason]++
}

func (o *recordingObserver) ObserveReserve(scope string, reserved bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	outcome := "reserved"
	if !reserved {
		outcome = "refused"
	}
	if o.reserves == nil {
		o.reserves = make(map[string]int)
	}
	o.reserves[scope+"/"+outcome]++
}

// --- фикстуры ---

func testDay(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, value)
	require.NoError(t, err)
	return d
}

func slotOffer(capacity domain.CapacityPolicy) *domain.Offer {
	return &domain.Offer{
		ID:          1,
		Title:       "Spa day pass",
		Mode:        domain.ModeSlot,
		ActiveFrom:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ActiveUntil: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Calendar: domain.SlotCalendar{
			Weekdays:            domain.NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday),
			DailyStart:          types.TimeString("09:00"),
			DailyEnd:            types.TimeString("18:00"),
			SlotIntervalMinutes: 60,
		},
		Capacity: capacity,
		Status:   domain.OfferPublished,
	}
}

func rangeOffer(capacity domain.CapacityPolicy, ranges ...domain.DateRange) *domain.Offer {
	return &domain.Offer{
		ID:          2,
		Title:       "Weekend getaway",
		Mode:        domain.ModeRange,
		ActiveFrom:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ActiveUntil: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Calendar:    domain.RangeCalendar{Ranges: ranges},
		Capacity:    capacity,
		Status:      domain.OfferPublished,
	}
}

type env struct {
	uc       *UseCase
	offers   *fakeOfferRepo
	bookings *fakeBookingRepo
	ledger   *fakeLedger
	observer *recordingObserver
}

func newEnv(t *testing.T, offers ...*domain.Offer) *env {
	t.Helper()

	offerRepo := &fakeOfferRepo{offers: make(map[int64]*domain.Offer)}
	for _, o := range offers {
		offerRepo.offers[o.ID] = o
	}

	bookingRepo := &fakeBookingRepo{}
	ledger := newFakeLedger()
	observer := &recordingObserver{}

	uc := NewUseCase(offerRepo, bookingRepo, ledger, &passthroughTxManager{}, observer, nopLogger{})
	uc.timeProvider = &fixedTime{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}

	return &env{uc: uc, offers: offerRepo, bookings: bookingRepo, ledger: ledger, observer: observer}
}

func timePtr(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}

// --- тесты ---

func TestExecute_SlotBookingAdmitted(t *testing.T) {
	e := newEnv(t, slotOffer(domain.CapacityPolicy{
		MaxTotalBookings:  100,
		MaxPerSlotOrDay:   5,
		MaxPerCalendarDay: 20,
		PersonsMultiplier: 3,
	}))

	// 2026-06-01 - понедельник, входит в рабочие дни
	resp, err := e.uc.Execute(context.Background(), &Request{
		OfferID:   1,
		UserID:    42,
		Date:      testDay(t, "2026-06-01"),
		StartTime: timePtr("10:00"),
		Quantity:  2,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(42), resp.UserID)
	assert.Equal(t, 2, resp.Quantity)
	assert.Equal(t, 6, resp.Persons) // quantity * multiplier
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.NotNil(t, resp.StartTime)
	assert.Equal(t, "10:00", resp.StartTime.String())

	// Все три scope зарезервированы
	total, _ := e.ledger.CountReserved(context.Background(), 1, domain.ScopeTotal, domain.TotalUnitKey)
	slot, _ := e.ledger.CountReserved(context.Background(), 1, domain.ScopeSlotOrDay, "2026-06-01 10:00")
	day, _ := e.ledger.CountReserved(context.Background(), 1, domain.ScopeCalendarDay, "2026-06-01")
	assert.Equal(t, 2, total)
	assert.Equal(t, 2, slot)
	assert.Equal(t, 2, day)

	assert.Equal(t, 1, e.observer.admitted)
	// Каждый scope учтён как успешная попытка резервирования
	assert.Equal(t, map[string]int{
		"total/reserved":       1,
		"slot_or_day/reserved": 1,
		"day/reserved":         1,
	}, e.observer.reserves)
}

func TestExecute_RangeBookingAdmitted(t *testing.T) {
	r, err := domain.ParseDateRange("2026-06-10", "2026-06-20")
	require.NoError(t, err)

	e := newEnv(t, rangeOffer(domain.CapacityPolicy{MaxPerSlotOrDay: 10}, r))

	resp, err := e.uc.Execute(context.Background(), &Request{
		OfferID:  2,
		UserID:   7,
		Date:     testDay(t, "2026-06-15"),
		Quantity: 1,
	})

	require.NoError(t, err)
	assert.Nil(t, resp.StartTime)

	// В range-режиме slot_or_day и day делят один ключ-дату
	slot, _ := e.ledger.CountReserved(context.Background(), 2, domain.ScopeSlotOrDay, "2026-06-15")
	day, _ := e.ledger.CountReserved(context.Background(), 2, domain.ScopeCalendarDay, "2026-06-15")
	assert.Equal(t, 1, slot)
	assert.Equal(t, 1, day)
}

func TestExecute_OfferNotFound(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Execute(context.Background(), &Request{
		OfferID:   99,
		UserID:    1,
		Date:      testDay(t, "2026-06-01"),
		StartTime: timePtr("10:00"),
		Quantity:  1,
	})

	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestExecute_OfferArchived(t *testing.T) {
	offer := slotOffer(domain.CapacityPolicy{})
	offer.Status = domain.OfferArchived
	e := newEnv(t, offer)

	_, err := e.uc.Execute(context.Background(), &Request{
		OfferID:   1,
		UserID:    1,
		Date:      testDay(t, "2026-06-01"),
		StartTime: timePtr("10:00"),
		Quantity:  1,
	})

	assert.ErrorIs(t, err, ErrOfferInactive)
}

func TestExecute_PastDateRejected(t *testing.T) {
	e := newEnv(t, slotOffer(domain.CapacityPolicy{}))

	_, err := e.uc.Execute(context.Background(), &Request{
		OfferID:   1,
		UserID:    1,
		Date:      testDay(t, "2026-04-30"), // вчера относительно fixedTime
		StartTime: timePtr("10:00"),
		Quantity:  1,
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidInput(t *testing.T) {
	e := newEnv(t, slotOffer(domain.CapacityPolicy{}))

	tests := []struct {
		name string
		req  Request
	}{
		{
			name: "zero offer id",
			req:  Request{UserID: 1, Date: testDay(t, "2026-06-01"), StartTime: timePtr("10:00"), Quantity: 1},
		},
		{
			name: "zero user id",
			req:  Request{OfferID: 1, Date: testDay(t, "2026-06-01"), StartTime: timePtr("10:00"), Quantity: 1},
		},
		{
			name: "zero date",
			req:  Request{OfferID: 1, UserID: 1, StartTime: timePtr("10:00"), Quantity: 1},
		},
		{
			name: "malformed start time",
			req:  Request{OfferID: 1, UserID: 1, Date: testDay(t, "2026-06-01"), StartTime: timePtr("25:70"), Quantity: 1},
		},
		{
			// Без ведущего нуля время не совпало бы ни с одним слотом;
			// это ошибка формата, а не отсутствие доступности
			name: "non-canonical start time",
			req:  Request{OfferID: 1, UserID: 1, Date: testDay(t, "2026-06-01"), StartTime: timePtr("9:00"), Quantity: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_SlotModeCalendarChecks(t *testing.T) {
	e := newEnv(t, slotOffer(domain.CapacityPolicy{}))

	tests := []struct {
		name      string
		date      string
		startTime *types.TimeString
		wantErr   error
	}{
		{
			name:    "missing start time",
			date:    "2026-06-01",
			wantErr: ErrInvalidInput,
		},
		{
			name:      "off-grid start time",
			date:      "2026-06-01",
			startTime: timePtr("10:30"),
			wantErr:   ErrNotAvailable,
		},
		{
			name:      "closed weekday",
			date:      "2026-06-06", // суббота
			startTime: timePtr("10:00"),
			wantErr:   ErrNotAvailable,
		},
		{
			name:      "outside offer bounds",
			date:      "2027-01-04", // понедельник следующего года
			startTime: timePtr("10:00"),
			wantErr:   ErrNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Execute(context.Background(), &Request{
				OfferID:   1,
				UserID:    1,
				Date:      testDay(t, tt.date),
				StartTime: tt.startTime,
				Quantity:  1,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_RangeModeCalendarChecks(t *testing.T) {
	r, err := domain.ParseDateRange("2026-06-10", "2026-06-20")
	require.NoError(t, err)

	e := newEnv(t, rangeOffer(domain.CapacityPolicy{}, r))

	// Дата вне сохранённых диапазонов
	_, err = e.uc.Execute(context.Background(), &Request{
		OfferID:  2,
		UserID:   1,
		Date:     testDay(t, "2026-07-01"),
		Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrNotAvailable)

	// startTime не имеет смысла для range-режима
	_, err = e.uc.Execute(context.Background(), &Request{
		OfferID:   2,
		UserID:    1,
		Date:      testDay(t, "2026-06-15"),
		StartTime: timePtr("10:00"),
		Quantity:  1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_QuantityBounds(t *testing.T) {
	e := newEnv(t, slotOffer(domain.CapacityPolicy{}))

	for _, quantity := range []int{0, -3, domain.MaxBookingQuantity + 1} {
		_, err := e.uc.Execute(context.Background(), &Request{
			OfferID:   1,
			UserID:    1,
			Date:      testDay(t, "2026-06-01"),
			StartTime: timePtr("10:00"),
			Quantity:  quantity,
		})
		assert.ErrorIs(t, err, ErrQuantityInvalid, "quantity=%d", quantity)
	}
}

func TestExecute_CeilingRejections(t *testing.T) {
	book := func(e *env, date, start string, quantity int) error {
		_, err := e.uc.Execute(context.Background(), &Request{
			OfferID:   1,
			UserID:    1,
			Date:      testDay(t, date),
			StartTime: timePtr(start),
			Quantity:  quantity,
		})
		return err
	}

	t.Run("total exceeded", func(t *testing.T) {
		e := newEnv(t, slotOffer(domain.CapacityPolicy{MaxTotalBookings: 2}))
		require.NoError(t, book(e, "2026-06-01", "09:00", 2))
		assert.ErrorIs(t, book(e, "2026-06-02", "09:00", 1), ErrTotalExceeded)
		assert.Equal(t, map[string]int{string(domain.ReasonTotalExceeded): 1}, e.observer.rejected)
	})

	t.Run("slot exceeded", func(t *testing.T) {
		e := newEnv(t, slotOffer(domain.CapacityPolicy{MaxPerSlotOrDay: 2}))
		require.NoError(t, book(e, "2026-06-01", "09:00", 2))
		assert.ErrorIs(t, book(e, "2026-06-01", "09:00", 1), ErrSlotExceeded)
		// Другой слот того же дня свободен
		require.NoError(t, book(e, "2026-06-01", "10:00", 2))
	})

	t.Run("daily exceeded", func(t *testing.T) {
		e := newEnv(t, slotOffer(domain.CapacityPolicy{MaxPerSlotOrDay: 2, MaxPerCalendarDay: 3}))
		require.NoError(t, book(e, "2026-06-01", "09:00", 2))
		assert.ErrorIs(t, book(e, "2026-06-01", "10:00", 2), ErrDailyExceeded)
		// Следующий день считает с нуля
		require.NoError(t, book(e, "2026-06-02", "09:00", 2))
	})
}

func TestExecute_RejectionLeavesNoPartialReservation(t *testing.T) {
	// Total пропускает, но слот упирается в потолок: транзакция откатилась бы
	// целиком, и фейковый леджер не должен увидеть заявку сверх потолка
	e := newEnv(t, slotOffer(domain.CapacityPolicy{MaxTotalBookings: 100, MaxPerSlotOrDay: 1}))

	_, err := e.uc.Execute(context.Background(), &Request{
		OfferID:   1,
		UserID:    1,
		Date:      testDay(t, "2026-06-01"),
		StartTime: timePtr("09:00"),
		Quantity:  2,
	})
	assert.ErrorIs(t, err, ErrSlotExceeded)

	assert.Empty(t, e.bookings.created)
	assert.Equal(t, map[string]int{
		"total/reserved":      1,
		"slot_or_day/refused": 1,
	}, e.observer.reserves)
}

func TestExecute_ConcurrentBookingsNeverExceedCeiling(t *testing.T) {
	const (
		ceiling  = 5
		attempts = 40
	)

	e := newEnv(t, slotOffer(domain.CapacityPolicy{MaxPerSlotOrDay: ceiling}))

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.uc.Execute(context.Background(), &Request{
				OfferID:   1,
				UserID:    int64(i + 1),
				Date:      testDay(t, "2026-06-01"),
				StartTime: timePtr("09:00"),
				Quantity:  1,
			})
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range errs {
		if err == nil {
			admitted++
		} else {
			assert.ErrorIs(t, err, ErrSlotExceeded)
		}
	}

	assert.Equal(t, ceiling, admitted)
	assert.Len(t, e.bookings.created, ceiling)

	count, _ := e.ledger.CountReserved(context.Background(), 1, domain.ScopeSlotOrDay, "2026-06-01 09:00")
	assert.Equal(t, ceiling, count)
}
