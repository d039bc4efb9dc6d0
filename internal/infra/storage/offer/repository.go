package offer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	"github.com/m04kA/Blane-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/Blane-SchedulingService/pkg/txmanager"
)

// Repository репозиторий для работы с офферами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория офферов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var offerColumns = []string{
	"id",
	"title",
	"mode",
	"active_from",
	"active_until",
	"weekdays",
	"daily_start",
	"daily_end",
	"slot_interval_minutes",
	"date_ranges",
	"max_total_bookings",
	"max_per_slot_or_day",
	"max_per_calendar_day",
	"persons_multiplier",
	"person_scope_total",
	"person_scope_slot",
	"person_scope_day",
	"status",
	"created_at",
	"updated_at",
}

// Create создает новый оффер
func (r *Repository) Create(ctx context.Context, o *domain.Offer) (*domain.Offer, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	cols, err := encodeCalendar(o.Calendar)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrEncodeCalendar, err)
	}

	query, args, err := psqlbuilder.Insert("offers").
		Columns(
			"title",
			"mode",
			"active_from",
			"active_until",
			"weekdays",
			"daily_start",
			"daily_end",
			"slot_interval_minutes",
			"date_ranges",
			"max_total_bookings",
			"max_per_slot_or_day",
			"max_per_calendar_day",
			"persons_multiplier",
			"person_scope_total",
			"person_scope_slot",
			"person_scope_day",
			"status",
		).
		Values(
			o.Title,
			o.Mode,
			o.ActiveFrom,
			o.ActiveUntil,
			pq.Array(cols.weekdays),
			cols.dailyStart,
			cols.dailyEnd,
			cols.slotIntervalMinutes,
			cols.dateRanges,
			o.Capacity.MaxTotalBookings,
			o.Capacity.MaxPerSlotOrDay,
			o.Capacity.MaxPerCalendarDay,
			o.Capacity.PersonsMultiplier,
			o.Capacity.PersonScopes.Total,
			o.Capacity.PersonScopes.SlotOrDay,
			o.Capacity.PersonScopes.CalendarDay,
			o.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return o, nil
}

// GetByID получает оффер по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(offerColumns...).
		From("offers").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку оффера на время проверки и резервирования
	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		o         domain.Offer
		cols      calendarColumns
		weekdays  pq.StringArray
		start     sql.NullString
		end       sql.NullString
		interval  sql.NullInt64
		rawRanges []byte
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&o.Title,
		&o.Mode,
		&o.ActiveFrom,
		&o.ActiveUntil,
		&weekdays,
		&start,
		&end,
		&interval,
		&rawRanges,
		&o.Capacity.MaxTotalBookings,
		&o.Capacity.MaxPerSlotOrDay,
		&o.Capacity.MaxPerCalendarDay,
		&o.Capacity.PersonsMultiplier,
		&o.Capacity.PersonScopes.Total,
		&o.Capacity.PersonScopes.SlotOrDay,
		&o.Capacity.PersonScopes.CalendarDay,
		&o.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan offer: %v", ErrScanRow, err)
	}

	cols.weekdays = weekdays
	cols.dateRanges = rawRanges
	if start.Valid {
		_ = cols.dailyStart.Scan(start.String)
	}
	if end.Valid {
		_ = cols.dailyEnd.Scan(end.String)
	}
	if interval.Valid {
		cols.slotIntervalMinutes = int(interval.Int64)
	}

	calendar, err := decodeCalendar(o.Mode, cols)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - decode calendar: %v", ErrScanRow, err)
	}
	o.Calendar = calendar

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return &o, nil
}

// Update сохраняет расписание и политику ёмкости оффера
// Обновляются только поля планирования; запись всегда проходит через
// канонический плоский формат date_ranges
func (r *Repository) Update(ctx context.Context, o *domain.Offer) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	cols, err := encodeCalendar(o.Calendar)
	if err != nil {
		return fmt.Errorf("%w: Update: %v", ErrEncodeCalendar, err)
	}

	query, args, err := psqlbuilder.Update("offers").
		Set("mode", o.Mode).
		Set("active_from", o.ActiveFrom).
		Set("active_until", o.ActiveUntil).
		Set("weekdays", pq.Array(cols.weekdays)).
		Set("daily_start", cols.dailyStart).
		Set("daily_end", cols.dailyEnd).
		Set("slot_interval_minutes", cols.slotIntervalMinutes).
		Set("date_ranges", cols.dateRanges).
		Set("max_total_bookings", o.Capacity.MaxTotalBookings).
		Set("max_per_slot_or_day", o.Capacity.MaxPerSlotOrDay).
		Set("max_per_calendar_day", o.Capacity.MaxPerCalendarDay).
		Set("persons_multiplier", o.Capacity.PersonsMultiplier).
		Set("person_scope_total", o.Capacity.PersonScopes.Total).
		Set("person_scope_slot", o.Capacity.PersonScopes.SlotOrDay).
		Set("person_scope_day", o.Capacity.PersonScopes.CalendarDay).
		Set("status", o.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": o.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOfferNotFound
	}

	return nil
}
