package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	"github.com/m04kA/Blane-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/Blane-SchedulingService/pkg/txmanager"
)

// Repository леджер бронирований: счётчики занятой ёмкости по единицам
// (offer_id, scope, unit_key). Единственная точка записи, через которую
// проходит резервирование - условный инкремент гарантирует, что два
// конкурентных запроса не превысят потолок вместе, даже если каждый
// по отдельности в него укладывался
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр леджера
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountReserved возвращает количество занятых единиц для (оффер, scope, ключ)
// Отсутствие строки счётчика означает ноль занятых единиц
func (r *Repository) CountReserved(ctx context.Context, offerID int64, scope domain.CapacityScope, unitKey string) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("reserved").
		From("booking_counters").
		Where(squirrel.Eq{
			"offer_id": offerID,
			"scope":    string(scope),
			"unit_key": unitKey,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountReserved - build select query: %v", ErrBuildQuery, err)
	}

	var reserved int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&reserved)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: CountReserved: %v", ErrLedgerUnavailable, err)
	}

	return reserved, nil
}

// TryReserve атомарно резервирует amount единиц против потолка ceiling
// (0 = без ограничения). Возвращает false, если потолок не позволяет
// резервирование; счётчик при этом не меняется.
//
// Условие проверяется в самом UPDATE - это и есть требуемая точка
// сериализации "compare-and-increment": проверка и запись не разделяются
// на два обращения к БД
func (r *Repository) TryReserve(ctx context.Context, offerID int64, scope domain.CapacityScope, unitKey string, amount, ceiling int) (bool, error) {
	if amount <= 0 {
		return false, nil
	}
	// Свежая единица: первый же запрос больше потолка
	if ceiling > 0 && amount > ceiling {
		return false, nil
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_counters").
		Columns("offer_id", "scope", "unit_key", "reserved").
		Values(offerID, string(scope), unitKey, amount).
		Suffix(`ON CONFLICT (offer_id, scope, unit_key)
			DO UPDATE SET reserved = booking_counters.reserved + ?, updated_at = NOW()
			WHERE ? = 0 OR booking_counters.reserved + ? <= ?`,
			amount, ceiling, amount, ceiling).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: TryReserve - build upsert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: TryReserve: %v", ErrLedgerUnavailable, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: TryReserve - get rows affected: %v", ErrLedgerUnavailable, err)
	}

	return rowsAffected > 0, nil
}

// Release освобождает amount единиц при отмене бронирования
// Счётчик не опускается ниже нуля
func (r *Repository) Release(ctx context.Context, offerID int64, scope domain.CapacityScope, unitKey string, amount int) error {
	if amount <= 0 {
		return nil
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_counters").
		Set("reserved", squirrel.Expr("GREATEST(reserved - ?, 0)", amount)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"offer_id": offerID,
			"scope":    string(scope),
			"unit_key": unitKey,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release: %v", ErrLedgerUnavailable, err)
	}

	return nil
}
