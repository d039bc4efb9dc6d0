package get_availability

import (
	"github.com/m04kA/Blane-SchedulingService/internal/domain"
)

// remainingBookings вычисляет остаток квоты единицы в бронированиях
//
// Для каждого ограниченного scope остаток в единицах потолка пересчитывается
// в количество бронирований через стоимость одного бронирования
// (UnitsFor(scope, 1)); итог - минимум по всем ограниченным scope.
// Вторым значением возвращается false, если ни один потолок не задан.
//
// Инвариант согласованности с проверкой допуска: единица с положительным
// остатком не может быть отклонена по ёмкости для одного бронирования
func remainingBookings(policy domain.CapacityPolicy, counts domain.UsageCounts) (int, bool) {
	scopes := []struct {
		scope    domain.CapacityScope
		existing int
	}{
		{domain.ScopeTotal, counts.Total},
		{domain.ScopeSlotOrDay, counts.SlotOrDay},
		{domain.ScopeCalendarDay, counts.CalendarDay},
	}

	bounded := false
	remaining := 0

	for _, s := range scopes {
		left, ok := policy.RemainingQuota(s.scope, s.existing)
		if !ok {
			continue
		}

		perBooking := policy.UnitsFor(s.scope, 1)
		if perBooking <= 0 {
			perBooking = 1
		}
		bookings := left / perBooking

		if !bounded || bookings < remaining {
			remaining = bookings
		}
		bounded = true
	}

	return remaining, bounded
}
