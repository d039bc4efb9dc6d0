package offer

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	"github.com/m04kA/Blane-SchedulingService/pkg/types"
)

// rangeWire плоское wire-представление диапазона дат в колонке date_ranges (JSONB)
type rangeWire struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// flexibleDate decodes one endpoint of a stored date range. The canonical
// representation is a plain "YYYY-MM-DD" string, but earlier buggy writers
// sometimes wrote the whole range object into the endpoint field
// ({"start": {"start": "...", "end": "..."}, ...}). This shim flattens that
// legacy shape at the storage boundary only; the domain calendar never sees
// non-flat values. Delete once the stored data is migrated.
type flexibleDate struct {
	plain       string
	nestedStart string
	nestedEnd   string
}

func (d *flexibleDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		d.plain = s
		return nil
	}

	var nested struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.Unmarshal(b, &nested); err == nil {
		d.nestedStart = nested.Start
		d.nestedEnd = nested.End
		return nil
	}

	// Нечитаемая граница: запись остаётся в списке как повреждённая,
	// чтобы её можно было удалить по индексу
	return nil
}

// forStart возвращает значение границы для начала диапазона
func (d flexibleDate) forStart() string {
	if d.plain != "" {
		return d.plain
	}
	if d.nestedStart != "" {
		return d.nestedStart
	}
	return d.nestedEnd
}

// forEnd возвращает значение границы для конца диапазона
func (d flexibleDate) forEnd() string {
	if d.plain != "" {
		return d.plain
	}
	if d.nestedEnd != "" {
		return d.nestedEnd
	}
	return d.nestedStart
}

// rangeDocument хранимое представление диапазона с поддержкой legacy формата
type rangeDocument struct {
	Start flexibleDate `json:"start"`
	End   flexibleDate `json:"end"`
}

// toDomain нормализует хранимый диапазон
// Повреждённые записи превращаются в нулевой DateRange, сохраняя позицию в списке
func (doc rangeDocument) toDomain() domain.DateRange {
	r, err := domain.ParseDateRange(doc.Start.forStart(), doc.End.forEnd())
	if err != nil {
		return domain.DateRange{}
	}
	return r
}

// decodeRanges декодирует колонку date_ranges в список диапазонов
func decodeRanges(raw []byte) ([]domain.DateRange, error) {
	if len(raw) == 0 {
		return []domain.DateRange{}, nil
	}

	var docs []rangeDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode date_ranges: %w", err)
	}

	ranges := make([]domain.DateRange, len(docs))
	for i, doc := range docs {
		ranges[i] = doc.toDomain()
	}
	return ranges, nil
}

// encodeRanges сериализует диапазоны в каноническом плоском формате
func encodeRanges(ranges []domain.DateRange) ([]byte, error) {
	wire := make([]rangeWire, len(ranges))
	for i, r := range ranges {
		if !r.Valid() {
			continue
		}
		wire[i] = rangeWire{
			Start: r.Start.Format(domain.DateFormat),
			End:   r.End.Format(domain.DateFormat),
		}
	}
	return json.Marshal(wire)
}

// calendarColumns плоские колонки календаря в таблице offers
type calendarColumns struct {
	weekdays            []string
	dailyStart          types.TimeString
	dailyEnd            types.TimeString
	slotIntervalMinutes int
	dateRanges          []byte
}

// encodeCalendar раскладывает календарь по колонкам в зависимости от режима
func encodeCalendar(calendar domain.Calendar) (calendarColumns, error) {
	switch c := calendar.(type) {
	case domain.SlotCalendar:
		return calendarColumns{
			weekdays:            c.Weekdays.Strings(),
			dailyStart:          c.DailyStart,
			dailyEnd:            c.DailyEnd,
			slotIntervalMinutes: c.SlotIntervalMinutes,
			dateRanges:          []byte("[]"),
		}, nil
	case domain.RangeCalendar:
		raw, err := encodeRanges(c.Ranges)
		if err != nil {
			return calendarColumns{}, err
		}
		return calendarColumns{weekdays: []string{}, dateRanges: raw}, nil
	default:
		return calendarColumns{}, fmt.Errorf("unsupported calendar type %T", calendar)
	}
}

// decodeCalendar собирает календарь из колонок строки offers
func decodeCalendar(mode domain.OfferMode, cols calendarColumns) (domain.Calendar, error) {
	switch mode {
	case domain.ModeSlot:
		weekdays, err := domain.ParseWeekdaySet(cols.weekdays)
		if err != nil {
			return nil, err
		}
		return domain.SlotCalendar{
			Weekdays:            weekdays,
			DailyStart:          cols.dailyStart,
			DailyEnd:            cols.dailyEnd,
			SlotIntervalMinutes: cols.slotIntervalMinutes,
		}, nil
	case domain.ModeRange:
		ranges, err := decodeRanges(cols.dateRanges)
		if err != nil {
			return nil, err
		}
		return domain.RangeCalendar{Ranges: ranges}, nil
	default:
		return nil, fmt.Errorf("unsupported offer mode %q", mode)
	}
}
