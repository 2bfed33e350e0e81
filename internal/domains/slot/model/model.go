package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	DefaultOpeningHour    = 9
	DefaultClosingHour    = 22
	DefaultUnitPrice      = 10000
	DefaultTaxRatePercent = 10

	SlotLength = time.Hour
)

var (
	ErrInvalidRange  = errors.New("invalid time range")
	ErrNoSlots       = errors.New("no slots selected")
	ErrNotContiguous = errors.New("slots are not contiguous")
	ErrDuplicateSlot = errors.New("slot requested more than once")
)

// Range is the half-open interval [Start, End).
type Range struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

func NewRange(start, end Clock) (Range, error) {
	if end <= start {
		return Range{}, fmt.Errorf("%w: %s must be after %s", ErrInvalidRange, end, start)
	}

	return Range{Start: start, End: end}, nil
}

// ParseRange parses "HH:MM-HH:MM".
func ParseRange(value string) (Range, error) {
	startStr, endStr, found := strings.Cut(value, "-")
	if !found {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, value)
	}

	start, err := ParseClock(startStr)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, value)
	}

	end, err := ParseClock(endStr)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, value)
	}

	return NewRange(start, end)
}

func ParseRanges(values []string) ([]Range, error) {
	ranges := make([]Range, 0, len(values))

	for _, value := range values {
		r, err := ParseRange(value)
		if err != nil {
			return nil, err
		}

		ranges = append(ranges, r)
	}

	return ranges, nil
}

// Overlaps reports whether the two half-open intervals share any instant.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

func (r Range) Duration() time.Duration {
	return time.Duration(r.End-r.Start) * time.Minute
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Strings renders ranges in their "HH:MM-HH:MM" form.
func Strings(ranges []Range) []string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = r.String()
	}

	return out
}

// Span sorts ranges and returns the interval they cover. Each range must start where the previous
// one ends.
func Span(ranges []Range) (Range, error) {
	if len(ranges) == 0 {
		return Range{}, ErrNoSlots
	}

	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b Range) int {
		return int(a.Start - b.Start)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start != sorted[i-1].End {
			return Range{}, fmt.Errorf("%w: %s and %s", ErrNotContiguous, sorted[i-1], sorted[i])
		}
	}

	return Range{Start: sorted[0].Start, End: sorted[len(sorted)-1].End}, nil
}

// Slot is one bookable grid cell on a specific day.
type Slot struct {
	Date Date
	Range
}

// Grid is the bookable day: one-hour slots from OpeningHour to ClosingHour.
type Grid struct {
	OpeningHour int
	ClosingHour int
}

func DefaultGrid() Grid {
	return Grid{OpeningHour: DefaultOpeningHour, ClosingHour: DefaultClosingHour}
}

// NewGrid falls back to the default hours when opening/closing do not describe a day.
func NewGrid(opening, closing int) Grid {
	if opening < 0 || closing > 24 || opening >= closing {
		return DefaultGrid()
	}

	return Grid{OpeningHour: opening, ClosingHour: closing}
}

func (g Grid) Opening() Clock {
	return At(g.OpeningHour)
}

func (g Grid) Closing() Clock {
	return At(g.ClosingHour)
}

// Hours is the number of slots in a day.
func (g Grid) Hours() int {
	return max(g.ClosingHour-g.OpeningHour, 0)
}

// GenerateDaySlots returns the day's slots in order. It does not depend on the weekday.
func (g Grid) GenerateDaySlots(date Date) []Slot {
	slots := make([]Slot, 0, g.Hours())

	for start := g.Opening(); start < g.Closing(); start = start.Add(SlotLength) {
		slots = append(slots, Slot{
			Date:  date,
			Range: Range{Start: start, End: start.Add(SlotLength)},
		})
	}

	return slots
}

// Contains reports whether r lies within opening hours.
func (g Grid) Contains(r Range) bool {
	return r.Start >= g.Opening() && r.End <= g.Closing()
}

// IsSlot reports whether r is exactly one grid cell.
func (g Grid) IsSlot(r Range) bool {
	return g.Contains(r) && r.Start.OnTheHour() && r.Duration() == SlotLength
}

// Aligned reports whether r covers whole grid cells.
func (g Grid) Aligned(r Range) bool {
	return g.Contains(r) && r.Start.OnTheHour() && r.End.OnTheHour()
}

// Expand splits an aligned range into its grid cells.
func (g Grid) Expand(r Range) ([]Range, error) {
	if !g.Aligned(r) {
		return nil, fmt.Errorf("%w: %s is not aligned to the %s-%s grid", ErrInvalidRange, r, g.Opening(), g.Closing())
	}

	ranges := make([]Range, 0, int(r.Duration()/SlotLength))
	for start := r.Start; start < r.End; start = start.Add(SlotLength) {
		ranges = append(ranges, Range{Start: start, End: start.Add(SlotLength)})
	}

	return ranges, nil
}

// Cells expands every range into its grid cells. Ranges may be apart but must not share a cell.
func (g Grid) Cells(ranges []Range) ([]Range, error) {
	if len(ranges) == 0 {
		return nil, ErrNoSlots
	}

	cells := make([]Range, 0, len(ranges))
	seen := make(map[Clock]struct{}, len(ranges))

	for _, r := range ranges {
		expanded, err := g.Expand(r)
		if err != nil {
			return nil, err
		}

		for _, cell := range expanded {
			if _, ok := seen[cell.Start]; ok {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateSlot, cell)
			}

			seen[cell.Start] = struct{}{}
			cells = append(cells, cell)
		}
	}

	slices.SortFunc(cells, func(a, b Range) int {
		return int(a.Start - b.Start)
	})

	return cells, nil
}

// Pricing computes the tax-inclusive price of a number of slots.
type Pricing struct {
	UnitPrice      int
	TaxRatePercent int
}

func DefaultPricing() Pricing {
	return Pricing{UnitPrice: DefaultUnitPrice, TaxRatePercent: DefaultTaxRatePercent}
}

func NewPricing(unitPrice, taxRatePercent int) Pricing {
	pricing := DefaultPricing()

	if unitPrice > 0 {
		pricing.UnitPrice = unitPrice
	}

	if taxRatePercent >= 0 {
		pricing.TaxRatePercent = taxRatePercent
	}

	return pricing
}

// ComputePrice returns floor(slots * unit * (1 + tax)).
func (p Pricing) ComputePrice(slots int) int {
	if slots <= 0 {
		return 0
	}

	return slots * p.UnitPrice * (100 + p.TaxRatePercent) / 100
}
