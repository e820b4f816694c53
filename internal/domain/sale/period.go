package sale

import (
	"fmt"
	"time"
)

const isoDate = "2006-01-02"

// Preset names accepted by RangeFromPreset.
const (
	PresetLast7        = "last7"
	PresetThisMonth    = "thisMonth"
	PresetLastMonth    = "lastMonth"
	PresetLast3Months  = "last3Months"
	PresetLast12Months = "last12Months"
)

// DateRange is an inclusive ISO date range.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RangeFromPreset computes the inclusive date range for a preset relative to
// now. The clock is a parameter so reports are testable.
func RangeFromPreset(preset string, now time.Time) (DateRange, error) {
	today := now.Format(isoDate)
	switch preset {
	case PresetLast7:
		return DateRange{From: now.AddDate(0, 0, -6).Format(isoDate), To: today}, nil
	case PresetThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return DateRange{From: first.Format(isoDate), To: today}, nil
	case PresetLastMonth:
		firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		firstOfLast := firstOfThis.AddDate(0, -1, 0)
		lastOfLast := firstOfThis.AddDate(0, 0, -1)
		return DateRange{From: firstOfLast.Format(isoDate), To: lastOfLast.Format(isoDate)}, nil
	case PresetLast3Months:
		return DateRange{From: now.AddDate(0, -3, 0).Format(isoDate), To: today}, nil
	case PresetLast12Months:
		return DateRange{From: now.AddDate(0, -12, 0).Format(isoDate), To: today}, nil
	}
	return DateRange{}, fmt.Errorf("unknown date preset %q", preset)
}

// DatasetBounds returns the earliest and latest sale dates in the set as an
// ISO range. Both fields are empty when the set is empty.
func DatasetBounds(sales []Enriched) DateRange {
	if len(sales) == 0 {
		return DateRange{}
	}
	min, max := sales[0].SaleDate, sales[0].SaleDate
	for _, s := range sales[1:] {
		if s.SaleDate.Before(min) {
			min = s.SaleDate
		}
		if s.SaleDate.After(max) {
			max = s.SaleDate
		}
	}
	return DateRange{From: min.Format(isoDate), To: max.Format(isoDate)}
}

// FormatPeriod renders a human label for the selected reporting period.
// fallbackFrom/fallbackTo are the actual bounds of the dataset, used when no
// explicit range was chosen. The function never fails: unparsable input
// degrades to "Selected period".
func FormatPeriod(from, to, fallbackFrom, fallbackTo string) string {
	if from == "" && to == "" {
		if fallbackFrom != "" || fallbackTo != "" {
			return FormatPeriod(fallbackFrom, fallbackTo, "", "")
		}
		return "All time"
	}

	if to == "" {
		d, err := time.Parse(isoDate, from)
		if err != nil {
			return "Selected period"
		}
		return "Since " + d.Format("Jan 2, 2006")
	}
	if from == "" {
		d, err := time.Parse(isoDate, to)
		if err != nil {
			return "Selected period"
		}
		return "Until " + d.Format("Jan 2, 2006")
	}

	start, err := time.Parse(isoDate, from)
	if err != nil {
		return "Selected period"
	}
	end, err := time.Parse(isoDate, to)
	if err != nil {
		return "Selected period"
	}
	if end.Before(start) {
		start, end = end, start
	}

	days := int(end.Sub(start).Hours()/24) + 1
	switch {
	case days == 1:
		return start.Format("Jan 2, 2006")
	case days <= 7:
		return fmt.Sprintf("%d days", days)
	case isFullCalendarMonth(start, end):
		return start.Format("January 2006")
	case start.Year() == end.Year() && start.Month() == end.Month():
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	default:
		return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	}
}

func isFullCalendarMonth(start, end time.Time) bool {
	if start.Day() != 1 {
		return false
	}
	lastDay := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location()).AddDate(0, 1, -1)
	return end.Year() == start.Year() && end.Month() == start.Month() && end.Day() == lastDay.Day()
}
