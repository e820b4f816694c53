package sale

import (
	"time"

	"github.com/shopspring/decimal"
)

// Heuristic thresholds for the data-quality flags. These mirror observed
// behavior in the shop's reporting and are kept in one place for tuning.
const (
	minSampleSize     = 20
	outlierMeanFactor = 10
	sparseMeanGapDays = 90
)

// QualityResult flags data-quality concerns for the report UI. It is a
// heuristic signal, not a statistical guarantee.
type QualityResult struct {
	HasInsufficientData bool `json:"has_insufficient_data"`
	HasOutliers         bool `json:"has_outliers"`
	HasSparseDates      bool `json:"has_sparse_dates"`
	IsLowQuality        bool `json:"is_low_quality"`
}

// CheckQuality inspects the sample. totalCount is the size of the full
// dataset the page was drawn from; outlier detection only runs when the
// sample is the full dataset, since a filtered page says nothing about the
// overall price distribution.
func CheckQuality(enriched []Enriched, totalCount int) QualityResult {
	q := QualityResult{
		HasInsufficientData: len(enriched) < minSampleSize,
	}

	if len(enriched) == totalCount {
		q.HasOutliers = hasPriceOutliers(enriched)
	}
	q.HasSparseDates = hasSparseDates(enriched)

	q.IsLowQuality = q.HasInsufficientData || q.HasOutliers || q.HasSparseDates
	return q
}

// hasPriceOutliers reports whether some positive sale deviates from the mean
// of positive prices by more than outlierMeanFactor times that mean.
func hasPriceOutliers(enriched []Enriched) bool {
	sum := decimal.Zero
	count := 0
	for _, e := range enriched {
		if e.SalePrice.IsPositive() {
			sum = sum.Add(e.SalePrice)
			count++
		}
	}
	if count == 0 {
		return false
	}

	mean := sum.Div(decimal.NewFromInt(int64(count)))
	if !mean.IsPositive() {
		return false
	}
	limit := mean.Mul(decimal.NewFromInt(outlierMeanFactor))

	for _, e := range enriched {
		if !e.SalePrice.IsPositive() {
			continue
		}
		if e.SalePrice.Sub(mean).Abs().GreaterThan(limit) {
			return true
		}
	}
	return false
}

// hasSparseDates reports whether the date span is large relative to how many
// distinct sale dates it contains, e.g. two sales eleven months apart with
// nothing between.
func hasSparseDates(enriched []Enriched) bool {
	distinct := map[string]struct{}{}
	var earliest, latest time.Time
	for _, e := range enriched {
		d := e.SaleDate
		if d.IsZero() {
			continue
		}
		distinct[d.Format("2006-01-02")] = struct{}{}
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
		if latest.IsZero() || d.After(latest) {
			latest = d
		}
	}
	if len(distinct) < 2 {
		return false
	}

	spanDays := latest.Sub(earliest).Hours() / 24
	meanGap := spanDays / float64(len(distinct)-1)
	return meanGap > sparseMeanGapDays
}
