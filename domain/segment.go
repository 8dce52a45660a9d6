package domain

// BuyerSegment identifies a slice of the buyer pool. Single/Couple partition
// all buying households. FirstTime/Repeat partition the same pool again by
// purchase history, so their counts are an alternative cut and are never added
// to the Single+Couple household total.
type BuyerSegment string

const (
	SegmentSingle    BuyerSegment = "single"
	SegmentCouple    BuyerSegment = "couple"
	SegmentFirstTime BuyerSegment = "first_time"
	SegmentRepeat    BuyerSegment = "repeat"
)

// SegmentProfile is static configuration for one buyer segment.
type SegmentProfile struct {
	// Weight is the fraction of all buyers assumed to belong to the segment.
	Weight float64
	// IncomeMultiplier scales the single-buyer qualifying income. Couples
	// qualify at 75% of the single income for the same payment.
	IncomeMultiplier float64
	// AmortYears overrides the default amortization term when non-zero.
	AmortYears int
}
