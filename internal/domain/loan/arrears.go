package loan

import "github.com/shopspring/decimal"

// Arrears bucket keys. 30+ covers 31..90 days, 90+ covers 91 days and over.
const (
	Bucket1To7  = "1-7"
	Bucket8To30 = "8-30"
	Bucket30    = "30+"
	Bucket90    = "90+"
)

var BucketOrder = []string{Bucket1To7, Bucket8To30, Bucket30, Bucket90}

type Bucket struct {
	Count              int             `json:"count"`
	OutstandingAmount  decimal.Decimal `json:"outstanding_amount"`
	PercentOfPortfolio decimal.Decimal `json:"percent_of_portfolio"`
}

type ArrearsReport struct {
	Buckets          map[string]Bucket `json:"buckets"`
	ActiveCount      int               `json:"active_count"`
	TotalOutstanding decimal.Decimal   `json:"total_outstanding"`
	// PAR ratios in percent: share of outstanding at least 1, over 30 and
	// over 90 days late.
	PAR1  decimal.Decimal `json:"par1"`
	PAR30 decimal.Decimal `json:"par30"`
	PAR90 decimal.Decimal `json:"par90"`
}

// BucketFor returns the bucket key for a days-in-arrears value, or "" when
// the loan is current.
func BucketFor(days int) string {
	switch {
	case days < 1:
		return ""
	case days <= 7:
		return Bucket1To7
	case days <= 30:
		return Bucket8To30
	case days <= 90:
		return Bucket30
	default:
		return Bucket90
	}
}

// BucketLoans aggregates active loans by days in arrears. Loans that are not
// Active or Overdue, or have nothing outstanding, are ignored.
func BucketLoans(loans []Loan) ArrearsReport {
	rep := ArrearsReport{
		Buckets:          make(map[string]Bucket, len(BucketOrder)),
		TotalOutstanding: decimal.Zero,
	}
	for _, k := range BucketOrder {
		rep.Buckets[k] = Bucket{OutstandingAmount: decimal.Zero, PercentOfPortfolio: decimal.Zero}
	}

	for i := range loans {
		l := &loans[i]
		if !l.IsActive() {
			continue
		}
		rep.ActiveCount++
		rep.TotalOutstanding = rep.TotalOutstanding.Add(l.OutstandingBalance)

		k := BucketFor(l.DaysInArrears)
		if k == "" {
			continue
		}
		b := rep.Buckets[k]
		b.Count++
		b.OutstandingAmount = b.OutstandingAmount.Add(l.OutstandingBalance)
		rep.Buckets[k] = b
	}

	for k, b := range rep.Buckets {
		b.PercentOfPortfolio = percentOf(b.OutstandingAmount, rep.TotalOutstanding)
		rep.Buckets[k] = b
	}

	b1, b8, b30, b90 := rep.Buckets[Bucket1To7], rep.Buckets[Bucket8To30], rep.Buckets[Bucket30], rep.Buckets[Bucket90]
	over90 := b90.OutstandingAmount
	over30 := b30.OutstandingAmount.Add(over90)
	over1 := b1.OutstandingAmount.Add(b8.OutstandingAmount).Add(over30)
	rep.PAR1 = percentOf(over1, rep.TotalOutstanding)
	rep.PAR30 = percentOf(over30, rep.TotalOutstanding)
	rep.PAR90 = percentOf(over90, rep.TotalOutstanding)
	return rep
}

func percentOf(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(decimal.NewFromInt(100)).DivRound(total, 2)
}
