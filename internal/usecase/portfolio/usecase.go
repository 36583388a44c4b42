package portfolio

import (
	"context"
	"fmt"
	"io"
	"time"

	"smartlenderup-backend/internal/domain/apperr"
	loanDomain "smartlenderup-backend/internal/domain/loan"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const moduleName = "portfolio"

// Snapshot keeps the last loan list read from the store.
type Snapshot interface {
	Put(ctx context.Context, loans []loanDomain.Loan, takenAt time.Time) error
	Get(ctx context.Context) ([]loanDomain.Loan, time.Time, error)
}

type Report struct {
	loanDomain.ArrearsReport
	Stale bool      `json:"stale"`
	AsOf  time.Time `json:"as_of"`
}

type Usecase struct {
	loans    loanDomain.Repository
	snapshot Snapshot
	log      *logrus.Logger
	now      func() time.Time
}

func NewUsecase(loans loanDomain.Repository, snapshot Snapshot, log *logrus.Logger, now func() time.Time) *Usecase {
	if now == nil {
		now = time.Now
	}
	return &Usecase{loans: loans, snapshot: snapshot, log: log, now: now}
}

// Arrears reads the loan book and buckets it. When the store is unreachable
// the last snapshot is served with Stale set.
func (u *Usecase) Arrears(ctx context.Context) (*Report, error) {
	loans, err := u.loans.List(ctx)
	if err == nil {
		now := u.now().UTC()
		if u.snapshot != nil {
			if perr := u.snapshot.Put(ctx, loans, now); perr != nil {
				u.log.WithFields(logrus.Fields{"module": moduleName}).WithError(perr).Warn("store loan snapshot")
			}
		}
		return &Report{ArrearsReport: loanDomain.BucketLoans(loans), AsOf: now}, nil
	}

	u.log.WithFields(logrus.Fields{"module": moduleName}).WithError(err).Warn("loan list failed, falling back to snapshot")
	if u.snapshot == nil {
		return nil, apperr.Remote(err)
	}
	cached, takenAt, serr := u.snapshot.Get(ctx)
	if serr != nil {
		return nil, apperr.Remote(fmt.Errorf("%v; snapshot: %w", err, serr))
	}
	return &Report{ArrearsReport: loanDomain.BucketLoans(cached), Stale: true, AsOf: takenAt}, nil
}

var exportHeadings = []string{"Bucket", "Loans", "Outstanding", "% of Portfolio"}

const exportSheet = "Arrears"

// ExportArrears writes the arrears report as an .xlsx workbook.
func (u *Usecase) ExportArrears(ctx context.Context, w io.Writer) (*Report, error) {
	rep, err := u.Arrears(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	col := 'A'
	for _, h := range exportHeadings {
		if err := f.SetCellValue(exportSheet, string(col)+"1", h); err != nil {
			return nil, err
		}
		col++
	}

	row := 2
	for _, k := range loanDomain.BucketOrder {
		b := rep.Buckets[k]
		values := []any{k, b.Count, b.OutstandingAmount.StringFixed(2), b.PercentOfPortfolio.StringFixed(2)}
		if err := setRow(f, row, values); err != nil {
			return nil, err
		}
		row++
	}

	row++
	summary := [][]any{
		{"Active loans", rep.ActiveCount},
		{"Total outstanding", rep.TotalOutstanding.StringFixed(2)},
		{"PAR1 %", rep.PAR1.StringFixed(2)},
		{"PAR30 %", rep.PAR30.StringFixed(2)},
		{"PAR90 %", rep.PAR90.StringFixed(2)},
		{"As of", rep.AsOf.Format(time.RFC3339)},
		{"Stale", rep.Stale},
	}
	for _, values := range summary {
		if err := setRow(f, row, values); err != nil {
			return nil, err
		}
		row++
	}

	if err := f.Write(w); err != nil {
		return nil, err
	}
	return rep, nil
}

func setRow(f *excelize.File, row int, values []any) error {
	col := 'A'
	for _, v := range values {
		if err := f.SetCellValue(exportSheet, fmt.Sprintf("%c%d", col, row), v); err != nil {
			return err
		}
		col++
	}
	return nil
}
