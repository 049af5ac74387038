package main

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/reform.v1"
	"gopkg.in/reform.v1/dialects/postgresql"

	"github.com/gebv/bcpay/provider"
	"github.com/gebv/bcpay/util"
)

type reportOptions struct {
	Period string
	Index  int
	Month  int
	Year   int
}

type reportRow struct {
	InvoiceNumber     int64  `json:"invoice_number"`
	TransactionNumber string `json:"transaction_number"`
	ReferenceNumber   string `json:"reference_number"`
	Status            string `json:"status"`
	ReceiptNumber     string `json:"receipt_number,omitempty"`
	CreatedAt         string `json:"created_at"`
}

func reportCmd(g *globalFlags) *cobra.Command {
	var (
		triple       provider.AccountTriple
		method, corp string
		opts         reportOptions
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "List invoices of a payment account created within a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			calendar, err := util.NewCalendar(cfg.Timezone, cfg.Holidays)
			if err != nil {
				return err
			}
			from, to, err := reportPeriod(calendar.CurrentLocalTime(), opts)
			if err != nil {
				return err
			}
			p, err := provider.Select(provider.PaymentMethod(method), provider.CorpType(corp))
			if err != nil {
				return err
			}

			sqlDB, err := openDB(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			store := &provider.Store{
				DB: reform.NewDB(sqlDB, postgresql.Dialect, reform.NewPrintfLogger(zap.L().Sugar().Debugf)),
			}

			acc, err := store.FindPaymentAccount(p, triple)
			if err != nil {
				return err
			}
			refs, err := store.ListInvoiceReferences(acc.PaymentAccountID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"account":  acc.Triple(),
				"from":     calendar.LocalFormattedDateTime(from, ""),
				"to":       calendar.LocalFormattedDateTime(to, ""),
				"invoices": reportRows(calendar, refs, from, to, cfg.PayBC.ReceiptPrefix),
			})
		},
	}
	selectionFlags(cmd, &method, &corp)
	tripleFlags(cmd, &triple)
	cmd.Flags().StringVar(&opts.Period, "period", "week", "week, month or yesterday")
	cmd.Flags().IntVar(&opts.Index, "index", 0, "weeks ago, 0 is the current week")
	cmd.Flags().IntVar(&opts.Month, "month", 0, "month number, previous month by default")
	cmd.Flags().IntVar(&opts.Year, "year", 0, "year of --month, current year by default")
	return cmd
}

// reportPeriod returns [from, to) in the zone of now.
func reportPeriod(now time.Time, opts reportOptions) (time.Time, time.Time, error) {
	switch opts.Period {
	case "yesterday":
		from := startOfDay(util.PreviousDay(now))
		return from, util.NextDay(from), nil

	case "week":
		if opts.Index < 0 {
			return time.Time{}, time.Time{}, errors.New("index must not be negative")
		}
		start, end := util.WeekStartAndEnd(now, opts.Index)
		return startOfDay(start), util.NextDay(startOfDay(end)), nil

	case "month":
		month, year := util.PreviousMonthAndYear(now)
		if opts.Month != 0 {
			if opts.Month < 1 || opts.Month > 12 {
				return time.Time{}, time.Time{}, errors.Errorf("invalid month %d", opts.Month)
			}
			month, year = time.Month(opts.Month), now.Year()
		}
		if opts.Year != 0 {
			year = opts.Year
		}
		start, end := util.FirstAndLastDatesOfMonth(now, month, year)
		return startOfDay(start), util.NextDay(startOfDay(end)), nil
	}
	return time.Time{}, time.Time{}, errors.Errorf("unknown period %q", opts.Period)
}

func reportRows(c *util.Calendar, refs []*provider.InvoiceReference, from, to time.Time, receiptPrefix string) []reportRow {
	rows := make([]reportRow, 0, len(refs))
	for _, ref := range refs {
		if ref.CreatedAt.Before(from) || !ref.CreatedAt.Before(to) {
			continue
		}
		row := reportRow{
			InvoiceNumber:     ref.InvoiceNumber,
			TransactionNumber: ref.TransactionNumber,
			ReferenceNumber:   ref.ReferenceNumber,
			Status:            string(ref.Status),
			CreatedAt:         c.LocalFormattedDateTime(ref.CreatedAt, ""),
		}
		if ref.Status == provider.InvoiceCompleted {
			row.ReceiptNumber = util.GenerateReceiptNumber(receiptPrefix, strconv.FormatInt(ref.InvoiceReferenceID, 10))
		}
		rows = append(rows, row)
	}
	return rows
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
