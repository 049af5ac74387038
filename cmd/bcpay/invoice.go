package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gebv/bcpay/provider"
	"github.com/gebv/bcpay/services/payment"
)

func invoiceCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Manage invoices in the payment system",
	}
	cmd.AddCommand(invoiceCreateCmd(g))
	return cmd
}

func invoiceCreateCmd(g *globalFlags) *cobra.Command {
	req := &payment.CreateInvoiceRequest{}
	var method, corp string
	var items []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an invoice for the account",
		Example: `  bcpay invoice create --party P100 --account A200 --site S300 --number 1001 \
    --item "Annual report=50.00" --item "Service fee=1.50"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lineItems, err := parseLineItems(items)
			if err != nil {
				return err
			}
			s, _, err := newService(g)
			if err != nil {
				return err
			}
			req.PaymentMethod = provider.PaymentMethod(method)
			req.CorpType = provider.CorpType(corp)
			req.LineItems = lineItems
			resp, err := s.CreateInvoice(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	selectionFlags(cmd, &method, &corp)
	tripleFlags(cmd, &req.AccountTriple)
	cmd.Flags().IntVar(&req.InvoiceNumber, "number", 0, "invoice (transaction) number")
	cmd.Flags().StringArrayVar(&items, "item", nil, `line item "description=total", repeatable`)
	cmd.Flags().StringVar(&req.ReturnURL, "return-url", "", "url to return the payer to")
	return cmd
}

// parseLineItems разбирает строки "описание=сумма", описание может содержать "=".
func parseLineItems(in []string) ([]provider.LineItem, error) {
	out := make([]provider.LineItem, 0, len(in))
	for _, s := range in {
		i := strings.LastIndex(s, "=")
		if i <= 0 {
			return nil, errors.Errorf("line item %q: expected description=total", s)
		}
		total, err := decimal.NewFromString(strings.TrimSpace(s[i+1:]))
		if err != nil {
			return nil, errors.Wrapf(err, "line item %q", s)
		}
		out = append(out, provider.LineItem{
			Description: strings.TrimSpace(s[:i]),
			Total:       total,
			Quantity:    1,
		})
	}
	return out, nil
}
