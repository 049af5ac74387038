package main

import (
	"github.com/spf13/cobra"

	"github.com/gebv/bcpay/provider"
	"github.com/gebv/bcpay/services/payment"
)

func accountCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts in the payment system",
	}
	cmd.AddCommand(accountCreateCmd(g))
	cmd.AddCommand(accountCheckCmd(g))
	return cmd
}

func accountCreateCmd(g *globalFlags) *cobra.Command {
	req := &payment.CreateAccountRequest{}
	var method, corp string
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create party, account and site for the customer",
		Example: `  bcpay account create "Coop Housing" --city Victoria --address "1 Main St" \
    --postal-code "V8V 1A1" --province BC`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := newService(g)
			if err != nil {
				return err
			}
			req.Name = args[0]
			req.PaymentMethod = provider.PaymentMethod(method)
			req.CorpType = provider.CorpType(corp)
			triple, err := s.CreateAccount(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), triple)
		},
	}
	selectionFlags(cmd, &method, &corp)
	cmd.Flags().StringVar(&req.Address.City, "city", "", "city")
	cmd.Flags().StringVar(&req.Address.AddressLine1, "address", "", "address line 1")
	cmd.Flags().StringVar(&req.Address.PostalCode, "postal-code", "", "postal code")
	cmd.Flags().StringVar(&req.Address.Province, "province", "", "province")
	cmd.Flags().StringVar(&req.Address.Country, "country", "", "country, CA if empty")
	return cmd
}

func accountCheckCmd(g *globalFlags) *cobra.Command {
	req := &payment.IsValidAccountRequest{}
	var method, corp string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that party, account and site exist and belong together",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := newService(g)
			if err != nil {
				return err
			}
			req.PaymentMethod = provider.PaymentMethod(method)
			req.CorpType = provider.CorpType(corp)
			valid, err := s.IsValidAccount(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]bool{"valid": valid})
		},
	}
	selectionFlags(cmd, &method, &corp)
	tripleFlags(cmd, &req.AccountTriple)
	return cmd
}

func selectionFlags(cmd *cobra.Command, method, corp *string) {
	cmd.Flags().StringVar(method, "method", string(provider.CC), "payment method")
	cmd.Flags().StringVar(corp, "corp-type", string(provider.CP), "corp type")
}

func tripleFlags(cmd *cobra.Command, t *provider.AccountTriple) {
	cmd.Flags().StringVar(&t.PartyNumber, "party", "", "party number")
	cmd.Flags().StringVar(&t.AccountNumber, "account", "", "account number")
	cmd.Flags().StringVar(&t.SiteNumber, "site", "", "site number")
}
