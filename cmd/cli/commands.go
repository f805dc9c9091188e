package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iho/ledgerclient/internal/adapter/http/dto"
	"github.com/iho/ledgerclient/internal/domain"
	"github.com/iho/ledgerclient/internal/usecase"
)

func vatCmd() *cobra.Command {
	var total, vat string

	cmd := &cobra.Command{
		Use:   "vat",
		Short: "Derive the VAT rate of a gross total",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := decimal.NewFromString(total)
			if err != nil {
				return fmt.Errorf("invalid --total: %w", err)
			}
			v, err := decimal.NewFromString(vat)
			if err != nil {
				return fmt.Errorf("invalid --vat: %w", err)
			}

			rate, err := domain.VatRate(t, v)
			if err != nil {
				return err
			}
			if rate == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "none")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), rate.StringFixed(domain.VatRatePlaces))
			return nil
		},
	}

	cmd.Flags().StringVar(&total, "total", "", "Gross total")
	cmd.Flags().StringVar(&vat, "vat", "0", "VAT amount included in the total")
	_ = cmd.MarkFlagRequired("total")
	return cmd
}

func entryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Entry operations",
	}
	cmd.AddCommand(entryBuildCmd(a), entryGetCmd(a), entryDeleteCmd(a), entryLegsCmd(a))
	return cmd
}

func entryBuildCmd(a *app) *cobra.Command {
	var (
		description string
		date        string
		legs        []string
		currency    string
		rate        string
		groupID     int64
		insert      bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a balanced entry from NUMBER=AMOUNT legs",
		Long: `Build a balanced entry from NUMBER=AMOUNT legs. A positive amount is money leaving
the account. The entry is printed as JSON; --insert also posts it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dateLedger, err := domain.ParseLedgerDate(date)
			if err != nil {
				return err
			}
			raw, err := parseLegs(legs)
			if err != nil {
				return err
			}

			input := usecase.EntryInput{
				Description: description,
				DateLedger:  dateLedger,
				Legs:        raw,
				Options:     domain.EntryOptions{Currency: currency},
			}
			if rate != "" {
				r, err := decimal.NewFromString(rate)
				if err != nil {
					return fmt.Errorf("invalid --rate: %w", err)
				}
				input.Options.ExchangeRate = &r
			}
			if groupID > 0 {
				input.Options.Group = &domain.EntryGroup{ID: groupID}
			}

			entries := a.entries(cmd.Context())
			var entry *domain.Entry
			if insert {
				entry, err = entries.Record(cmd.Context(), input)
			} else {
				entry, err = entries.Build(cmd.Context(), input)
			}
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), dto.EntryToPayload(entry))
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "Entry description")
	cmd.Flags().StringVar(&date, "date", "", "Ledger date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&legs, "leg", nil, "Leg as ACCOUNT_NUMBER=AMOUNT, repeatable")
	cmd.Flags().StringVar(&currency, "currency", "", "Leg currency when not the base currency")
	cmd.Flags().StringVar(&rate, "rate", "", "Exchange rate to the base currency")
	cmd.Flags().Int64Var(&groupID, "group", 0, "Existing entry group id")
	cmd.Flags().BoolVar(&insert, "insert", false, "Post the entry to the ledger")
	_ = cmd.MarkFlagRequired("desc")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func entryGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get ENTRY_ID",
		Short: "Show an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			entry, err := a.entries(cmd.Context()).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.EntryToPayload(entry))
		},
	}
}

func entryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ENTRY_ID",
		Short: "Delete an unlocked entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.entries(cmd.Context()).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "entry %d deleted\n", id)
			return nil
		},
	}
}

func entryLegsCmd(a *app) *cobra.Command {
	var (
		accountID  int64
		start, end string
	)

	cmd := &cobra.Command{
		Use:   "legs",
		Short: "List posted legs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := domain.LegFilter{AccountID: accountID}
			var err error
			if start != "" {
				if filter.Start, err = domain.ParseLedgerDate(start); err != nil {
					return err
				}
			}
			if end != "" {
				if filter.End, err = domain.ParseLedgerDate(end); err != nil {
					return err
				}
			}

			legs, err := a.ledger().ListEntryAccounts(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.PostedLegsFromDomain(legs))
		},
	}

	cmd.Flags().Int64Var(&accountID, "account", 0, "Account id")
	cmd.Flags().StringVar(&start, "start", "", "First ledger date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last ledger date (YYYY-MM-DD)")
	return cmd
}

func balanceCmd(a *app) *cobra.Command {
	var (
		start          string
		ends           []string
		accountIDs     []int64
		excludeEntries []int64
		excludeGroups  []int64
		nonZero        bool
		withTx         bool
		crossCheck     bool
	)

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show account balances over one or more windows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, err := domain.ParseLedgerDate(start)
			if err != nil {
				return err
			}
			endDates := make([]time.Time, 0, len(ends))
			for _, e := range ends {
				d, err := domain.ParseLedgerDate(e)
				if err != nil {
					return err
				}
				endDates = append(endDates, d)
			}

			query := usecase.BalanceMultiQuery{
				Start:    from,
				EndDates: endDates,
				Filters: domain.BalanceFilters{
					AccountIDs:            accountIDs,
					OnlyNonZero:           nonZero,
					OnlyWithAtLeastOneTx:  withTx,
					ExcludeTransactionIDs: excludeEntries,
					ExcludeGroupIDs:       excludeGroups,
				},
			}

			balances := usecase.NewBalanceUseCase(a.ledger())
			if len(endDates) == 1 && !crossCheck {
				snapshots, err := balances.Balances(cmd.Context(), query.Single(0))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dto.BalancesFromDomain(snapshots))
			}

			var sets [][]domain.BalanceSnapshot
			if crossCheck {
				sets, err = balances.CrossCheckMulti(cmd.Context(), query)
			} else {
				sets, err = balances.BalancesMulti(cmd.Context(), query)
			}
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), dto.BalanceWindowsFromDomain(ends, sets))
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First ledger date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&ends, "end", nil, "Last ledger date (YYYY-MM-DD), repeatable")
	cmd.Flags().Int64SliceVar(&accountIDs, "account", nil, "Restrict to these account ids")
	cmd.Flags().Int64SliceVar(&excludeEntries, "exclude-entry", nil, "Ignore these entry ids")
	cmd.Flags().Int64SliceVar(&excludeGroups, "exclude-group", nil, "Ignore entries of these group ids")
	cmd.Flags().BoolVar(&nonZero, "non-zero", false, "Only accounts with a non-zero balance")
	cmd.Flags().BoolVar(&withTx, "with-tx", false, "Only accounts with at least one leg in the window")
	cmd.Flags().BoolVar(&crossCheck, "cross-check", false, "Verify the multi-window result against single-window queries")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

// importRecord is one row of an --records file.
type importRecord struct {
	RefNumberInt int64 `json:"ref_number_int"`
	Client       struct {
		Name string `json:"name"`
	} `json:"client"`
	Project struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"project"`
	Type  string          `json:"type"`
	Total decimal.Decimal `json:"total"`
	Vat   decimal.Decimal `json:"vat"`
}

// importMapping is the --mapping file: the lookups rows are mapped with.
type importMapping struct {
	Companies      map[string]string `yaml:"companies"`
	Addresses      map[string]int64  `yaml:"addresses"`
	PaymentProfile int64             `yaml:"payment_profile"`
}

func loadImport(recordsPath, mappingPath string) ([]domain.InvoiceImport, *importMapping, error) {
	raw, err := os.ReadFile(recordsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read records: %w", err)
	}
	var rows []importRecord
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, nil, fmt.Errorf("parse records: %w", err)
	}

	raw, err = os.ReadFile(mappingPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read mapping: %w", err)
	}
	var mapping importMapping
	if err := yaml.Unmarshal(raw, &mapping); err != nil {
		return nil, nil, fmt.Errorf("parse mapping: %w", err)
	}
	if mapping.PaymentProfile == 0 {
		return nil, nil, fmt.Errorf("mapping %s: payment_profile is required", mappingPath)
	}

	records := make([]domain.InvoiceImport, len(rows))
	for i, r := range rows {
		records[i] = domain.InvoiceImport{
			RefNumberInt: r.RefNumberInt,
			Client:       domain.ImportClient{Name: r.Client.Name},
			Project:      domain.ImportProject{ID: r.Project.ID, Name: r.Project.Name},
			Type:         r.Type,
			Total:        r.Total,
			Vat:          r.Vat,
		}
	}
	return records, &mapping, nil
}

func importCmd(a *app) *cobra.Command {
	var (
		recordsPath string
		mappingPath string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Map invoice records and send them to the invoice import endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, mapping, err := loadImport(recordsPath, mappingPath)
			if err != nil {
				return err
			}

			companies := domain.CompanyDirectory(mapping.Companies)
			addresses := domain.AddressDirectory(mapping.Addresses)
			profile := domain.PaymentProfileRef{ID: mapping.PaymentProfile}

			if dryRun {
				drafts, err := domain.MapImportRecords(records, companies, addresses, profile)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dto.DraftsToPayload(drafts))
			}

			imported, err := usecase.NewImportUseCase(a.ledger(), a.metrics, a.log).Import(
				cmd.Context(), records, usecase.ImportDirectories{Companies: companies, Addresses: addresses}, profile)
			if err != nil {
				return err
			}

			for _, inv := range imported {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d item(s)\n", inv.UUID, inv.Items)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&recordsPath, "records", "", "JSON file of invoice records")
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "YAML file with companies, addresses and payment_profile")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the mapped drafts without sending them")
	_ = cmd.MarkFlagRequired("records")
	_ = cmd.MarkFlagRequired("mapping")
	return cmd
}

func consistencyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, _ []string) error {
			check, err := usecase.NewLedgerUseCase(a.ledger()).CheckConsistency(cmd.Context())
			if err != nil {
				return fmt.Errorf("consistency check FAILED: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Consistency check PASSED")
			fmt.Fprintf(cmd.OutOrStdout(), "Entries: %d\n", check.EntryCount)
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %s\n", check.Total)
			return nil
		},
	}
}

func lockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lock ENTRY_ID",
		Short: "Lock an entry against updates and deletion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			uuid, err := a.entries(cmd.Context()).Lock(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uuid)
			return nil
		},
	}
}

func unlockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock LOCK_UUID",
		Short: "Remove a lock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.entries(cmd.Context()).Unlock(cmd.Context(), args[0])
		},
	}
}

func locksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "locks",
		Short: "List locks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			locks, err := a.ledger().ListLocks(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.LocksFromDomain(locks))
		},
	}
}

func companyCmd(a *app) *cobra.Command {
	var (
		accountID   int64
		iban        string
		profileType int
	)

	cmd := &cobra.Command{
		Use:   "company NAME",
		Short: "Find or create a company and its payment profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			companies := usecase.NewCompanyUseCase(a.ledger(), a.cfg.DuplicatePolicy, a.log)
			result, err := companies.FindOrCreate(cmd.Context(), args[0], domain.PaymentProfile{
				Account: domain.AccountRef{ID: accountID},
				IBAN:    iban,
				Type:    domain.PaymentProfileType(profileType),
			})
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), struct {
				CompanyUUID    string `json:"company_uuid"`
				CompanyCreated bool   `json:"company_created"`
				ProfileID      int64  `json:"payment_profile_id"`
				ProfileCreated bool   `json:"payment_profile_created"`
			}{
				CompanyUUID:    result.Company.UUID,
				CompanyCreated: result.CompanyCreated,
				ProfileID:      result.PaymentProfile.ID,
				ProfileCreated: result.ProfileCreated,
			})
		},
	}

	cmd.Flags().Int64Var(&accountID, "account", 0, "Ledger account id of the payment route")
	cmd.Flags().StringVar(&iban, "iban", "", "IBAN of the payment route")
	cmd.Flags().IntVar(&profileType, "type", 1, "Payment profile type")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

// parseLegs parses NUMBER=AMOUNT pairs.
func parseLegs(raw []string) ([]domain.RawLeg, error) {
	legs := make([]domain.RawLeg, 0, len(raw))
	for _, r := range raw {
		number, amount, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("leg %q: want ACCOUNT_NUMBER=AMOUNT", r)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(number), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("leg %q: invalid account number", r)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(amount))
		if err != nil {
			return nil, fmt.Errorf("leg %q: invalid amount", r)
		}
		legs = append(legs, domain.RawLeg{AccountNumber: n, Amount: d})
	}
	return legs, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
