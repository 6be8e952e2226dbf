package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	sdk "github.com/myanmarcares/myanmarcares/sdk/go"
	"github.com/myanmarcares/myanmarcares/sdk/go/config"
)

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "myanmarcares",
		Short:         "Browse NGOs, volunteer opportunities, events and stories",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.token, "token", "", "bearer token (overrides config and environment)")
	root.PersistentFlags().StringVar(&opts.baseURL, "api-url", "", "API origin (overrides config and environment)")

	root.AddCommand(
		newNGOsCmd(opts),
		newOpportunitiesCmd(opts),
		newEventsCmd(opts),
		newBlogCmd(opts),
		newDonationsCmd(opts),
		newPaymentsCmd(opts),
		newLoginCmd(opts),
		newWhoamiCmd(opts),
	)
	return root
}

// listFlags are shared by every list command.
type listFlags struct {
	page     int
	pageSize int
	sort     string
	populate string
	all      bool
}

func (f *listFlags) register(cmd *cobra.Command, defaultSort string) {
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 25, "items per page")
	cmd.Flags().StringVar(&f.sort, "sort", defaultSort, "sort expression, e.g. name:asc")
	cmd.Flags().StringVar(&f.populate, "populate", "*", "relations to populate")
	cmd.Flags().BoolVar(&f.all, "all", false, "walk every page")
}

func (f *listFlags) params() sdk.ListParams {
	return sdk.ListParams{Page: f.page, PageSize: f.pageSize, Sort: f.sort, Populate: f.populate}
}

type listFunc[T any] func(context.Context, sdk.ListParams) (sdk.Envelope[[]T], error)

func runList[T any](cmd *cobra.Command, opts *rootOptions, flags *listFlags, pick func(d deps) listFunc[T]) error {
	return run(cmd, opts, func(ctx context.Context, d deps) error {
		list := pick(d)
		if !flags.all {
			env, err := list(ctx, flags.params())
			if err != nil {
				return err
			}
			return printPage(cmd.OutOrStdout(), cmd.ErrOrStderr(), env)
		}
		items, err := sdk.Collect(ctx, sdk.ListFetcher[T](list, flags.params()), sdk.WalkOptions{
			PageSize: flags.pageSize,
			Limiter:  d.Config.Limiter(),
		})
		if err != nil {
			return err
		}
		if err := printJSON(cmd.OutOrStdout(), items); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "fetched %d\n", len(items))
		return nil
	})
}

func newGetCmd[T any](opts *rootOptions, what string, get func(d deps) func(context.Context, string, string) (sdk.Envelope[*T], error)) *cobra.Command {
	var populate string
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one " + what,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, d deps) error {
				env, err := get(d)(ctx, args[0], populate)
				if err != nil {
					return err
				}
				return printOne(cmd.OutOrStdout(), env, what, args[0])
			})
		},
	}
	cmd.Flags().StringVar(&populate, "populate", "*", "relations to populate")
	return cmd
}

func newNGOsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "ngos", Short: "NGO directory"}

	var (
		flags  listFlags
		filter sdk.NGOFilter
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List NGOs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts, &flags, func(d deps) listFunc[sdk.NGO] {
				return func(ctx context.Context, p sdk.ListParams) (sdk.Envelope[[]sdk.NGO], error) {
					return d.Client.NGOs.Search(ctx, filter, p)
				}
			})
		},
	}
	flags.register(list, "name:asc")
	list.Flags().StringVar(&filter.Search, "search", "", "name contains")
	list.Flags().StringVar(&filter.Cause, "cause", "", "cause contains")
	list.Flags().StringVar(&filter.Location, "location", "", "location contains")
	list.Flags().BoolVar(&filter.Verified, "verified", false, "verified NGOs only")

	cmd.AddCommand(list, newGetCmd(opts, "ngo", func(d deps) func(context.Context, string, string) (sdk.Envelope[*sdk.NGO], error) {
		return d.Client.NGOs.Get
	}))
	return cmd
}

func newOpportunitiesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "opportunities", Aliases: []string{"volunteer"}, Short: "Volunteer opportunities"}

	var (
		flags   listFlags
		filter  sdk.OpportunityFilter
		oppType string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List volunteer opportunities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter.Type = sdk.OpportunityType(oppType)
			return runList(cmd, opts, &flags, func(d deps) listFunc[sdk.VolunteerOpportunity] {
				return func(ctx context.Context, p sdk.ListParams) (sdk.Envelope[[]sdk.VolunteerOpportunity], error) {
					return d.Client.Opportunities.Search(ctx, filter, p)
				}
			})
		},
	}
	flags.register(list, "createdAt:desc")
	list.Flags().StringVar(&filter.Search, "search", "", "title contains")
	list.Flags().StringVar(&oppType, "type", "", "on-site, remote or hybrid")
	list.Flags().StringVar(&filter.Skill, "skill", "", "skill contains")
	list.Flags().BoolVar(&filter.Urgent, "urgent", false, "urgent opportunities only")

	cmd.AddCommand(list, newGetCmd(opts, "opportunity", func(d deps) func(context.Context, string, string) (sdk.Envelope[*sdk.VolunteerOpportunity], error) {
		return d.Client.Opportunities.Get
	}))
	return cmd
}

func newEventsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "events", Short: "NGO events"}

	var (
		flags     listFlags
		eventType string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts, &flags, func(d deps) listFunc[sdk.Event] {
				return func(ctx context.Context, p sdk.ListParams) (sdk.Envelope[[]sdk.Event], error) {
					if eventType != "" {
						p = p.WithFilter("type", eventType)
					}
					return d.Client.Events.List(ctx, p)
				}
			})
		},
	}
	flags.register(list, "date:asc")
	list.Flags().StringVar(&eventType, "type", "", "online, offline or hybrid")

	cmd.AddCommand(list, newGetCmd(opts, "event", func(d deps) func(context.Context, string, string) (sdk.Envelope[*sdk.Event], error) {
		return d.Client.Events.Get
	}))
	return cmd
}

func newBlogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "blog", Short: "Published stories"}

	var flags listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List live blog posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts, &flags, func(d deps) listFunc[sdk.BlogPost] {
				return d.Client.BlogPosts.List
			})
		},
	}
	flags.register(list, "publishedAt:desc")

	cmd.AddCommand(list, newGetCmd(opts, "blog post", func(d deps) func(context.Context, string, string) (sdk.Envelope[*sdk.BlogPost], error) {
		return d.Client.BlogPosts.Get
	}))
	return cmd
}

func newDonationsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "donations", Short: "Donations"}

	var (
		input  sdk.DonationInput
		method string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Record a donation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input.PaymentMethod = sdk.PaymentMethod(method)
			return run(cmd, opts, func(ctx context.Context, d deps) error {
				env, err := d.Client.Donations.Create(ctx, input)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), env.Data)
			})
		},
	}
	create.Flags().StringVar(&input.NGO, "ngo", "", "NGO id or document id")
	create.Flags().StringVar(&input.Campaign, "campaign", "", "campaign id")
	create.Flags().Float64Var(&input.Amount, "amount", 0, "amount in MMK")
	create.Flags().StringVar(&input.Currency, "currency", sdk.DefaultCurrency, "currency code")
	create.Flags().StringVar(&method, "method", "", "kbzpay, wavemoney, bank_transfer or card")
	create.Flags().StringVar(&input.DonorInfo.Name, "name", "", "donor name")
	create.Flags().StringVar(&input.DonorInfo.Email, "email", "", "donor email")
	create.Flags().StringVar(&input.DonorInfo.Phone, "phone", "", "donor phone")
	create.Flags().StringVar(&input.DonorInfo.Message, "message", "", "message to the NGO")

	cmd.AddCommand(create, newGetCmd(opts, "donation", func(d deps) func(context.Context, string, string) (sdk.Envelope[*sdk.Donation], error) {
		return d.Client.Donations.Get
	}))
	return cmd
}

func newPaymentsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "payments", Short: "Payments"}
	verify := &cobra.Command{
		Use:   "verify <transaction-id>",
		Short: "Check a payment's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, d deps) error {
				env, err := d.Client.Payments.Verify(ctx, args[0])
				if err != nil {
					return err
				}
				return printOne(cmd.OutOrStdout(), env, "payment", args[0])
			})
		},
	}
	cmd.AddCommand(verify)
	return cmd
}

type loginOutput struct {
	JWT       string     `json:"jwt"`
	User      sdk.User   `json:"user"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var identifier, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print the JWT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, d deps) error {
				user, err := d.Session.Login(ctx, identifier, password)
				if err != nil {
					return err
				}
				out := loginOutput{JWT: d.Tokens.Token(), User: user}
				if claims, err := d.Session.Claims(); err == nil && claims.ExpiresAt != nil {
					exp := claims.ExpiresAt.Time
					out.ExpiresAt = &exp
				} else if err != nil {
					d.Logger.Warn().Err(err).Msg("jwt claims unreadable")
				}
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().StringVar(&identifier, "identifier", "", "email or username")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("identifier")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user behind the configured token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, d deps) error {
				token := d.Tokens.Token()
				if token == "" {
					return sdk.ValidationError{Field: "token", Reason: "no token configured; pass --token or set " + config.EnvAPIToken}
				}
				user, err := d.Session.Restore(ctx, token)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), user)
			})
		},
	}
}
