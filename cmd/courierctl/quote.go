package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"courierhub/internal/domain/entity"
	"courierhub/internal/domain/rate"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type quoteOptions struct {
	request  rate.Request
	service  string
	payment  string
	priority string
	live     bool
}

var quoteOpts quoteOptions

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a booking against the courier catalogue",
	Long: `quote compares the booking across couriers and highlights the cheapest,
fastest and best rated option. With --priority it ranks couriers the way the
recommendation endpoint does instead.

The built-in demo catalogue is used unless --live reads the couriers from the store.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := quoteOpts
		opts.request.ServiceType = entity.ServiceType(opts.service)
		opts.request.PaymentMode = entity.PaymentMode(opts.payment)

		if !opts.live {
			return quote(cmd.OutOrStdout(), opts, demoCouriers(), time.Now())
		}

		return withStore(cmd.Context(), func(ctx context.Context, deps appDeps) error {
			couriers, err := deps.Couriers.ListCouriers(ctx, true)
			if err != nil {
				return errors.Wrap(err, "failed to list couriers")
			}

			return quote(cmd.OutOrStdout(), opts, couriers, deps.Clock.Now())
		})
	},
}

func init() {
	flags := quoteCmd.Flags()
	flags.Float64VarP(&quoteOpts.request.WeightKg, "weight", "w", 1, "package weight in kg")
	flags.StringVarP(&quoteOpts.service, "service", "s", string(entity.ServiceStandard), "economy, standard, express or overnight")
	flags.StringVarP(&quoteOpts.payment, "payment", "p", string(entity.PaymentPrepaid), "prepaid or cod")
	flags.StringVar(&quoteOpts.request.FromPincode, "from", "", "pickup pincode")
	flags.StringVar(&quoteOpts.request.ToPincode, "to", "", "delivery pincode")
	flags.StringVar(&quoteOpts.priority, "priority", "", "rank by cost, speed, reliability or balanced")
	flags.BoolVar(&quoteOpts.live, "live", false, "quote the couriers stored in the configured database")
}

func quote(w io.Writer, opts quoteOptions, couriers []*entity.Courier, now time.Time) error {
	if opts.priority != "" {
		scored, err := rate.Recommend(opts.request, rate.ParsePriority(opts.priority), couriers, now)
		if err != nil {
			return errors.Wrap(err, "failed to rank couriers")
		}
		renderRanking(w, rate.ParsePriority(opts.priority), scored)

		return nil
	}

	comparison, err := rate.Compare(opts.request, couriers, now)
	if err != nil {
		return errors.Wrap(err, "failed to compare couriers")
	}
	renderComparison(w, comparison)

	return nil
}

func renderComparison(w io.Writer, c *rate.Comparison) {
	if len(c.Quotes) == 0 {
		fmt.Fprintln(w, "No active couriers to quote.")

		return
	}

	header := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %.1f kg %s, %s\n\n", header("Quote:"), c.Request.WeightKg, c.Request.ServiceType, c.Request.PaymentMode)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COURIER\tRATE\tDAYS\tETA\tSUCCESS\tRATING")
	for _, q := range c.Quotes {
		fmt.Fprintf(tw, "%s\t₹%d\t%d\t%s\t%.0f%%\t%.1f\n",
			q.Courier.Name, q.Rate, q.EstimatedDays, q.EstimatedDate.Format(time.DateOnly), q.SuccessRate, q.Rating)
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	renderPick(w, color.FgGreen, "cheapest", c.Recommendations.Cheapest)
	renderPick(w, color.FgCyan, "fastest", c.Recommendations.Fastest)
	renderPick(w, color.FgMagenta, "recommended", c.Recommendations.Recommended)
}

func renderPick(w io.Writer, attr color.Attribute, label string, p *rate.Pick) {
	if p == nil {
		return
	}
	fmt.Fprintf(w, "%s %s (₹%d, %d days): %s\n",
		color.New(attr).Sprintf("%-12s", label), p.Courier.Name, p.Rate, p.EstimatedDays, p.Reason)
}

func renderRanking(w io.Writer, priority rate.Priority, scored []rate.ScoredQuote) {
	if len(scored) == 0 {
		fmt.Fprintln(w, "No active couriers to rank.")

		return
	}

	fmt.Fprintf(w, "%s %s\n\n", color.New(color.Bold).Sprint("Ranking by"), priority)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCOURIER\tSCORE\tRATE\tDAYS")
	for i, q := range scored {
		name := q.Courier.Name
		if i == 0 {
			name = color.New(color.FgGreen).Sprint(name)
		}
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t₹%d\t%d\n", i+1, name, q.Score, q.Rate, q.EstimatedDays)
	}
	_ = tw.Flush()
}
