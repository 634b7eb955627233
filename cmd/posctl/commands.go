package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sandiprv9898/salon-flow-pos/internal/pricing"
	"github.com/sandiprv9898/salon-flow-pos/internal/repository"
	"github.com/sandiprv9898/salon-flow-pos/internal/service"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "list the seeded catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Usage: "product | service | package | gift_card"},
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}},
		},
		Action: func(c *cli.Context) error {
			svc := service.NewCatalogService(repository.NewSeededCatalogRepository())
			items, err := svc.List(context.Background(), c.String("kind"), c.String("search"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tNAME\tPRICE")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.ID, it.Kind, it.Name, it.Price.StringFixed(2))
			}
			return tw.Flush()
		},
	}
}

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "price an order from catalog ids",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "item", Aliases: []string{"i"}, Required: true, Usage: "catalog id with optional quantity, e.g. p1:2"},
			&cli.StringFlag{Name: "discount", Aliases: []string{"d"}, Usage: "order discount, fixed (50) or percentage (10%)"},
			&cli.StringFlag{Name: "tax", Value: "0.18", Usage: "tax rate"},
		},
		Action: func(c *cli.Context) error {
			order, err := buildQuote(context.Background(), c.StringSlice("item"), c.String("discount"), c.String("tax"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return printQuote(c.App.Writer, order)
		},
	}
}

func hashPINCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash-pin",
		Usage:     "print the bcrypt hash of an employee PIN",
		ArgsUsage: "<pin>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "cost", Value: bcrypt.DefaultCost},
		},
		Action: func(c *cli.Context) error {
			pin := c.Args().First()
			if pin == "" {
				return cli.Exit("pin is required", 1)
			}
			h, err := bcrypt.GenerateFromPassword([]byte(pin), c.Int("cost"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			fmt.Fprintln(c.App.Writer, string(h))
			return nil
		},
	}
}

func buildQuote(ctx context.Context, items []string, discount, tax string) (pricing.Order, error) {
	rate, err := decimal.NewFromString(tax)
	if err != nil || rate.IsNegative() {
		return pricing.Order{}, fmt.Errorf("invalid tax rate %q", tax)
	}
	catalog := service.NewCatalogService(repository.NewSeededCatalogRepository())
	order := pricing.NewOrder(rate)

	for _, arg := range items {
		id, qty, err := parseItem(arg)
		if err != nil {
			return pricing.Order{}, err
		}
		entry, err := catalog.Entry(ctx, id)
		if err != nil {
			return pricing.Order{}, err
		}
		if order, err = order.AddItem(entry, qty); err != nil {
			return pricing.Order{}, err
		}
	}

	if discount != "" {
		amount, mode, err := parseDiscount(discount)
		if err != nil {
			return pricing.Order{}, err
		}
		if order, err = order.SetOrderDiscount(amount, mode); err != nil {
			return pricing.Order{}, err
		}
	}
	return order, nil
}

// parseItem reads "id" or "id:qty".
func parseItem(arg string) (string, int, error) {
	id, qtyStr, found := strings.Cut(strings.TrimSpace(arg), ":")
	if id == "" {
		return "", 0, fmt.Errorf("invalid item %q", arg)
	}
	if !found {
		return id, 1, nil
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil || qty < 1 {
		return "", 0, fmt.Errorf("invalid quantity in %q", arg)
	}
	return id, qty, nil
}

// parseDiscount reads "50" as fixed and "10%" as a percentage.
func parseDiscount(s string) (decimal.Decimal, pricing.DiscountMode, error) {
	s = strings.TrimSpace(s)
	mode := pricing.DiscountFixed
	if strings.HasSuffix(s, "%") {
		mode = pricing.DiscountPercentage
		s = strings.TrimSuffix(s, "%")
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("invalid discount %q", s)
	}
	return amount, mode, nil
}

func printQuote(w io.Writer, order pricing.Order) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ITEM\tQTY\tUNIT\tTOTAL\t")
	for _, li := range order.Items() {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t\n", li.Name, li.Quantity, li.UnitPrice.StringFixed(2), li.Total().StringFixed(2))
	}
	t := order.Totals().Round()
	fmt.Fprintf(tw, "Subtotal\t\t\t%s\t\n", t.Subtotal.StringFixed(2))
	if !t.DiscountAmount.IsZero() {
		fmt.Fprintf(tw, "Discount\t\t\t-%s\t\n", t.DiscountAmount.StringFixed(2))
	}
	fmt.Fprintf(tw, "Tax (%s%%)\t\t\t%s\t\n", order.TaxRate().Mul(decimal.NewFromInt(100)).String(), t.TaxAmount.StringFixed(2))
	fmt.Fprintf(tw, "Grand total\t\t\t%s\t\n", t.GrandTotal.StringFixed(2))
	return tw.Flush()
}
