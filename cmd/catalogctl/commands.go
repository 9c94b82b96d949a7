package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yourusername/phone-price-bot/internal/app"
	"github.com/yourusername/phone-price-bot/internal/domain/entity"
)

type loadOptions struct {
	PricesPath    string
	SpecLinksPath string
	Verbose       bool
}

type loaderFunc func(ctx context.Context, opts loadOptions) (*app.Catalog, error)

// cli flaglar va bir marta yuklanadigan katalog
type cli struct {
	load    loaderFunc
	opts    loadOptions
	jsonOut bool
	noColor bool
	catalog *app.Catalog
}

func newRootCmd(load loaderFunc) *cobra.Command {
	c := &cli{load: load}

	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Telefon narxlari katalogi bo'yicha qidiruv",
		Long:         "catalogctl narxlar faylini (yoki Postgres jadvalini) yuklab, bot ishlatadigan qidiruv engine orqali so'rov bajaradi.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.noColor {
				color.NoColor = true
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			catalog, err := c.load(ctx, c.opts)
			if err != nil {
				return err
			}
			c.catalog = catalog
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.opts.PricesPath, "prices", "", "narxlar fayli (xlsx/csv), PRICES_PATH o'rniga")
	root.PersistentFlags().StringVar(&c.opts.SpecLinksPath, "specs", "", "spetsifikatsiya havolalari JSON, SPEC_LINKS_PATH o'rniga")
	root.PersistentFlags().BoolVarP(&c.opts.Verbose, "verbose", "v", false, "yuklash loglarini ko'rsatish")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "natijani JSON ko'rinishida chiqarish")
	root.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "ranglarsiz chiqarish")

	root.AddCommand(
		c.nameCmd(),
		c.priceCmd(),
		c.groupCmd("store", "Do'kon nomi bo'yicha qidiruv", func(q string) entity.Outcome {
			return c.catalog.Resolver.SearchByStore(q)
		}),
		c.groupCmd("brand", "Brend bo'yicha qidiruv", func(q string) entity.Outcome {
			return c.catalog.Resolver.SearchByBrand(q)
		}),
		c.specCmd(),
		c.statsCmd(),
	)
	return root
}

func (c *cli) nameCmd() *cobra.Command {
	var store string
	cmd := &cobra.Command{
		Use:   "name <query>",
		Short: "Qurilma nomi bo'yicha qidiruv",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if store != "" {
				return c.printOutcome(cmd, c.catalog.Resolver.SearchByNameInStore(store, query))
			}
			return c.printOutcome(cmd, c.catalog.Resolver.SearchByName(query))
		},
	}
	cmd.Flags().StringVar(&store, "store", "", "faqat shu do'kon ichida qidirish")
	return cmd
}

func (c *cli) priceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price <amount>",
		Short: "Narx bo'yicha qidiruv (±10%)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.catalog.Resolver.SearchByPrice(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return c.printOutcome(cmd, out)
		},
	}
}

func (c *cli) groupCmd(use, short string, search func(string) entity.Outcome) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <query>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printOutcome(cmd, search(strings.Join(args, " ")))
		},
	}
}

func (c *cli) specCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spec <device name>",
		Short: "Qurilma spetsifikatsiyasi havolasi",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			url := c.catalog.Resolver.ResolveSpecURL(name)
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"name": name, "url": url})
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Yuklangan katalog statistikasi",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.catalog.Stats
			r := c.catalog.Resolver
			stats := []statLine{
				{"source", c.catalog.Source},
				{"rows", fmt.Sprint(s.Rows)},
				{"loaded", fmt.Sprint(s.Loaded)},
				{"dropped_no_name", fmt.Sprint(s.DroppedNoName)},
				{"dropped_no_price", fmt.Sprint(s.DroppedNoPrice)},
				{"unpriced", fmt.Sprint(s.UnpricedKept)},
				{"stores", fmt.Sprint(len(r.Stores()))},
				{"brands", fmt.Sprint(len(r.Brands()))},
				{"spec_links", fmt.Sprint(c.catalog.SpecLinks)},
			}
			if c.jsonOut {
				m := make(map[string]string, len(stats))
				for _, l := range stats {
					m[l.key] = l.value
				}
				return writeJSON(cmd.OutOrStdout(), m)
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}
