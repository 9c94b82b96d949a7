package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yourusername/phone-price-bot/internal/delivery/httpapi"
	"github.com/yourusername/phone-price-bot/internal/domain/entity"
	"github.com/yourusername/phone-price-bot/internal/usecase"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	suggestColor = color.New(color.FgYellow)
	noMatchColor = color.New(color.FgRed)
	keyColor     = color.New(color.FgGreen)
)

type statLine struct {
	key   string
	value string
}

func (c *cli) printOutcome(cmd *cobra.Command, out entity.Outcome) error {
	w := cmd.OutOrStdout()
	resp := httpapi.NewSearchResponse(usecase.NewFormatter(c.catalog.Resolver), out)
	if c.jsonOut {
		return writeJSON(w, resp)
	}

	switch out.Kind {
	case entity.OutcomeConfident:
		printTable(w, resp.Results)
	case entity.OutcomeSuggest:
		suggestColor.Fprintln(w, "Did you mean:")
		for i, s := range resp.Suggestions {
			fmt.Fprintf(w, "  %d. %s (%d)\n", i+1, s.Name, s.Score)
		}
	default:
		noMatchColor.Fprintln(w, "No match.")
	}
	return nil
}

// printTable natijalar jadvali
func printTable(w io.Writer, records []entity.DisplayRecord) {
	headers := []string{"DEVICE", "PRICE", "BRAND", "STORE", "ADDRESS", "SPEC"}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	headerColor.Fprintln(tw, strings.Join(headers, "\t"))
	for _, r := range records {
		fmt.Fprintln(tw, strings.Join([]string{r.DeviceName, r.Price, r.Brand, r.Store, r.Address, r.SpecURL}, "\t"))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\n%d result(s)\n", len(records))
}

func printStats(w io.Writer, stats []statLine) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, l := range stats {
		fmt.Fprintf(tw, "%s\t%s\n", keyColor.Sprint(l.key), l.value)
	}
	_ = tw.Flush()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
