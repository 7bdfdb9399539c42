package preview

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/angelmondragon/shoppingcart/pkg/lineitem"
)

// WriteTable renders the result as aligned text sections.
func WriteTable(w io.Writer, res *Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "DISCOUNTS")
	fmt.Fprintln(tw, "ROW ID\tID\tNAME\tVALUE")
	for _, d := range res.Discounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.RowID(), d.ID(), d.Name(), d.ValueDisplay())
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "SHIPPING")
	fmt.Fprintln(tw, "ROW ID\tID\tNAME\tQTY\tPRICE\tTAX\tPRICE+TAX\tSUBTOTAL\tTAX TOTAL\tTOTAL\tFREE")
	for _, s := range res.Shipping {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
			s.RowID(),
			s.ID(),
			s.Name(),
			strconv.FormatFloat(s.Qty(), 'f', -1, 64),
			s.PriceDisplay(),
			s.TaxDisplay(),
			s.PriceTaxDisplay(),
			s.SubtotalDisplay(),
			s.TaxTotalDisplay(),
			s.TotalDisplay(),
			s.FreeShipping(),
		)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "TOTALS")
	fmt.Fprintf(tw, "discounts\t%s\n", res.Display(res.Totals.Discounts))
	fmt.Fprintf(tw, "shipping subtotal\t%s\n", res.Display(res.Totals.ShippingSubtotal))
	fmt.Fprintf(tw, "shipping tax\t%s\n", res.Display(res.Totals.ShippingTax))
	fmt.Fprintf(tw, "shipping total\t%s\n", res.Display(res.Totals.Shipping))

	return tw.Flush()
}

type jsonTotals struct {
	Discounts        string `json:"discounts"`
	ShippingSubtotal string `json:"shippingSubtotal"`
	ShippingTax      string `json:"shippingTax"`
	Shipping         string `json:"shipping"`
}

type jsonResult struct {
	Discounts []*lineitem.DiscountItem `json:"discounts"`
	Shipping  []*lineitem.ShippingItem `json:"shipping"`
	Totals    jsonTotals               `json:"totals"`
}

// WriteJSON renders the item maps plus formatted totals.
func WriteJSON(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonResult{
		Discounts: res.Discounts,
		Shipping:  res.Shipping,
		Totals: jsonTotals{
			Discounts:        res.Display(res.Totals.Discounts),
			ShippingSubtotal: res.Display(res.Totals.ShippingSubtotal),
			ShippingTax:      res.Display(res.Totals.ShippingTax),
			Shipping:         res.Display(res.Totals.Shipping),
		},
	})
}
