// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"accountx/internal/core/domain"
	"accountx/internal/platform/errors"
)

// WriteTable imprime una tabla legible en terminal con las cuentas
// consolidadas.
func WriteTable(w io.Writer, env Envelope) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Consolidated Accounts ===\n")
	fmt.Fprintf(tw, "Input records:\t%d\n", env.OriginalCount)
	fmt.Fprintf(tw, "Output accounts:\t%d\n", env.CleanedCount)
	fmt.Fprintf(tw, "Merged:\t%d\n", env.MergedCount)
	fmt.Fprintf(tw, "Removed:\t%d\n\n", env.RemovedCount)

	if len(env.Accounts) > 0 {
		fmt.Fprintln(tw, "SERVICE\tEMAIL\tLINK\tSTRENGTH\tSOURCES")
		fmt.Fprintln(tw, "-------\t-----\t----\t--------\t-------")

		for _, a := range env.Accounts {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				orDash(a.Service),
				orDash(a.AccountEmail),
				orDash(domain.FirstLink(a.Meta(domain.MetaLink))),
				orDash(a.Meta(domain.MetaPasswordStrength)),
				orDash(strings.Join(a.AllSources, ",")),
			)
		}
	} else {
		fmt.Fprintln(tw, "No accounts after consolidation.")
	}

	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "flushing table")
	}

	if len(env.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings (%d):\n", len(env.Warnings))
		for i, warning := range env.Warnings {
			id := warning.RecordID
			if id == "" {
				id = "-"
			}
			fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, id, warning.Message)
		}
	}

	if env.FellBack {
		fmt.Fprintln(w, "\nConsolidation fell back to passthrough; records returned untouched.")
	}

	fmt.Fprintln(w)
	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
