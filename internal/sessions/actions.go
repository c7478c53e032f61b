// Package sessions implements the `sessions` CLI verb: list recent review
// invocations from the audit log.
package sessions

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/civilpm/planset-review/internal/common"
)

func Action(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	database, err := common.OpenAudit(c.String("db"))
	if err != nil {
		logger.Error("failed to open audit database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	reviews, err := database.ListReviews(c.Int("limit"))
	if err != nil {
		logger.Error("failed to list reviews", "error", err)
		os.Exit(2)
	}

	if len(reviews) == 0 {
		fmt.Println("No reviews recorded yet.")
		return nil
	}

	fmt.Printf("%-5s %-20s %-30s %-8s %-7s %-7s %-6s %-9s %s\n",
		"ID", "CREATED", "SOURCE", "STATUS", "PAGES", "SHEETS", "FLAGS", "DURATION", "SIZE")
	for _, r := range reviews {
		created := ""
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.Format("2006-01-02 15:04:05")
		}
		source := r.Source
		if len(source) > 30 {
			source = source[:27] + "..."
		}
		fmt.Printf("%-5d %-20s %-30s %-8s %-7d %-7d %-6d %-9s %d\n",
			r.ReviewID, created, source, r.Status,
			r.PageCount, r.SheetCount, r.FlagCount,
			fmt.Sprintf("%dms", r.DurationMS), r.SizeBytes)
	}
	return nil
}
