package serve

import (
	"fmt"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/civilpm/planset-review/internal/common"
	"github.com/civilpm/planset-review/pkg/planset"
)

func Action(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	taxonomy, err := common.LoadTaxonomy(c.String("taxonomy"))
	if err != nil {
		logger.Error("failed to load taxonomy", "error", err)
		os.Exit(2)
	}

	// The server stays up without the audit log; reviews just go
	// unrecorded.
	audit, err := common.OpenAudit(c.String("db"))
	if err != nil {
		logger.Warn("audit database unavailable", "error", err)
		audit = nil
	} else {
		defer audit.Close()
	}

	server := NewServer(logger, planset.New(taxonomy), audit)

	addr := fmt.Sprintf(":%d", c.Int("port"))
	logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, server.Handler())
}
