package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/mechapp/internal/config"
	"github.com/BruksfildServices01/mechapp/internal/logger"
	"github.com/BruksfildServices01/mechapp/internal/timezone"
)

func main() {
	cfg := config.Load()
	timezone.SetDefault(cfg.Timezone)

	root := &cobra.Command{
		Use:           "mechctl",
		Short:         "MechApp operations and booking tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSlotsCmd(),
		newCalendarCmd(),
		newValidateCmd(),
		newCreateAdminCmd(cfg),
		newBookCmd(cfg, logger.New(cfg.Env)),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
