package cmd

import (
	"fmt"

	"github.com/smazurov/dvbtune/pkg/linuxav/dvb"
	"github.com/spf13/cobra"
)

// frontendStatus is what the status subcommand reports about a frontend.
type frontendStatus struct {
	Status     dvb.Status
	Frequency  uint32 // as reported by the driver, Hz or kHz depending on delivery system
	Parameters dvb.FrontendParameters
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [frontend]",
		Short: "Show lock status and current frequency of a frontend",
		Long: `Reads FE_READ_STATUS, DTV_FREQUENCY and FE_GET_FRONTEND. This is a diagnostic; ` +
			`tuning never waits for or checks lock.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := defaultFrontend
			if len(args) == 1 {
				path = args[0]
			}

			st, err := readFrontendStatus(path)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "frontend:  %s\n", path)
			fmt.Fprintf(a.stdout, "status:    %s\n", st.Status)
			fmt.Fprintf(a.stdout, "locked:    %t\n", st.Status.Locked())
			fmt.Fprintf(a.stdout, "frequency: %d\n", st.Frequency)
			fmt.Fprintf(a.stdout, "inversion: %s\n", st.Parameters.Inversion)
			return nil
		},
	}
}
