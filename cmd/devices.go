package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/smazurov/dvbtune/pkg/linuxav/dvb"
	"github.com/spf13/cobra"
)

func (a *app) devicesCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List DVB adapters and their device nodes",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			adapters, err := dvb.FindAdapters(root)
			if err != nil {
				return err
			}
			if len(adapters) == 0 {
				fmt.Fprintf(a.stdout, "no DVB adapters under %s\n", root)
				return nil
			}

			w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ADAPTER\tFRONTENDS\tDEMUXES\tDVRS")
			for _, ad := range adapters {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ad.Path,
					joinOrDash(ad.Frontends), joinOrDash(ad.Demuxes), joinOrDash(ad.DVRs))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&root, "root", dvb.DefaultRoot, "DVB device directory")
	return cmd
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}
