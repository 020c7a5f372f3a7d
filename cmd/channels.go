package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/smazurov/dvbtune/internal/channels"
	"github.com/smazurov/dvbtune/internal/logging"
	"github.com/spf13/cobra"
)

func (a *app) channelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channels",
		Short: "List the channel map",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := a.loadChannels()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFREQUENCY_KHZ\tVIDEO\tPCR\tAUDIO\tDESCRIPTION")
			for _, name := range store.Names() {
				ch, _ := store.Get(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n",
					ch.Name, ch.FrequencyKHz, ch.VideoPID, ch.PCRPID, ch.AudioPID, ch.Description)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(a.channelsImportCmd())
	return cmd
}

func (a *app) channelsImportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a CSV or .chl channel export into the channel map",
		Long: `Reads a CSV with Channel, Name, BroadcastFreq(kHz), PID_A, PID_B and PID_C ` +
			`columns, or the tuner vendor's binary .chl channel file. PID_A, PID_B and ` +
			`PID_C are taken as the video, PCR and audio PIDs. The format follows the ` +
			`file extension unless --format is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := a.loadChannels()
			if err != nil {
				return err
			}

			n, err := channels.Import(store, args[0], format)
			if err != nil {
				return err
			}

			logging.GetLogger("channels").Info("Channels imported",
				"source", args[0],
				"channel_map", a.opts.Channels,
				"count", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", channels.FormatAuto, "Export format (csv, chl), defaults to the file extension")
	return cmd
}
