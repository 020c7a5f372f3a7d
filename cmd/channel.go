package cmd

import (
	"fmt"

	"github.com/smazurov/dvbtune/internal/channels"
	"github.com/smazurov/dvbtune/internal/logging"
	"github.com/spf13/cobra"
)

func (a *app) channelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel <name>",
		Short: "Tune to a channel from the channel map",
		Long: `Looks up the channel's frequency and video/PCR/audio PIDs in the channel map ` +
			`and runs the same frontend and demux sequence as the positional form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := a.loadChannels()
			if err != nil {
				return err
			}

			ch, err := channels.Lookup(store, args[0])
			if err != nil {
				return fmt.Errorf("%w (channel map %s)", err, a.opts.Channels)
			}

			logging.GetLogger("channels").Info("Channel selected",
				"channel", ch.Name,
				"description", ch.Description,
				"frequency_khz", ch.FrequencyKHz)

			return a.tune(ch.Request(a.opts.Frontend, a.opts.Demux))
		},
	}

	cmd.Flags().StringVar(&a.opts.Frontend, "frontend", defaultFrontend, "Frontend device")
	cmd.Flags().StringVar(&a.opts.Demux, "demux", defaultDemux, "Demux device")
	return cmd
}

func (a *app) loadChannels() (channels.Store, error) {
	store := channels.NewTOML(a.opts.Channels)
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}
