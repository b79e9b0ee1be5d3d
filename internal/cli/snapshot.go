package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/commonweal/commonweal/internal/event"
	"github.com/commonweal/commonweal/internal/logging"
	"github.com/commonweal/commonweal/internal/state"
	"github.com/commonweal/commonweal/internal/store"
)

func newSnapshotCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Run the scripted session and print the final state as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
			ctx := cmd.Context()

			bus := event.New(event.WithLogger(log))
			defer bus.Close()

			container, err := state.New(bus, state.WithLogger(log))
			if err != nil {
				return fmt.Errorf("building state container: %w", err)
			}
			defer container.Close()

			seed, err := resolveSeed(cfg)
			if err != nil {
				return err
			}
			gateway := store.New(bus, container, store.WithLogger(log), store.WithSeed(seed))

			account := seed.Accounts[0]
			gateway.SignIn(ctx, account.Email, account.Password)
			gateway.FetchCommunities(ctx)
			gateway.FetchResources(ctx, container.Communities().ActiveID)
			gateway.FetchThanks(ctx, container.Communities().ActiveID)

			snap, err := container.SnapshotJSON()
			if err != nil {
				return fmt.Errorf("rendering snapshot: %w", err)
			}

			out := []byte(snap)
			if pretty {
				var buf bytes.Buffer
				if err := json.Indent(&buf, out, "", "  "); err != nil {
					return fmt.Errorf("formatting snapshot: %w", err)
				}
				out = buf.Bytes()
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", true, "indent the JSON output")
	return cmd
}
