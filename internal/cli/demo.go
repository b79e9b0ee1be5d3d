package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/commonweal/commonweal/internal/config"
	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event"
	"github.com/commonweal/commonweal/internal/logging"
	"github.com/commonweal/commonweal/internal/state"
	"github.com/commonweal/commonweal/internal/store"
	"github.com/commonweal/commonweal/internal/trace"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted session and print the resulting event trace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runDemo(cmd, cfg)
		},
	}
}

func runDemo(cmd *cobra.Command, cfg config.Config) error {
	log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	ctx := cmd.Context()

	bus := event.New(event.WithLogger(log))
	defer bus.Close()

	container, err := state.New(bus, state.WithLogger(log))
	if err != nil {
		return fmt.Errorf("building state container: %w", err)
	}
	defer container.Close()

	recorder, err := trace.New(bus, trace.WithLogger(log), trace.WithCapacity(cfg.Trace.BufferSize))
	if err != nil {
		return fmt.Errorf("attaching trace recorder: %w", err)
	}
	defer recorder.Close()

	seed, err := resolveSeed(cfg)
	if err != nil {
		return err
	}
	gateway := store.New(bus, container, store.WithLogger(log), store.WithSeed(seed))

	// Scripted session: sign in, fetch, share a resource, give thanks,
	// sign out.
	account := seed.Accounts[0]
	gateway.SignIn(ctx, account.Email, account.Password)
	gateway.FetchCommunities(ctx)

	active := container.Communities().ActiveID
	gateway.FetchResources(ctx, active)
	gateway.CreateResource(ctx, domain.ResourceInput{
		CommunityID: active,
		Title:       "Cordless drill",
		Description: "18V, two batteries, free to borrow for a weekend",
		Category:    "tools",
	})
	gateway.GiveThanks(ctx, domain.ThanksInput{
		CommunityID: active,
		ToUserID:    account.UserID,
		Message:     "Thanks for getting the tool library started!",
	})
	gateway.SignOut(ctx)

	printTrace(cmd, recorder.Events())
	printStats(cmd, bus.Stats())
	return nil
}

// resolveSeed loads the configured seed document, or falls back to a small
// built-in dataset so the demo works out of the box.
func resolveSeed(cfg config.Config) (store.Seed, error) {
	if cfg.Seed.Path != "" {
		seed, err := store.LoadSeed(cfg.Seed.Path)
		if err != nil {
			return store.Seed{}, err
		}
		if len(seed.Accounts) == 0 {
			return store.Seed{}, fmt.Errorf("seed %s has no accounts", cfg.Seed.Path)
		}
		return seed, nil
	}
	return builtinSeed(), nil
}

func builtinSeed() store.Seed {
	owner := "u-ada"
	return store.Seed{
		Accounts: []store.Account{{
			UserID:      owner,
			Email:       "ada@example.org",
			DisplayName: "Ada",
			Password:    "correct-horse",
		}},
		Communities: []domain.Community{
			{
				ID:        "c-global",
				Name:      "Commonweal",
				Level:     domain.CommunityLevelGlobal,
				OwnerID:   owner,
				CreatedAt: time.Now().Add(-48 * time.Hour),
			},
			{
				ID:        "c-riverside",
				Name:      "Riverside",
				Level:     domain.CommunityLevelNeighborhood,
				Location:  &domain.Location{Lat: 45.52, Lng: -122.67},
				OwnerID:   owner,
				CreatedAt: time.Now().Add(-24 * time.Hour),
			},
		},
	}
}

func printTrace(cmd *cobra.Command, events []event.Envelope) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "event trace (%d events):\n", len(events))

	requested := color.New(color.FgYellow).SprintFunc()
	succeeded := color.New(color.FgGreen).SprintFunc()
	failed := color.New(color.FgRed).SprintFunc()

	for _, evt := range events {
		topicStr := evt.Topic.String()
		switch {
		case strings.HasSuffix(topicStr, ".requested"):
			topicStr = requested(topicStr)
		case strings.HasSuffix(topicStr, ".failed"):
			topicStr = failed(topicStr)
		default:
			topicStr = succeeded(topicStr)
		}
		fmt.Fprintf(out, "  %s  %-44s source=%-6s corr=%.8s\n",
			evt.Timestamp.Format("15:04:05.000"), topicStr, evt.Source, evt.CorrelationID)
	}
}

func printStats(cmd *cobra.Command, stats event.Stats) {
	fmt.Fprintf(cmd.OutOrStdout(),
		"bus: emitted=%d delivered=%d handler_errors=%d handler_panics=%d subscriptions=%d\n",
		stats.Emitted, stats.Delivered, stats.HandlerErrors, stats.HandlerPanics, stats.ActiveSubscriptions)
}
