package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fishlist/internal/logging"
	"github.com/goliatone/go-fishlist/pkg/entry"
	"github.com/goliatone/go-fishlist/pkg/model"
	"github.com/goliatone/go-fishlist/pkg/store"
)

type addFlags struct {
	noInput  bool
	id       string
	name     string
	image    string
	species  string
	location string
	size     string
	food     string
}

func (f addFlags) record() *model.Fish {
	return &model.Fish{
		ID:       strings.TrimSpace(f.id),
		Name:     strings.TrimSpace(f.name),
		Image:    strings.TrimSpace(f.image),
		Species:  strings.TrimSpace(f.species),
		Location: strings.TrimSpace(f.location),
		Size:     model.Measure(strings.TrimSpace(f.size)),
		Food:     entry.ParseFood(f.food),
	}
}

// newDriver is swapped in tests.
var newDriver = func(out io.Writer) entry.PromptDriver {
	return entry.NewSurveyDriver(out)
}

func newAddCommand() *cobra.Command {
	var flags addFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a fish to the SQLite store",
		Long: `Add a fish record to the SQLite store. Prompts for each field unless
--no-input is set, in which case the field flags are used as-is.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAdd(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.noInput, "no-input", false, "do not prompt; use flags only")
	cmd.Flags().StringVar(&flags.id, "id", "", "record id (default: random UUID)")
	cmd.Flags().StringVar(&flags.name, "name", "", "display name")
	cmd.Flags().StringVar(&flags.image, "image", "", "image URL")
	cmd.Flags().StringVar(&flags.species, "species", "", "species")
	cmd.Flags().StringVar(&flags.location, "location", "", "location")
	cmd.Flags().StringVar(&flags.size, "size", "", "length, for example 2in")
	cmd.Flags().StringVar(&flags.food, "food", "", "comma separated food list")

	return cmd
}

func runAdd(cmd *cobra.Command, flags addFlags) error {
	ctx := cmd.Context()
	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}
	logger := logging.FromContext(ctx)

	db, err := store.OpenSQLite(cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	fish := flags.record()
	if !flags.noInput {
		fish, err = collect(ctx, cmd.OutOrStdout(), db, fish)
		if err != nil {
			return err
		}
	}
	fish.ID = strings.TrimSpace(flags.id)

	stored, err := db.Add(ctx, fish)
	if err != nil {
		return err
	}
	logger.Info("fish added", "id", stored.ID, "name", stored.Name)

	existing, err := db.Fish(ctx)
	if err != nil {
		return err
	}
	if dups := existing.DuplicateKeys(cfg.Keys()); len(dups) > 0 {
		logger.Warn("fish records share element ids", "keys", dups, "strategy", string(cfg.Keys()))
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), stored.ID)
	return err
}

func collect(ctx context.Context, out io.Writer, db *store.SQLiteStore, defaults *model.Fish) (*model.Fish, error) {
	existing, err := db.Fish(ctx)
	if err != nil {
		return nil, err
	}

	collector, err := entry.NewCollector(newDriver(out), entry.WithSpecies(knownSpecies(existing)...))
	if err != nil {
		return nil, err
	}
	fish, err := collector.Collect(ctx, defaults)
	if errors.Is(err, entry.ErrAborted) {
		return nil, fmt.Errorf("cli: add cancelled: %w", err)
	}
	return fish, err
}

func knownSpecies(fish model.Collection) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, f := range fish {
		if f == nil || f.Species == "" {
			continue
		}
		if _, ok := seen[f.Species]; ok {
			continue
		}
		seen[f.Species] = struct{}{}
		out = append(out, f.Species)
	}
	sort.Strings(out)
	return out
}

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a fish from the SQLite store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			db, err := store.OpenSQLite(cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := db.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Info("fish removed", "id", args[0])
			return nil
		},
	}
}
