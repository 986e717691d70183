package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/fitcoach/internal/app"
	"github.com/mohammad-safakhou/fitcoach/models"
	"github.com/mohammad-safakhou/fitcoach/repository"
)

type storedState struct {
	DarkMode bool               `json:"dark_mode"`
	Profile  models.UserProfile `json:"profile"`
	Plan     *models.Plan       `json:"plan"`
}

func stateCMD(cfgPath *string) *cobra.Command {
	var state = &cobra.Command{
		Use:   "state",
		Short: "Inspect or modify persisted entries",
	}

	var show = &cobra.Command{
		Use:   "show",
		Short: "Print the stored profile, plan and dark-mode flag",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := bootstrap(ctx, *cfgPath, true, false)
			if err != nil {
				return err
			}
			defer rt.Close()
			st := storedState{
				DarkMode: repository.Load(ctx, rt.store, repository.KeyDarkMode, app.DefaultDarkMode, rt.logger),
				Profile:  repository.Load(ctx, rt.store, repository.KeyProfile, models.DefaultProfile(), rt.logger),
				Plan:     repository.Load[*models.Plan](ctx, rt.store, repository.KeyPlan, nil, rt.logger),
			}
			out, err := json.MarshalIndent(st, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	var all bool
	var clearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored plan (or every entry with --all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := bootstrap(ctx, *cfgPath, true, false)
			if err != nil {
				return err
			}
			defer rt.Close()
			keys := []string{repository.KeyPlan}
			if all {
				keys = append(keys, repository.KeyProfile, repository.KeyDarkMode)
			}
			for _, k := range keys {
				if err := rt.store.Delete(ctx, k); err != nil {
					return fmt.Errorf("delete %s: %w", k, err)
				}
			}
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&all, "all", false, "also remove profile and dark-mode flag")

	var darkMode = &cobra.Command{
		Use:       "dark-mode on|off",
		Short:     "Set the dark-mode flag",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := bootstrap(ctx, *cfgPath, true, false)
			if err != nil {
				return err
			}
			defer rt.Close()
			return repository.Save(ctx, rt.store, repository.KeyDarkMode, args[0] == "on")
		},
	}

	state.AddCommand(show, clearCmd, darkMode)
	return state
}
