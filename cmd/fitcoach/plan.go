package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/fitcoach/models"
)

func planCMD(cfgPath *string) *cobra.Command {
	var profilePath string
	var outPath string
	var plan = &cobra.Command{
		Use:   "plan",
		Short: "Generate a 7-day plan for the stored or given profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := bootstrap(ctx, *cfgPath, true, true)
			if err != nil {
				return err
			}
			defer rt.Close()
			svc := rt.service()

			if profilePath != "" {
				raw, err := os.ReadFile(profilePath)
				if err != nil {
					return err
				}
				var p models.UserProfile
				if err := json.Unmarshal(raw, &p); err != nil {
					return fmt.Errorf("parse profile %s: %w", profilePath, err)
				}
				if _, err := svc.UpdateProfile(ctx, p); err != nil {
					return err
				}
			}

			result, err := svc.GeneratePlan(ctx)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			if outPath != "" {
				return os.WriteFile(outPath, append(out, '\n'), 0o644)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	plan.Flags().StringVar(&profilePath, "profile", "", "profile JSON file (stored profile when empty)")
	plan.Flags().StringVar(&outPath, "out", "", "write plan JSON to file instead of stdout")

	return plan
}
