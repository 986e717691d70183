package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func speakCMD(cfgPath *string) *cobra.Command {
	var text string
	var outPath string
	var speak = &cobra.Command{
		Use:   "speak",
		Short: "Synthesize text to a WAV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(text) == "" {
				return errors.New("--text required")
			}
			ctx := cmd.Context()
			rt, err := bootstrap(ctx, *cfgPath, false, true)
			if err != nil {
				return err
			}
			clip, err := rt.provider.Synthesize(ctx, "cli", text)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, clip.WAV, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s at %d Hz)\n", outPath, clip.Duration(), clip.SampleRate)
			return nil
		},
	}
	speak.Flags().StringVar(&text, "text", "", "text to speak")
	speak.Flags().StringVar(&outPath, "out", "speech.wav", "output WAV file")

	return speak
}
