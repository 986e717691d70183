package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func imageCMD(cfgPath *string) *cobra.Command {
	var prompt string
	var outPath string
	var image = &cobra.Command{
		Use:   "image",
		Short: "Generate an illustration for a prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(prompt) == "" {
				return errors.New("--prompt required")
			}
			ctx := cmd.Context()
			rt, err := bootstrap(ctx, *cfgPath, false, true)
			if err != nil {
				return err
			}
			uri, err := rt.provider.GenerateImage(ctx, prompt)
			if err != nil {
				return err
			}
			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), uri)
				return nil
			}
			data, err := decodeDataURI(uri)
			if err != nil {
				return err
			}
			return os.WriteFile(outPath, data, 0o644)
		},
	}
	image.Flags().StringVar(&prompt, "prompt", "", "image prompt")
	image.Flags().StringVar(&outPath, "out", "", "write decoded PNG to file instead of printing the data URI")

	return image
}

func decodeDataURI(uri string) ([]byte, error) {
	_, payload, ok := strings.Cut(uri, ";base64,")
	if !ok || !strings.HasPrefix(uri, "data:") {
		return nil, errors.New("not a base64 data uri")
	}
	return base64.StdEncoding.DecodeString(payload)
}
