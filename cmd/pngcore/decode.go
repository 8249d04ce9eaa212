package main

import (
	"fmt"
	"os"

	"github.com/coredecode/pngcore"
	"github.com/spf13/cobra"
)

func newDecodeCmd(verbose *bool) *cobra.Command {
	var maxDimension uint32
	var padAlpha bool
	var outPath string

	cmd := &cobra.Command{
		Use:   "decode <file.png> [more.png...]",
		Short: "Decode one or more PNG files and write packed pixel buffers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := pngcore.Config{
				MaxDimension: maxDimension,
				Logger:       newLogger(*verbose),
			}
			for _, path := range args {
				if err := decodeOne(path, outPath, padAlpha, cfg); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().Uint32Var(&maxDimension, "max-dimension", pngcore.DefaultMaxDimension, "reject images wider or taller than this many pixels")
	cmd.Flags().BoolVar(&padAlpha, "pad-alpha", false, "promote RGB output to RGBA, with alpha at maximum")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the packed pixel buffer here instead of stdout")
	return cmd
}

func decodeOne(path, outPath string, padAlpha bool, cfg pngcore.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := pngcore.Decode(f, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s: %dx%d format=%d\n", path, img.Width, img.Height, img.Format)

	if padAlpha {
		img = img.WithAlpha()
	}
	buf := img.Pack()

	if outPath == "" {
		_, err = os.Stdout.Write(buf)
		return err
	}
	return os.WriteFile(outPath, buf, 0o644)
}
