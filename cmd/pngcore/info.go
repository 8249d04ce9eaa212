package main

import (
	"fmt"
	"os"

	"github.com/coredecode/pngcore"
	"github.com/spf13/cobra"
)

func newInfoCmd(verbose *bool) *cobra.Command {
	var maxDimension uint32

	cmd := &cobra.Command{
		Use:   "info <file.png> [more.png...]",
		Short: "Print header and pixel-format information without dumping pixels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := pngcore.Config{
				MaxDimension: maxDimension,
				Logger:       newLogger(*verbose),
			}
			for _, path := range args {
				if err := infoOne(path, cfg); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().Uint32Var(&maxDimension, "max-dimension", pngcore.DefaultMaxDimension, "reject images wider or taller than this many pixels")
	return cmd
}

func infoOne(path string, cfg pngcore.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := pngcore.Decode(f, cfg)
	if err != nil {
		code, ok := pngcore.CodeOf(err)
		if ok {
			return fmt.Errorf("decode failed [%s]: %w", code, err)
		}
		return err
	}

	fmt.Printf("%s\n", path)
	fmt.Printf("  dimensions: %dx%d\n", img.Width, img.Height)
	fmt.Printf("  format:     %s\n", formatName(img.Format))
	fmt.Printf("  pixels:     %d\n", len(img.Pixels))
	return nil
}

func formatName(f pngcore.PixelFormat) string {
	switch f {
	case pngcore.RGB8:
		return "RGB8"
	case pngcore.RGB16:
		return "RGB16"
	case pngcore.RGBA8:
		return "RGBA8"
	case pngcore.RGBA16:
		return "RGBA16"
	default:
		return "unknown"
	}
}
