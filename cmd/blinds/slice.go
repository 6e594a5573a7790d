package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/blinds/capture"
	"github.com/lixenwraith/blinds/config"
	"github.com/lixenwraith/blinds/slicer"
)

type sliceOptions struct {
	outDir  string
	format  string
	width   int
	height  int
	quality int
}

func newSliceCmd(flags *rootFlags) *cobra.Command {
	opts := sliceOptions{}

	cmd := &cobra.Command{
		Use:   "slice",
		Short: "Cut the configured view into strip images on disk",
		Long:  `Capture the configured view (the rendered card, or --image), scale it to --width x --height and write one image per strip.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), logLevel(cfg))

			paths, err := sliceToDisk(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}
			for _, p := range paths {
				logger.Debug("strip written", "path", p)
			}
			logger.Info("slicing complete", "strips", len(paths), "dir", opts.outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "strips", "output directory")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "png", "image format: png or jpg")
	cmd.Flags().IntVar(&opts.width, "width", 390, "logical screen width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 844, "logical screen height in pixels")
	cmd.Flags().IntVar(&opts.quality, "quality", 90, "JPEG quality")
	return cmd
}

// sliceToDisk captures, fits and slices the configured view, returning the written paths
func sliceToDisk(ctx context.Context, cfg *config.Config, opts sliceOptions) ([]string, error) {
	ext := strings.ToLower(strings.TrimPrefix(opts.format, "."))
	switch ext {
	case "png", "jpg", "jpeg":
	default:
		return nil, fmt.Errorf("unsupported strip format %q", opts.format)
	}

	img, err := cfg.Capturer(opts.width, opts.height).Capture(ctx)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	strips, err := slicer.Slice(capture.Fit(img, opts.width, opts.height), cfg.Strips.Count)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	paths := make([]string, 0, len(strips))
	for i, s := range strips {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		p := filepath.Join(opts.outDir, fmt.Sprintf("strip_%03d.%s", i, ext))
		if err := saveStrip(s, p, opts.quality); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func saveStrip(img image.Image, path string, quality int) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
