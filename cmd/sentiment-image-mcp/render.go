package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/sentiment-image-mcp/internal/imaging"
	"github.com/ironsheep/sentiment-image-mcp/internal/pipeline"
)

type renderFlags struct {
	in        string
	out       string
	scale     int
	collapsed bool
	grid      bool
	gridColor string
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a text file as a sentiment field image",
		Long: `Render a text file as a sentiment field image.

The output format follows the --out extension (.png, .jpg or .bmp).
Use --in - to read the text from stdin.`,
		Example: `  sentiment-image-mcp render --in speech.txt --out speech.png
  sentiment-image-mcp render --in speech.txt --out speech.png --scale 10 --collapsed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.in, "in", "", "input text file, or - for stdin")
	cmd.Flags().StringVar(&f.out, "out", "", "output image file")
	cmd.Flags().IntVar(&f.scale, "scale", 0, "pixels per word cell (default from SENTIMENT_MCP_SCALE)")
	cmd.Flags().BoolVar(&f.collapsed, "collapsed", false, "keep only saturated cells, repacked into a smaller grid")
	cmd.Flags().BoolVar(&f.grid, "grid", false, "draw separators between cells")
	cmd.Flags().StringVar(&f.gridColor, "grid-color", "#000000", "separator color as hex")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func (a *app) render(cmd *cobra.Command, f renderFlags) error {
	ctx := cmd.Context()

	text, err := readInput(cmd, f.in)
	if err != nil {
		return err
	}

	scale := f.scale
	if scale == 0 {
		scale = a.cfg.Render.Scale
	}
	if scale < 1 {
		return fmt.Errorf("--scale must be positive, got %d", scale)
	}

	res, err := a.runner.Synthesize(ctx, text)
	if err != nil {
		return fmt.Errorf("render %s: %w", f.in, err)
	}

	out := pipeline.Render(res.Field, pipeline.RenderOptions{
		Scale:             scale,
		Collapsed:         f.collapsed,
		CollapseThreshold: a.cfg.Render.CollapseThreshold,
		Grid:              f.grid,
		GridColor:         f.gridColor,
	})
	if out.Collapse != nil && out.Collapse.Kept == 0 {
		return errors.New("no saturated cells; nothing to render collapsed")
	}
	if err := imaging.Save(f.out, out.Image); err != nil {
		return err
	}

	b := out.Image.Bounds()
	a.logger.Info("wrote image",
		"path", f.out,
		"words", len(res.Field.Cells),
		"grid", fmt.Sprintf("%dx%d", out.Columns, out.Rows),
		"size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"anchors", res.Field.Stats.Anchors)
	return nil
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	return string(b), nil
}
