package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/mandel/pkg/errors"
	"github.com/matzehuels/mandel/pkg/io"
	"github.com/matzehuels/mandel/pkg/params"
	"github.com/matzehuels/mandel/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
// Empty strings and unchanged flags fall back to the config file.
type renderOpts struct {
	workers int    // worker count, 0 = host parallelism
	palette string // linear or saturate
	mapping string // inclusive or exclusive
	theme   string // grayscale, fire or water
	format  string // output format; derived from the output extension when empty
	region  string // named region replacing the two corners
	noCache bool   // bypass the render cache
	refresh bool   // re-render and overwrite the cached entry
}

// renderCommand creates the render command, which writes one image file.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render OUTPUT WIDTHxHEIGHT UPPER_LEFT LOWER_RIGHT LIMIT",
		Short: "Render the Mandelbrot set to an image file",
		Long: `Render the Mandelbrot set to an image file.

Corners are complex numbers written RE,IM. With --region, the corners are
omitted and LIMIT becomes optional:

  mandel render mandel.png 1000x750 -1.20,0.35 -1,0.20 255
  mandel render seahorse.png 1600x1600 255 --region seahorse --theme fire`,
		Example: `  mandel render mandel.pgm 4000x3000 -1.20,0.35 -1,0.20 255 -w 8`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.region != "" {
				return cobra.RangeArgs(2, 3)(cmd, args)
			}
			return cobra.ExactArgs(5)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				opts.workers = c.config().Render.Workers
			}
			return c.runRender(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "number of parallel bands (0 = host parallelism)")
	cmd.Flags().StringVarP(&opts.palette, "palette", "p", "", "gray mapping: linear (default), saturate")
	cmd.Flags().StringVarP(&opts.mapping, "mapping", "m", "", "pixel mapping: inclusive (default), exclusive")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", "", "color theme: grayscale (default), fire, water")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png, jpg, gif, bmp, tiff, pgm, zst (default: from OUTPUT)")
	cmd.Flags().StringVarP(&opts.region, "region", "r", "", "named region instead of corners (see `mandel regions`)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached renders and overwrite them")
	registerValueCompletions(cmd)

	return cmd
}

// renderArgs maps positional arguments onto params.Args.
func renderArgs(args []string, opts renderOpts) params.Args {
	a := params.Args{
		Size:    args[1],
		Workers: opts.workers,
		Palette: opts.palette,
		Mapping: opts.mapping,
		Region:  opts.region,
	}
	if opts.region != "" {
		if len(args) > 2 {
			a.Limit = args[2]
		}
		return a
	}
	a.UpperLeft, a.LowerRight, a.Limit = args[2], args[3], args[4]
	return a
}

// resolveFormat returns the format flag, or the one implied by the output
// extension, or the configured default.
func resolveFormat(flag, output, fallback string) (io.Format, error) {
	if flag != "" {
		return io.ParseFormat(flag)
	}
	if f, err := io.FormatFromPath(output); err == nil {
		return f, nil
	}
	return io.ParseFormat(fallback)
}

func (c *CLI) runRender(ctx context.Context, args []string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	cfg := c.config()
	output := args[0]

	if err := errs.ValidateOutputPath(output); err != nil {
		return err
	}

	a := renderArgs(args, opts)
	a.Palette = orDefault(a.Palette, cfg.Render.Palette)
	a.Mapping = orDefault(a.Mapping, cfg.Render.Mapping)
	if a.Limit == "" {
		a.Limit = fmt.Sprint(cfg.Render.Limit)
	}
	req, err := params.BuildRequest(a)
	if err != nil {
		return err
	}

	format, err := resolveFormat(opts.format, output, cfg.Output.Format)
	if err != nil {
		return err
	}
	theme, err := io.ParseTheme(orDefault(opts.theme, cfg.Output.Theme))
	if err != nil {
		return err
	}
	if !theme.Gray() && !format.Themed() {
		logger.Debug("theme has no effect on this format", "theme", theme.Name, "format", format)
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %dx%d", req.Width, req.Height))
	spinner.Start()
	res, err := runner.Execute(ctx, pipeline.Options{Request: req, Refresh: opts.refresh})
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", output))

	prog := newProgress(logger)
	if err := io.Export(res.Buffer, output, format,
		io.WithTheme(theme), io.WithJPEGQuality(cfg.Output.JPEGQuality)); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %s", output), "format", format, "theme", theme.Name)

	printStats(res)
	printFile(output)
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
