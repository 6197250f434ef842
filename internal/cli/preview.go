package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mandel/pkg/fractal"
	"github.com/matzehuels/mandel/pkg/params"
)

const (
	// charAspect is the height of a terminal cell divided by its width.
	charAspect = 2.0

	panStep  = 0.1
	zoomStep = 2.0
	minSpan  = 1e-13
	maxLimit = 1 << 20
)

// ramp maps brightness to glyphs, densest last. Bounded points (gray 0)
// draw as the densest glyph.
const ramp = " .:-=+*#%@"

var (
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewKeyStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// shade returns the glyph for gray value v.
func shade(v byte) byte {
	return ramp[int(255-v)*(len(ramp)-1)/255]
}

// frameMsg carries a finished render back to the model.
type frameMsg struct {
	seq  int
	text string
	took time.Duration
	err  error
}

// previewModel is the bubbletea model of `mandel preview`.
type previewModel struct {
	center  complex128
	span    float64 // width of the view along the real axis
	limit   uint32
	workers int

	cols, rows int

	regions []string
	region  int // index into regions, -1 after panning or zooming

	seq   int
	frame string
	took  time.Duration
	err   error
}

func newPreviewModel(region string, limit uint32, workers int) (previewModel, error) {
	m := previewModel{
		limit:   limit,
		workers: workers,
		regions: fractal.RegionNames(),
		region:  -1,
	}
	for i, name := range m.regions {
		if name == region {
			m.region = i
		}
	}
	if m.region < 0 {
		_, err := fractal.LookupRegion(region)
		return m, err
	}
	m.goToRegion(m.region)
	return m, nil
}

func (m *previewModel) goToRegion(i int) {
	r, _ := fractal.LookupRegion(m.regions[i])
	m.region = i
	m.center = (r.UpperLeft + r.LowerRight) / 2
	m.span = real(r.LowerRight) - real(r.UpperLeft)
}

// spanIm returns the height of the view along the imaginary axis.
func (m previewModel) spanIm() float64 {
	if m.cols == 0 {
		return 0
	}
	return m.span * float64(m.rows) / float64(m.cols) * charAspect
}

func (m previewModel) request() fractal.Request {
	half := complex(m.span/2, m.spanIm()/2)
	return fractal.Request{
		Viewport: fractal.Viewport{
			Width:      m.cols,
			Height:     m.rows,
			UpperLeft:  m.center - complex(real(half), -imag(half)),
			LowerRight: m.center + complex(real(half), -imag(half)),
		},
		Limit:   m.limit,
		Workers: m.workers,
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, 1)
		m.rows = max(msg.Height-1, 1)
		return m.rerender()

	case frameMsg:
		if msg.seq == m.seq {
			m.frame, m.took, m.err = msg.text, msg.took, msg.err
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.center -= complex(m.span*panStep, 0)
		case "right", "l":
			m.center += complex(m.span*panStep, 0)
		case "up", "k":
			m.center += complex(0, m.spanIm()*panStep)
		case "down", "j":
			m.center -= complex(0, m.spanIm()*panStep)
		case "+", "=":
			m.span = max(m.span/zoomStep, minSpan)
		case "-", "_":
			m.span *= zoomStep
		case "]":
			m.limit = min(max(m.limit*2, 1), maxLimit)
			return m.rerender()
		case "[":
			m.limit = max(m.limit/2, 1)
			return m.rerender()
		case "tab", "n":
			m.goToRegion((m.region + 1) % len(m.regions))
			return m.rerender()
		case "shift+tab", "p":
			m.goToRegion((m.region - 1 + len(m.regions)) % len(m.regions))
			return m.rerender()
		default:
			return m, nil
		}
		m.region = -1
		return m.rerender()
	}
	return m, nil
}

// rerender starts a render of the current view. Frames from older requests
// are dropped when they arrive.
func (m previewModel) rerender() (tea.Model, tea.Cmd) {
	if m.cols == 0 {
		return m, nil
	}
	m.seq++
	seq, req := m.seq, m.request()
	return m, func() tea.Msg {
		start := time.Now()
		text, err := renderFrame(req)
		return frameMsg{seq: seq, text: text, took: time.Since(start), err: err}
	}
}

// renderFrame renders req as rows of glyphs.
func renderFrame(req fractal.Request) (string, error) {
	buf, err := fractal.Render(req)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow((buf.Width + 1) * buf.Height)
	for y := 0; y < buf.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, v := range buf.Row(y) {
			b.WriteByte(shade(v))
		}
	}
	return b.String(), nil
}

func (m previewModel) View() string {
	var b strings.Builder
	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
	} else {
		b.WriteString(m.frame)
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().MaxWidth(max(m.cols, 1)).Render(m.status()))
	return b.String()
}

func (m previewModel) status() string {
	name := "custom"
	if m.region >= 0 {
		name = m.regions[m.region]
	}
	parts := []string{
		StyleTitle.Render(name),
		previewStatusStyle.Render(params.FormatComplex(m.center)),
		previewStatusStyle.Render("span ") + StyleNumber.Render(strconv.FormatFloat(m.span, 'g', 4, 64)),
		previewStatusStyle.Render("limit ") + StyleNumber.Render(strconv.FormatUint(uint64(m.limit), 10)),
		previewStatusStyle.Render(m.took.Round(time.Millisecond).String()),
		previewKeyStyle.Render("←↓↑→ pan  +/- zoom  [/] limit  tab region  q quit"),
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

type previewOpts struct {
	region  string
	limit   uint32
	workers int
}

// previewCommand creates the preview command, an interactive explorer that
// renders into the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{region: "full"}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Explore the Mandelbrot set in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			if !cmd.Flags().Changed("limit") {
				opts.limit = cfg.Render.Limit
			}
			if !cmd.Flags().Changed("workers") {
				opts.workers = cfg.Render.Workers
			}
			return runPreview(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.region, "region", "r", opts.region, "starting region (see `mandel regions`)")
	cmd.Flags().Uint32VarP(&opts.limit, "limit", "l", 0, "iteration limit (default from config, 255)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "number of parallel bands (0 = host parallelism)")
	registerValueCompletions(cmd)

	return cmd
}

func runPreview(ctx context.Context, opts previewOpts) error {
	m, err := newPreviewModel(opts.region, opts.limit, opts.workers)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
