// Package progress draws a terminal progress bar for the line loop.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Reporter receives line counts from the conversion loop.
type Reporter interface {
	Start(total int)
	Add(n int)
	Finish()
}

// Nop ignores every call.
type Nop struct{}

func (Nop) Start(int) {}
func (Nop) Add(int)   {}
func (Nop) Finish()   {}

const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

// Enabled decides whether to draw on w. In auto mode w must be a terminal.
func Enabled(mode string, w io.Writer) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const redrawEvery = 100 * time.Millisecond

var counterStyle = lipgloss.NewStyle().Faint(true)

// Bar redraws one line in place with elapsed time, a bar and a counter.
// Redraws are throttled; the loop calls Add once per line.
type Bar struct {
	out   io.Writer
	model bprogress.Model
	now   func() time.Time

	total, done int
	start, last time.Time
}

func NewBar(out io.Writer) *Bar {
	return &Bar{
		out:   out,
		model: bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithWidth(40)),
		now:   time.Now,
	}
}

func (b *Bar) Start(total int) {
	b.total, b.done = total, 0
	b.start = b.now()
	b.draw()
}

func (b *Bar) Add(n int) {
	b.done += n
	if t := b.now(); t.Sub(b.last) >= redrawEvery || b.done >= b.total {
		b.draw()
	}
}

func (b *Bar) Finish() {
	b.draw()
	fmt.Fprintln(b.out)
}

func (b *Bar) draw() {
	b.last = b.now()
	pct := 1.0
	if b.total > 0 {
		pct = float64(b.done) / float64(b.total)
	}
	elapsed := b.last.Sub(b.start).Truncate(time.Second)
	counter := counterStyle.Render(fmt.Sprintf("%d/%d", b.done, b.total))
	fmt.Fprintf(b.out, "\r[%s] %s %s", elapsed, b.model.ViewAs(pct), counter)
}
