// Package console renders grading events and summaries for humans.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/perfgo/lingsgrade/grader"
	"github.com/perfgo/lingsgrade/model"
	"golang.org/x/term"
)

var (
	headingColor = color.New(color.FgBlue, color.Bold)
	infoColor    = color.New(color.FgBlue)
	passColor    = color.New(color.FgGreen, color.Bold)
	failColor    = color.New(color.FgRed, color.Bold)
	barColor     = color.New(color.FgCyan)
)

// Console writes progress and results to a terminal or plain stream.
type Console struct {
	out io.Writer
	// progress bar is only drawn on an interactive terminal
	tty   bool
	width int
	start time.Time
}

var _ grader.Observer = &Console{}

// New creates a console writing to out.
func New(out io.Writer) *Console {
	c := &Console{out: out, width: 80, start: time.Now()}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.tty = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			c.width = w
		}
	}
	return c
}

// Heading prints an emphasized line.
func (c *Console) Heading(msg string) {
	headingColor.Fprintln(c.out, msg)
}

// Info prints a plain informational line.
func (c *Console) Info(msg string) {
	infoColor.Fprintln(c.out, msg)
}

func (c *Console) Discovered(count int) {
	c.start = time.Now()
	fmt.Fprintf(c.out, "%s %d %s\n", headingColor.Sprint("found"), count, headingColor.Sprint("exercise files"))
}

func (c *Console) Started(name string) {
	fmt.Fprintf(c.out, "%s %s\n", headingColor.Sprint("grading:"), name)
}

func (c *Console) Output(_ string, stdout, stderr string) {
	for _, s := range []string{stdout, stderr} {
		if s = strings.TrimRight(s, "\n"); s != "" {
			fmt.Fprintln(c.out, s)
		}
	}
}

func (c *Console) CompileFailed(name string) {
	fmt.Fprintf(c.out, "%s %s\n", failColor.Sprint("compile failed:"), name)
}

func (c *Console) Finished(o model.Outcome) {
	if o.Passed {
		fmt.Fprintf(c.out, "%s %s\n", passColor.Sprint("✓"), o.Name)
	} else {
		fmt.Fprintf(c.out, "%s %s\n", failColor.Sprint("✗"), o.Name)
	}
}

func (c *Console) Progress(done, total int) {
	if !c.tty {
		return
	}
	fmt.Fprintln(c.out, renderBar(done, total, c.barWidth(), time.Since(c.start)))
}

func (c *Console) barWidth() int {
	// room for brackets, counters and elapsed time
	w := c.width - 30
	if w > 40 {
		w = 40
	}
	if w < 10 {
		w = 10
	}
	return w
}

func renderBar(done, total, width int, elapsed time.Duration) string {
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
	return fmt.Sprintf("[%s] [%s] %d/%d", formatElapsed(elapsed), barColor.Sprint(bar), done, total)
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, d/time.Second)
}
