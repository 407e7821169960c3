package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

const barWidth = 30

var spinner = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Progress prints stage lines to out and redraws a transient bar on a
// terminal. The bar is skipped when its writer is nil.
type Progress struct {
	out     io.Writer
	bar     io.Writer
	total   int
	done    int
	started time.Time
}

func NewProgress(out io.Writer, bar io.Writer) *Progress {
	return &Progress{out: out, bar: bar}
}

// TerminalBar returns f when it is an interactive terminal, nil otherwise.
func TerminalBar(f *os.File) io.Writer {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return f
	}
	return nil
}

func (p *Progress) Compiling() {
	fmt.Fprintln(p.out, "Compiling...")
}

func (p *Progress) Compiled(ok bool) {
	if ok {
		fmt.Fprintln(p.out, "Compilation Successful")
	}
}

func (p *Progress) Start(total int) {
	p.total = total
	p.done = 0
	p.started = time.Now()
	p.draw()
}

func (p *Progress) Advance() {
	p.done++
	p.draw()
}

func (p *Progress) Done() {
	if p.bar == nil {
		return
	}
	fmt.Fprint(p.bar, "\r\033[K")
}

func (p *Progress) draw() {
	if p.bar == nil {
		return
	}
	filled := barWidth
	if p.total > 0 {
		filled = barWidth * p.done / p.total
	}
	elapsed := time.Since(p.started).Truncate(time.Second)
	fmt.Fprintf(p.bar, "\r%c Running testcases [%s%s] %d/%d %s",
		spinner[p.done%len(spinner)],
		strings.Repeat("#", filled), strings.Repeat(" ", barWidth-filled),
		p.done, p.total, elapsed)
}
