package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// progress prints a percentage line on stderr. It stays silent when stderr
// is not a terminal, so redirected output carries no carriage returns.
type progress struct {
	out     *os.File
	enabled bool
	last    int
}

func newProgress(out *os.File) *progress {
	return &progress{
		out:     out,
		enabled: term.IsTerminal(int(out.Fd())),
		last:    -1,
	}
}

func (p *progress) update(done float64) {
	if !p.enabled {
		return
	}
	pct := int(done * 100)
	if pct == p.last {
		return
	}
	p.last = pct
	fmt.Fprintf(p.out, "\rrendering %3d%%", pct)
}

func (p *progress) done() {
	if p.enabled && p.last >= 0 {
		fmt.Fprintln(p.out)
	}
}
