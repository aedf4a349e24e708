package main

import (
	"fmt"
	"io"

	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/search"
)

// printingMonitor writes each search stage to out for inspection.
type printingMonitor struct {
	out io.Writer
}

var _ search.SearchMonitor = (*printingMonitor)(nil)

func (p *printingMonitor) Start(query string, alpha float64) {
	fmt.Fprintf(p.out, "query %q alpha %0.2f\n", query, alpha)
}

func (p *printingMonitor) AfterLexicalSearch(scored []core.ScoredChunk) {
	p.printAxis("lexical", scored)
}

func (p *printingMonitor) AfterVectorSearch(scored []core.ScoredChunk) {
	p.printAxis("vector", scored)
}

func (p *printingMonitor) AfterFusion(fused []core.ScoredChunk) {
	p.printAxis("fused", fused)
}

func (p *printingMonitor) Finish(hits []*core.Hit) {
	fmt.Fprintf(p.out, "returning %d hits\n", len(hits))
}

func (p *printingMonitor) printAxis(name string, scored []core.ScoredChunk) {
	fmt.Fprintf(p.out, "%s: %d chunks", name, len(scored))
	for i, s := range scored {
		if i == 5 {
			fmt.Fprint(p.out, " ...")
			break
		}
		fmt.Fprintf(p.out, " %d=%0.3f", s.ChunkId, s.Score)
	}
	fmt.Fprintln(p.out)
}
