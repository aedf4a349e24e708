package search

import "github.com/poiesic/docsearch/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string, alpha float64)
	AfterLexicalSearch(scored []core.ScoredChunk)
	AfterVectorSearch(scored []core.ScoredChunk)
	AfterFusion(fused []core.ScoredChunk)
	Finish(hits []*core.Hit)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ float64)               {}
func (n *noopMonitor) AfterLexicalSearch(_ []core.ScoredChunk) {}
func (n *noopMonitor) AfterVectorSearch(_ []core.ScoredChunk)  {}
func (n *noopMonitor) AfterFusion(_ []core.ScoredChunk)        {}
func (n *noopMonitor) Finish(_ []*core.Hit)                    {}
