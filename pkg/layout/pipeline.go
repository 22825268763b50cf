package layout

import "slices"

// Node is a view that can be scheduled for layout.
type Node interface {
	// Depth is the node's distance from the root (root = 0).
	Depth() int
	// NeedsLayout reports whether the node is still dirty.
	NeedsLayout() bool
	// PerformLayout runs the host's measure pass for the node and clears
	// its dirty flag.
	PerformLayout()
}

// PipelineOwner collects nodes that requested layout.
//
// Requests are deduplicated and flushed in depth order, parents first, so
// a parent's layout pass can clear a scheduled child before the owner
// reaches it.
type PipelineOwner struct {
	dirty       []Node
	dirtySet    map[Node]bool // O(1) dedup check
	needsLayout bool

	// OnNeedsFrame, if set, is called the first time a node is scheduled
	// after a flush.
	OnNeedsFrame func()
}

// ScheduleLayout marks a node as needing layout.
func (p *PipelineOwner) ScheduleLayout(node Node) {
	if node == nil {
		return
	}
	if p.dirtySet == nil {
		p.dirtySet = make(map[Node]bool)
	}
	if p.dirtySet[node] {
		return
	}
	p.dirtySet[node] = true
	p.dirty = append(p.dirty, node)
	if !p.needsLayout {
		p.needsLayout = true
		if p.OnNeedsFrame != nil {
			p.OnNeedsFrame()
		}
	}
}

// NeedsLayout reports if any node needs layout.
func (p *PipelineOwner) NeedsLayout() bool {
	return p.needsLayout
}

// Pending returns the number of scheduled nodes.
func (p *PipelineOwner) Pending() int {
	return len(p.dirty)
}

// FlushLayout lays out every scheduled node, parents first. Nodes scheduled
// while flushing are processed in a following batch of the same call.
// It returns the number of nodes that ran PerformLayout.
func (p *PipelineOwner) FlushLayout() int {
	count := 0
	for len(p.dirty) > 0 {
		slices.SortStableFunc(p.dirty, func(a, b Node) int {
			return a.Depth() - b.Depth()
		})

		// Take current batch and clear for next iteration
		dirty := p.dirty
		p.dirty = nil
		p.dirtySet = nil

		for _, node := range dirty {
			// A parent's layout may already have laid out this node
			if node.NeedsLayout() {
				node.PerformLayout()
				count++
			}
		}
	}
	p.needsLayout = false
	return count
}
