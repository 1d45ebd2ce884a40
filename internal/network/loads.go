package network

import (
	"errors"

	"github.com/alexiusacademia/goflow/internal/hydraulics"
)

// PipeLoad is the accumulated flow a pipe has to carry
type PipeLoad struct {
	Pipe     *Pipe
	Drains   string  // node the pipe drains, empty if none upstream
	FlowRate float64 // m³/s
}

// PipeLoads reports, for every pipe, the accumulated flow at the first node
// after it in the chain, which is the node it drains toward the start.
// The accumulation itself never reads pipe flow.
func (n *PipeNetwork) PipeLoads() []PipeLoad {
	flows := n.FlowAtNodes()

	var loads []PipeLoad
	for i, obj := range n.Objects {
		pipe, ok := obj.(*Pipe)
		if !ok {
			continue
		}
		load := PipeLoad{Pipe: pipe}
		for _, next := range n.Objects[i+1:] {
			if node, ok := next.(*Node); ok {
				load.Drains = node.Name
				load.FlowRate = flows[node.Name]
				break
			}
		}
		loads = append(loads, load)
	}
	return loads
}

// Apply sets each loaded pipe's flow rate to its accumulated load and
// returns the pipes that cannot carry it. Pipes without a state are
// skipped; other rejections leave the pipe invalid but are not overloads.
func Apply(loads []PipeLoad) []PipeLoad {
	var overloaded []PipeLoad
	for _, load := range loads {
		if load.Pipe == nil || load.Pipe.State == nil {
			continue
		}
		if err := load.Pipe.State.SetFlowRate(load.FlowRate); errors.Is(err, hydraulics.ErrOverCapacity) {
			overloaded = append(overloaded, load)
		}
	}
	return overloaded
}

// Capacity returns the full-pipe flow rate of the loaded pipe, or zero
func (l PipeLoad) Capacity() float64 {
	if l.Pipe == nil || l.Pipe.State == nil {
		return 0
	}
	return l.Pipe.State.FullFlowRate()
}

// Utilisation returns the load as a fraction of full-pipe capacity
func (l PipeLoad) Utilisation() float64 {
	capacity := l.Capacity()
	if capacity == 0 {
		return 0
	}
	return l.FlowRate / capacity
}
