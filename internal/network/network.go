package network

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/goflow/internal/hydraulics"
)

// NodeType classifies a junction in a pipe network
type NodeType int

const (
	Breakpoint NodeType = iota
	Manhole
	Inlet
	Outlet
)

var nodeTypeNames = map[NodeType]string{
	Breakpoint: "breakpoint",
	Manhole:    "manhole",
	Inlet:      "inlet",
	Outlet:     "outlet",
}

func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("nodetype(%d)", int(t))
}

// ParseNodeType looks up a node type by name (case-insensitive)
func ParseNodeType(name string) (NodeType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for t, n := range nodeTypeNames {
		if n == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown node type %q", name)
}

// Object is an element of a pipe network chain: a *Node or a *Pipe
type Object interface {
	objectName() string
}

// Node is a junction where flow may enter the network
type Node struct {
	Name        string
	Type        NodeType
	GroundLevel *float64 // m above the pipe invert, optional
	Dimension   *float64 // m, optional

	// Flow entering the network at this node (m³/s)
	AddedFlow float64

	// Hydraulic grade line level at the node (m), carried as data
	HydraulicGradeLine float64
}

// NewNode creates a node with the given added flow
func NewNode(name string, nodeType NodeType, addedFlow float64) *Node {
	return &Node{
		Name:      name,
		Type:      nodeType,
		AddedFlow: addedFlow,
	}
}

func (n *Node) objectName() string { return n.Name }

// Pipe is a pipe between two nodes of the chain
type Pipe struct {
	Name  string
	State *hydraulics.PipeState
}

func (p *Pipe) objectName() string { return p.Name }

// PipeNetwork is a single linear chain of nodes and pipes. Objects run
// from the start node outward to the most upstream point.
type PipeNetwork struct {
	Name    string
	Start   *Node
	Objects []Object
}

// NewPipeNetwork creates a network rooted at the start node
func NewPipeNetwork(start *Node, objects ...Object) *PipeNetwork {
	return &PipeNetwork{
		Start:   start,
		Objects: objects,
	}
}

// Append adds objects to the upstream end of the chain
func (n *PipeNetwork) Append(objects ...Object) {
	n.Objects = append(n.Objects, objects...)
}

// Nodes returns the nodes of the chain in order, excluding the start node
func (n *PipeNetwork) Nodes() []*Node {
	var nodes []*Node
	for _, obj := range n.Objects {
		if node, ok := obj.(*Node); ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// Pipes returns the pipes of the chain in order
func (n *PipeNetwork) Pipes() []*Pipe {
	var pipes []*Pipe
	for _, obj := range n.Objects {
		if pipe, ok := obj.(*Pipe); ok {
			pipes = append(pipes, pipe)
		}
	}
	return pipes
}

// FlowAtNodes calculates the flow rate through every node (m³/s), keyed
// by node name.
//
// The chain is walked in reverse, from the most upstream point toward the
// start node, summing each node's added flow. Pipes carry no flow of their
// own and are skipped. Node names are not deduplicated: a repeated name
// keeps the value recorded last in the walk.
func (n *PipeNetwork) FlowAtNodes() map[string]float64 {
	nodes := make(map[string]float64)
	var summedUpFlow float64

	for i := len(n.Objects) - 1; i >= 0; i-- {
		if node, ok := n.Objects[i].(*Node); ok {
			summedUpFlow += node.AddedFlow
			nodes[node.Name] = summedUpFlow
		}
	}

	if n.Start != nil {
		nodes[n.Start.Name] = summedUpFlow + n.Start.AddedFlow
	}
	return nodes
}

// FlowAtStartNode returns the total flow leaving the network at the start node
func (n *PipeNetwork) FlowAtStartNode() float64 {
	if n.Start == nil {
		return 0
	}
	return n.FlowAtNodes()[n.Start.Name]
}
