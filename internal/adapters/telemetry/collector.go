package telemetry

import (
	"slices"
	"sync"

	"github.com/vito/progrock"
)

// VertexState is the last known state of one recorded vertex.
type VertexState struct {
	ID        string
	Name      string
	Completed bool
	Cached    bool
	Error     string
	Output    string
}

// Failed reports whether the vertex completed with an error.
func (s VertexState) Failed() bool {
	return s.Error != ""
}

// Collector is a progrock.Writer that folds status updates into per-vertex
// state, in the order vertices were first seen.
type Collector struct {
	mu     sync.Mutex
	order  []string
	states map[string]*VertexState
	hidden map[string]bool
	closed bool
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		states: make(map[string]*VertexState),
		hidden: make(map[string]bool),
	}
}

// WriteStatus implements progrock.Writer.
func (c *Collector) WriteStatus(update *progrock.StatusUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range update.Vertexes {
		st := c.state(v.Id)
		st.Name = v.Name
		st.Completed = v.Completed != nil
		st.Cached = v.Cached
		if v.Error != nil {
			st.Error = *v.Error
		}
	}
	for _, l := range update.Logs {
		st := c.state(l.Vertex)
		st.Output += string(l.Data)
	}
	return nil
}

func (c *Collector) state(id string) *VertexState {
	st, ok := c.states[id]
	if !ok {
		st = &VertexState{ID: id}
		c.states[id] = st
		c.order = append(c.order, id)
	}
	return st
}

func (c *Collector) hide(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hidden[id] = true
}

// Close implements progrock.Writer.
func (c *Collector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Closed reports whether Close was called.
func (c *Collector) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Vertices returns a snapshot of the non-internal vertices.
func (c *Collector) Vertices() []VertexState {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]VertexState, 0, len(c.order))
	for _, id := range c.order {
		if c.hidden[id] {
			continue
		}
		out = append(out, *c.states[id])
	}
	return out
}

// Failures returns the names of vertices that completed with an error.
func (c *Collector) Failures() []string {
	var names []string
	for _, v := range c.Vertices() {
		if v.Failed() {
			names = append(names, v.Name)
		}
	}
	slices.Sort(names)
	return names
}
