package bridge

import (
	"fmt"
	"sync"
)

// InFlightMarker is appended to an action label while an invocation runs.
const InFlightMarker = "…"

// FormGroup is the runtime state of one rendered descriptor: its input
// slots, its action label and its output slot.
type FormGroup struct {
	Descriptor *MethodDescriptor

	// run serialises invocations of this group.
	run sync.Mutex

	mu      sync.RWMutex
	inputs  []string
	output  string
	last    *Result
	pending int
}

func newFormGroup(d *MethodDescriptor) *FormGroup {
	return &FormGroup{
		Descriptor: d,
		inputs:     make([]string, len(d.Params)),
	}
}

// Name is the method name.
func (g *FormGroup) Name() string { return g.Descriptor.Name }

// Slots is the number of input slots.
func (g *FormGroup) Slots() int { return len(g.inputs) }

// Placeholder returns the hint text of slot i.
func (g *FormGroup) Placeholder(i int) string {
	return g.Descriptor.Params[i].Placeholder()
}

// Input returns the current text of slot i.
func (g *FormGroup) Input(i int) string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.inputs[i]
}

// Inputs returns a copy of all slot texts in declared order.
func (g *FormGroup) Inputs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, len(g.inputs))
	copy(out, g.inputs)
	return out
}

// SetInput replaces the text of slot i.
func (g *FormGroup) SetInput(i int, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i < 0 || i >= len(g.inputs) {
		return fmt.Errorf("%s has %d inputs, no slot %d", g.Descriptor.Name, len(g.inputs), i)
	}
	g.inputs[i] = text
	return nil
}

// SetInputs fills the slots in order. Extra values are an error.
func (g *FormGroup) SetInputs(values []string) error {
	if len(values) != len(g.inputs) {
		return fmt.Errorf("%w: %s takes %d arguments, got %d",
			ErrArityMismatch, g.Descriptor.Name, len(g.inputs), len(values))
	}
	g.mu.Lock()
	copy(g.inputs, values)
	g.mu.Unlock()
	return nil
}

// Action is the base label of the action control.
func (g *FormGroup) Action() string {
	if g.Descriptor.Mutates {
		return "Transact"
	}
	return "Read"
}

// Label is the action label as displayed, with the in-flight marker while
// any invocation of this group has not settled.
func (g *FormGroup) Label() string {
	if g.InFlight() {
		return g.Action() + InFlightMarker
	}
	return g.Action()
}

// InFlight reports whether an invocation is running or queued.
func (g *FormGroup) InFlight() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pending > 0
}

// Output is the text of the output slot.
func (g *FormGroup) Output() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.output
}

// Last returns the most recent settled result.
func (g *FormGroup) Last() (Result, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.last == nil {
		return Result{}, false
	}
	return *g.last, true
}

func (g *FormGroup) begin() {
	g.mu.Lock()
	g.pending++
	g.mu.Unlock()
}

func (g *FormGroup) clearOutput() {
	g.mu.Lock()
	g.output = ""
	g.mu.Unlock()
}

func (g *FormGroup) settle(r Result) {
	g.mu.Lock()
	g.pending--
	g.output = r.String()
	g.last = &r
	g.mu.Unlock()
}

// Section is one rendered category.
type Section struct {
	Category Category
	Title    string
	Groups   []*FormGroup
}
