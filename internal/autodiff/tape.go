package autodiff

// Tape holds the topological order of the graph reachable from a root.
// Every value appears after all of its operands; the root is last.
//
// Usage:
//
//	tape := NewTape(loss)
//	tape.ZeroGrad()
//	tape.Backward()
type Tape struct {
	root   *Value
	values []*Value // Reachable values in topological order
}

// frame is one entry of the explicit DFS stack.
type frame struct {
	value *Value
	next  int // Index of the next operand to visit
}

// NewTape records the graph reachable from root.
//
// Algorithm (depth-first post-order, operands in argument order):
//  1. Push root; mark it visited
//  2. Descend into the next unvisited operand of the top frame
//  3. When a frame has no operands left, append its value and pop it
//
// Visited tracking is by pointer identity, so a value shared by several
// consumers is recorded once, and equal data in distinct values does not
// merge them. The walk uses an explicit stack, so long chains do not
// deepen the goroutine stack.
func NewTape(root *Value) *Tape {
	if root == nil {
		panic("autodiff: tape root is nil")
	}

	values := make([]*Value, 0, 64)
	visited := map[*Value]struct{}{root: {}}
	stack := []frame{{value: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.value.operands) {
			operand := top.value.operands[top.next]
			top.next++
			if _, seen := visited[operand]; !seen {
				visited[operand] = struct{}{}
				stack = append(stack, frame{value: operand})
			}
			continue
		}
		values = append(values, top.value)
		stack = stack[:len(stack)-1]
	}

	return &Tape{root: root, values: values}
}

// Root returns the value the tape was recorded from.
func (t *Tape) Root() *Value {
	return t.root
}

// Values returns the recorded values in topological order (root last).
func (t *Tape) Values() []*Value {
	out := make([]*Value, len(t.values))
	copy(out, t.values)
	return out
}

// Len returns the number of recorded values.
func (t *Tape) Len() int {
	return len(t.values)
}

// Backward computes gradients for every recorded value by walking the tape in reverse.
//
// Algorithm:
//  1. Seed the root gradient with 1 (d root / d root)
//  2. Walk values from the root towards the leaves
//  3. Apply each value's local rule once, adding into its operands' gradients
//
// A value is reached only after every consumer has run, so its gradient is
// complete before it is pushed further down.
func (t *Tape) Backward() {
	t.root.grad = 1
	for i := len(t.values) - 1; i >= 0; i-- {
		t.values[i].propagate()
	}
}

// ZeroGrad resets the gradient of every recorded value.
func (t *Tape) ZeroGrad() {
	for _, v := range t.values {
		v.grad = 0
	}
}
