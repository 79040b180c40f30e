package ops

// Kind identifies the operation that produced a value.
// It is used for display and debugging only.
type Kind string

// Operation kinds.
const (
	KindLeaf Kind = "leaf"
	KindAdd  Kind = "add"
	KindMul  Kind = "mul"
	KindPow  Kind = "pow"
	KindExp  Kind = "exp"
	KindTanh Kind = "tanh"
	KindReLU Kind = "relu"
	KindLog  Kind = "log"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Symbol returns the short symbol used when drawing graphs (e.g. "+" for add).
func (k Kind) Symbol() string {
	switch k {
	case KindAdd:
		return "+"
	case KindMul:
		return "*"
	case KindPow:
		return "**"
	case KindReLU:
		return "ReLU"
	default:
		return string(k)
	}
}
