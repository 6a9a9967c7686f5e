package synth

import "fmt"

// Invocation is how generated code calls a helper from a caller.
type Invocation int

const (
	// Direct is a plain call.
	Direct Invocation = iota
	// Await propagates the callee's error to the caller.
	Await
	// BlockingWait panics with the callee's error because the caller cannot return one.
	BlockingWait
)

// String returns the name of the invocation.
func (i Invocation) String() string {
	switch i {
	case Await:
		return "await"
	case BlockingWait:
		return "blocking-wait"
	default:
		return "direct"
	}
}

// InvocationStrategy picks the invocation for a caller/callee pair.
func InvocationStrategy(callerAsync, calleeAsync bool) Invocation {
	switch {
	case !calleeAsync:
		return Direct
	case callerAsync:
		return Await
	default:
		return BlockingWait
	}
}

// call renders an invocation as statements.
//
// lhs names the variable receiving the callee's value; empty discards it. results is the
// callee's result count and fail holds the statements run when an error comes back.
func call(inv Invocation, lhs, expr string, results int, fail ...string) []string {
	if inv == Direct {
		if lhs == "" {
			return []string{expr}
		}
		return []string{lhs + " := " + expr}
	}

	if inv == BlockingWait {
		fail = []string{"panic(_err_)"}
	}

	var lines []string
	switch {
	case lhs != "":
		lines = append(lines, fmt.Sprintf("%s, _err_ := %s", lhs, expr), "if _err_ != nil {")
	case results > 1:
		lines = append(lines, fmt.Sprintf("if _, _err_ := %s; _err_ != nil {", expr))
	default:
		lines = append(lines, fmt.Sprintf("if _err_ := %s; _err_ != nil {", expr))
	}
	lines = append(lines, fail...)
	return append(lines, "}")
}
