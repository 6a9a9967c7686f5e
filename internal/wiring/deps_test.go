package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
)

// TestGraftDependencies ensures that the dependency injection graph is valid
// at compile/test time. It checks that every node declaring a dependency
// actually uses it, and every used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers the dependency ID from the package name of the
	// type passed to Dep[T]. Nodes here resolve ports.Logger, ports.UnitWriter and
	// friends, which all live in the ports package under distinct node IDs.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}
