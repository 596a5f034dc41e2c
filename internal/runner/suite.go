package runner

import (
	"fmt"
	"sync"
)

// suite is the package-level test registry. Test packages register their
// cases from init functions; the CLI plans and runs whatever is registered.
var suite = struct {
	mu    sync.Mutex
	tests []TestCase
	names map[string]bool
}{names: make(map[string]bool)}

// Register adds a test case to the default suite. Test names must be
// unique; declaration (registration) order determines plan order.
func Register(test TestCase) error {
	suite.mu.Lock()
	defer suite.mu.Unlock()

	if test.Name == "" {
		return fmt.Errorf("test case has no name")
	}
	if test.Run == nil {
		return fmt.Errorf("test case %q has no body", test.Name)
	}
	if suite.names[test.Name] {
		return fmt.Errorf("test case %q already registered", test.Name)
	}

	suite.names[test.Name] = true
	suite.tests = append(suite.tests, test)
	return nil
}

// MustRegister is Register for init-time declarations.
func MustRegister(test TestCase) {
	if err := Register(test); err != nil {
		panic(err)
	}
}

// Suite returns the registered test cases in registration order.
func Suite() []TestCase {
	suite.mu.Lock()
	defer suite.mu.Unlock()

	out := make([]TestCase, len(suite.tests))
	copy(out, suite.tests)
	return out
}
