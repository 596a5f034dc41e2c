package runner

import (
	"context"
	"testing"
)

func TestSuiteRegistration(t *testing.T) {
	body := func(ctx context.Context, mh *Multihost, param string) error { return nil }

	t.Run("rejects unnamed tests", func(t *testing.T) {
		if err := Register(TestCase{Run: body}); err == nil {
			t.Error("expected error for unnamed test")
		}
	})

	t.Run("rejects tests without a body", func(t *testing.T) {
		if err := Register(TestCase{Name: "TestNoBody"}); err == nil {
			t.Error("expected error for test without a body")
		}
	})

	t.Run("rejects duplicate names and preserves order", func(t *testing.T) {
		if err := Register(TestCase{Name: "TestSuiteFirst", Run: body}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := Register(TestCase{Name: "TestSuiteSecond", Run: body}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := Register(TestCase{Name: "TestSuiteFirst", Run: body}); err == nil {
			t.Error("expected error for duplicate registration")
		}

		tests := Suite()
		var names []string
		for _, tc := range tests {
			if tc.Name == "TestSuiteFirst" || tc.Name == "TestSuiteSecond" {
				names = append(names, tc.Name)
			}
		}
		if len(names) != 2 || names[0] != "TestSuiteFirst" || names[1] != "TestSuiteSecond" {
			t.Errorf("unexpected registration order: %v", names)
		}
	})
}
