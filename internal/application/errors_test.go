package application

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	vErr := &ValidationError{}
	if vErr.HasErrors() {
		t.Fatal("expected no errors on empty ValidationError")
	}

	vErr.add("name", "name is required")
	if !vErr.HasErrors() {
		t.Fatal("expected HasErrors after add")
	}
	if vErr.Error() != "validation failed" {
		t.Fatalf("unexpected message: %q", vErr.Error())
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "not found", err: ErrNotFound, want: "not_found"},
		{name: "wrapped not found", err: fmt.Errorf("lookup: %w", ErrNotFound), want: "not_found"},
		{name: "already exists", err: ErrAlreadyExists, want: "already_exists"},
		{name: "validation", err: &ValidationError{FieldErrors: map[string]string{"start": "start is required"}}, want: "validation"},
		{name: "unexpected", err: errors.New("disk on fire"), want: "unexpected"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ErrorKind(tc.err); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
