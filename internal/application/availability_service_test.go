package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/session-planner/internal/persistence"
)

func TestAvailabilityService_CreateWindow_ValidatesInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input AvailabilityWindowInput
		field string
	}{
		{
			name:  "weekday out of range",
			input: AvailabilityWindowInput{Weekday: 7, Start: "09:00", End: "12:00"},
			field: "weekday",
		},
		{
			name:  "malformed start clock",
			input: AvailabilityWindowInput{Weekday: 1, Start: "9am", End: "12:00"},
			field: "start",
		},
		{
			name:  "malformed end clock",
			input: AvailabilityWindowInput{Weekday: 1, Start: "09:00", End: "25:00"},
			field: "end",
		},
		{
			name:  "end before start",
			input: AvailabilityWindowInput{Weekday: 1, Start: "12:00", End: "09:00"},
			field: "end",
		},
		{
			name:  "zero length window",
			input: AvailabilityWindowInput{Weekday: 1, Start: "09:00", End: "09:00"},
			field: "end",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := NewAvailabilityService(newStubStore(), nil, nil)
			_, err := svc.CreateWindow(context.Background(), tc.input)

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := vErr.FieldErrors[tc.field]; !ok {
				t.Fatalf("expected %s validation error, got %v", tc.field, vErr.FieldErrors)
			}
		})
	}
}

func TestAvailabilityService_CreateWindow_AssignsIdentifier(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := NewAvailabilityService(store, sequentialIDs("window"), nil)

	created, err := svc.CreateWindow(context.Background(), AvailabilityWindowInput{
		Weekday: 1, Start: "09:00", End: "12:00",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if created.ID != "window-1" {
		t.Fatalf("expected generated identifier, got %q", created.ID)
	}
}

func TestAvailabilityService_ListWindows_OrdersByWeekdayThenStart(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	store.windows["w-late"] = persistence.AvailabilityWindow{ID: "w-late", Weekday: 3, Start: "18:00", End: "20:00"}
	store.windows["w-early"] = persistence.AvailabilityWindow{ID: "w-early", Weekday: 3, Start: "07:00", End: "08:00"}
	store.windows["w-monday"] = persistence.AvailabilityWindow{ID: "w-monday", Weekday: 1, Start: "09:00", End: "12:00"}

	svc := NewAvailabilityService(store, nil, nil)

	windows, err := svc.ListWindows(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	got := make([]string, 0, len(windows))
	for _, window := range windows {
		got = append(got, window.ID)
	}
	want := []string{"w-monday", "w-early", "w-late"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestAvailabilityService_UpdateWindow_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewAvailabilityService(newStubStore(), nil, nil)

	_, err := svc.UpdateWindow(context.Background(), "missing", AvailabilityWindowInput{
		Weekday: 1, Start: "09:00", End: "12:00",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAvailabilityService_DeleteWindow_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewAvailabilityService(newStubStore(), nil, nil)

	if err := svc.DeleteWindow(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
