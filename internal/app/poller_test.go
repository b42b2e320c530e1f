package app

import (
	"context"
	"testing"
	"time"

	"github.com/five82/crate/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 30 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 30 * time.Second},
		{"negative failures", -1, 30 * time.Second},
		{"one failure", 1, time.Minute},
		{"two failures", 2, 2 * time.Minute},
		{"three failures", 3, 4 * time.Minute},
		{"four failures capped", 4, 5 * time.Minute}, // Would be 8m, capped to 5m
		{"many failures capped", 40, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 100; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeRefresher struct {
	store *state.Store
	fail  string
	calls int
}

func (f *fakeRefresher) Refresh(context.Context) <-chan struct{} {
	f.calls++
	if f.fail != "" {
		f.store.Fail(state.AreaAlbum, f.fail)
	} else {
		f.store.Idle(state.AreaAlbum)
	}
	settled := make(chan struct{})
	close(settled)
	return settled
}

func TestRefresh_ReportsCurrentViewErrors(t *testing.T) {
	store := &state.Store{}
	store.Navigate(state.ViewAlbum)
	r := &fakeRefresher{store: store, fail: "Album not found."}

	err := refresh(context.Background(), store, r)
	if err == nil || err.Error() != "Album not found." {
		t.Fatalf("refresh error = %v, want Album not found.", err)
	}

	r.fail = ""
	if err := refresh(context.Background(), store, r); err != nil {
		t.Fatalf("refresh error = %v, want nil", err)
	}
	if r.calls != 2 {
		t.Fatalf("Refresh calls = %d, want 2", r.calls)
	}
}

func TestRefresh_IgnoresOtherViews(t *testing.T) {
	store := &state.Store{}
	store.Fail(state.AreaSearch, "provider offline")
	store.Navigate(state.ViewAlbum)

	if err := refresh(context.Background(), store, &fakeRefresher{store: store}); err != nil {
		t.Fatalf("refresh error = %v, want nil", err)
	}
}

type stuckRefresher struct{}

func (stuckRefresher) Refresh(context.Context) <-chan struct{} { return make(chan struct{}) }

func TestRefresh_StopsWaitingOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := refresh(ctx, &state.Store{}, stuckRefresher{})
	if err != context.Canceled {
		t.Fatalf("refresh error = %v, want context.Canceled", err)
	}
}
