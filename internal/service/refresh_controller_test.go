package service_test

import (
	"testing"
	"time"

	"github.com/carteira-app/carteira-backend/internal/service"
	"github.com/carteira-app/carteira-backend/internal/testutil"
)

// TestRefreshController tests the global refresh guards.
//
// WHY: Every quote fetch funnels through this controller. The throttle keeps
// rapid UI refreshes from hammering the provider, and the in-flight guard
// serializes concurrent refreshes so the last writer cannot clobber a newer
// result.
func TestRefreshController(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first refresh always begins", func(t *testing.T) {
		now, _ := testutil.FixedClock(start)
		c := service.NewRefreshControllerWithClock(now)

		if !c.TryBegin(false) {
			t.Error("Expected first TryBegin to succeed")
		}
	})

	t.Run("throttles within the window after success", func(t *testing.T) {
		now, advance := testutil.FixedClock(start)
		c := service.NewRefreshControllerWithClock(now)

		if !c.TryBegin(false) {
			t.Fatal("Expected first TryBegin to succeed")
		}
		c.End(true)

		advance(10 * time.Second)
		if c.TryBegin(false) {
			t.Error("Expected TryBegin rejected inside the throttle window")
		}

		advance(25 * time.Second)
		if !c.TryBegin(false) {
			t.Error("Expected TryBegin allowed after the throttle window")
		}
	})

	t.Run("force bypasses the throttle but not the in-flight guard", func(t *testing.T) {
		now, _ := testutil.FixedClock(start)
		c := service.NewRefreshControllerWithClock(now)

		if !c.TryBegin(false) {
			t.Fatal("Expected first TryBegin to succeed")
		}

		// In flight: even forced requests must wait.
		if c.TryBegin(true) {
			t.Error("Expected forced TryBegin rejected while a refresh is in flight")
		}
		c.End(true)

		// Inside the window, but forced.
		if !c.TryBegin(true) {
			t.Error("Expected forced TryBegin to bypass the throttle")
		}
	})

	t.Run("failed refresh does not advance the throttle", func(t *testing.T) {
		now, advance := testutil.FixedClock(start)
		c := service.NewRefreshControllerWithClock(now)

		if !c.TryBegin(false) {
			t.Fatal("Expected first TryBegin to succeed")
		}
		c.End(false)

		advance(time.Second)
		if !c.TryBegin(false) {
			t.Error("Expected retry allowed immediately after a failed refresh")
		}
	})
}
