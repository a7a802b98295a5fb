package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusConfirmed, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusReady, OrderStatusDelivered, true},

		// No skipping steps, no moving backwards.
		{OrderStatusPending, OrderStatusPreparing, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusReady, OrderStatusConfirmed, false},
		{OrderStatusConfirmed, OrderStatusConfirmed, false},

		// Cancellation is open until the order reaches a terminal state.
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusPreparing, OrderStatusCancelled, true},
		{OrderStatusReady, OrderStatusCancelled, true},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},

		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		{OrderStatusPending, OrderStatus("teleported"), false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	t.Parallel()

	for _, status := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		if !status.IsTerminal() {
			t.Errorf("expected %s to be terminal", status)
		}
	}
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady} {
		if status.IsTerminal() {
			t.Errorf("expected %s to be active", status)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseOrderStatus("preparing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != OrderStatusPreparing {
		t.Fatalf("expected preparing, got %s", status)
	}

	for _, raw := range []string{"", "Pending", "done", "teleported"} {
		if _, err := ParseOrderStatus(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestParseDeliveryType(t *testing.T) {
	t.Parallel()

	dt, err := ParseDeliveryType("delivery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dt != DeliveryTypeDelivery {
		t.Fatalf("expected delivery, got %s", dt)
	}

	for _, raw := range []string{"", "Pickup", "shipping"} {
		if _, err := ParseDeliveryType(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}
