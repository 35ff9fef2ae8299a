package events

import (
	"context"
	"errors"
	"testing"
)

type recorder struct {
	got []OrderEvent
	err error
}

func (r *recorder) Publish(_ context.Context, e OrderEvent) error {
	r.got = append(r.got, e)
	return r.err
}
func (r *recorder) Close() error { return nil }

func TestRoutingKey(t *testing.T) {
	tests := map[string]string{
		"Pending":          "order.status.pending",
		"Out for delivery": "order.status.out_for_delivery",
		"Ready for pickup": "order.status.ready_for_pickup",
	}
	for status, want := range tests {
		t.Run(status, func(t *testing.T) {
			if got := (OrderEvent{Status: status}).RoutingKey(); got != want {
				t.Fatalf("RoutingKey() = %q, want %q", got, want)
			}
		})
	}
}

func TestFanoutDeliversToAllAndJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	a, b := &recorder{}, &recorder{err: boom}
	f := Fanout{a, b, Nop{}}

	err := f.Publish(context.Background(), OrderEvent{OrderID: 7, Status: "Delivered"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to contain boom, got %v", err)
	}
	if len(a.got) != 1 || len(b.got) != 1 {
		t.Fatalf("every publisher should see the event: a=%d b=%d", len(a.got), len(b.got))
	}
	if a.got[0].OrderID != 7 {
		t.Fatalf("unexpected event %+v", a.got[0])
	}
}
