package helper

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestLocalSeatEvents(t *testing.T) {
	events := NewLocalSeatEvents()
	ctx := context.Background()

	ch, cancel, err := events.Subscribe(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	other, cancelOther, _ := events.Subscribe(ctx, 6)
	defer cancelOther()

	events.Publish(ctx, SeatEvent{Journey: 5, Action: SeatTaken, Cargo: 1, Seat: 3})

	select {
	case payload := <-ch:
		var got SeatEvent
		if err := json.Unmarshal(payload, &got); err != nil {
			t.Fatal(err)
		}
		if got != (SeatEvent{Journey: 5, Action: SeatTaken, Cargo: 1, Seat: 3}) {
			t.Errorf("unexpected event %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	select {
	case payload := <-other:
		t.Errorf("journey 6 received %s", payload)
	default:
	}

	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Error("channel still open after cancel")
	}
	events.Publish(ctx, SeatEvent{Journey: 5, Action: SeatReleased})
}
