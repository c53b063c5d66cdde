package repository

import (
	"errors"
	"sync"
	"testing"

	"train_station/apperror"
	"train_station/constants"
	"train_station/model"
)

func expectField(t *testing.T, err error, field, message string) {
	t.Helper()
	ve, ok := apperror.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error on %q, got %v", field, err)
	}
	got, ok := ve.Fields[field]
	if !ok {
		t.Fatalf("expected error on %q, got %v", field, ve.Fields)
	}
	if message != "" && got != message {
		t.Errorf("%s: got %q, expected %q", field, got, message)
	}
}

func TestSeatIsUniquePerJourneyRegardlessOfCargo(t *testing.T) {
	f := newFixture(t)
	order := f.order(t, f.alice)

	if _, err := f.store.CreateTicket(f.ctx, f.scope(f.alice), f.ticketInput(order, 1, 3)); err != nil {
		t.Fatalf("first ticket: %v", err)
	}
	_, err := f.store.CreateTicket(f.ctx, f.scope(f.alice), f.ticketInput(order, 2, 3))
	expectField(t, err, "seat", constants.SEAT_TAKEN)

	var count int64
	must(t, f.store.DB().Model(&model.Ticket{}).Count(&count).Error)
	if count != 1 {
		t.Errorf("expected 1 ticket stored, got %d", count)
	}
}

func TestConcurrentSalesOfOneSeat(t *testing.T) {
	f := newFixture(t)
	orders := []*model.Order{f.order(t, f.alice), f.order(t, f.bob)}

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failures  []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order := orders[i%2]
			owner := f.alice
			if i%2 == 1 {
				owner = f.bob
			}
			_, err := f.store.CreateTicket(f.ctx, f.scope(owner), f.ticketInput(order, 1+i%2, 7))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else {
				failures = append(failures, err)
			}
		}(i)
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("expected exactly one sale, got %d", succeeded)
	}
	for _, err := range failures {
		expectField(t, err, "seat", constants.SEAT_TAKEN)
	}
}

func TestUniqueIndexViolationBecomesSeatError(t *testing.T) {
	f := newFixture(t)
	order := f.order(t, f.alice)
	must(t, f.store.DB().Create(&model.Ticket{Cargo: 1, Seat: 4, JourneyID: f.journey.ID, OrderID: order.ID}).Error)

	// skip the existence check and let the index reject the write
	err := writeTicket(f.store.DB(), &model.Ticket{Cargo: 2, Seat: 4, JourneyID: f.journey.ID, OrderID: order.ID}, "")
	expectField(t, err, "seat", constants.SEAT_TAKEN)
}

func TestTicketRangeChecks(t *testing.T) {
	f := newFixture(t)
	order := f.order(t, f.alice)

	tests := []struct {
		name  string
		cargo int
		seat  int
		field string
	}{
		{"cargo above train", 3, 1, "cargo"},
		{"seat above cargo size", 1, 11, "seat"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.store.CreateTicket(f.ctx, f.scope(f.alice), f.ticketInput(order, tc.cargo, tc.seat))
			expectField(t, err, tc.field, "")
		})
	}

	missing := uint(999)
	in := f.ticketInput(order, 1, 1)
	in.Journey = &missing
	_, err := f.store.CreateTicket(f.ctx, f.scope(f.alice), in)
	expectField(t, err, "journey", constants.InvalidPk(999))
}

func TestUpdateTicketMayKeepItsSeat(t *testing.T) {
	f := newFixture(t)
	order := f.order(t, f.alice)
	first, err := f.store.CreateTicket(f.ctx, f.scope(f.alice), f.ticketInput(order, 1, 1))
	must(t, err)
	_, err = f.store.CreateTicket(f.ctx, f.scope(f.alice), f.ticketInput(order, 1, 2))
	must(t, err)

	cargo := 2
	updated, err := f.store.UpdateTicket(f.ctx, f.scope(f.alice), first.ID, &model.TicketInput{Cargo: &cargo})
	must(t, err)
	if updated.Cargo != 2 || updated.Seat != 1 {
		t.Errorf("unexpected ticket %+v", updated)
	}

	seat := 2
	_, err = f.store.UpdateTicket(f.ctx, f.scope(f.alice), first.ID, &model.TicketInput{Seat: &seat})
	expectField(t, err, "seat", constants.SEAT_TAKEN)
}

func TestTicketsAreScopedToOrderOwner(t *testing.T) {
	f := newFixture(t)
	aliceOrder := f.order(t, f.alice)
	ticket, err := f.store.CreateTicket(f.ctx, f.scope(f.alice), f.ticketInput(aliceOrder, 1, 5))
	must(t, err)

	if _, err := f.store.GetTicket(f.ctx, f.scope(f.bob), ticket.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("bob should not see alice's ticket, got %v", err)
	}
	if _, err := f.store.DeleteTicket(f.ctx, f.scope(f.bob), ticket.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("bob should not delete alice's ticket, got %v", err)
	}
	list, _, err := f.store.ListTickets(f.ctx, f.scope(f.bob), model.FilterTicket{})
	must(t, err)
	if len(list) != 0 {
		t.Errorf("bob listed %d tickets", len(list))
	}

	_, err = f.store.CreateTicket(f.ctx, f.scope(f.bob), f.ticketInput(aliceOrder, 1, 6))
	expectField(t, err, "order", constants.InvalidPk(aliceOrder.ID))

	got, err := f.store.GetTicket(f.ctx, f.scope(f.admin), ticket.ID)
	must(t, err)
	if got.Order.User.Email != "alice@example.com" || got.Journey.Route.Source.Name != "New York" {
		t.Errorf("ticket detail not loaded: %+v", got)
	}
}
