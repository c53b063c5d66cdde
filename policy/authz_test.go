package policy

import (
	"context"
	"testing"
)

func TestAllow(t *testing.T) {
	ctx := context.Background()
	authz, err := New(ctx)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name     string
		req      Request
		expected bool
	}{
		{"anonymous read", Request{Method: "GET", Resource: "stations"}, false},
		{"user reads stations", Request{Method: "GET", Resource: "stations", UserID: 7}, true},
		{"user creates station", Request{Method: "POST", Resource: "stations", UserID: 7}, false},
		{"user deletes train", Request{Method: "DELETE", Resource: "trains", UserID: 7}, false},
		{"user creates order", Request{Method: "POST", Resource: "orders", UserID: 7}, true},
		{"user updates ticket", Request{Method: "PATCH", Resource: "tickets", UserID: 7}, true},
		{"anonymous order", Request{Method: "POST", Resource: "orders"}, false},
		{"staff creates station", Request{Method: "POST", Resource: "stations", UserID: 1, IsStaff: true}, true},
		{"staff deletes journey", Request{Method: "DELETE", Resource: "journeys", UserID: 1, IsStaff: true}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := authz.Allow(ctx, tc.req)
			if err != nil {
				t.Fatalf("Allow: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Allow(%+v) = %v, expected %v", tc.req, got, tc.expected)
			}
		})
	}
}
