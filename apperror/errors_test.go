package apperror

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"translated", gorm.ErrDuplicatedKey, true},
		{"wrapped translated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"sqlite", errors.New("constraint failed: UNIQUE constraint failed: tickets.journey_id, tickets.seat (2067)"), true},
		{"postgres", errors.New(`ERROR: duplicate key value violates unique constraint "idx_ticket_journey_seat" (SQLSTATE 23505)`), true},
		{"mysql", errors.New("Error 1062 (23000): Duplicate entry '1-3' for key 'idx_ticket_journey_seat'"), true},
		{"foreign key", errors.New("FOREIGN KEY constraint failed"), false},
		{"not found", gorm.ErrRecordNotFound, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err); got != tc.expected {
				t.Errorf("IsUniqueViolation(%v) = %v, expected %v", tc.err, got, tc.expected)
			}
		})
	}
}

func TestValidationErrorAddKeepsFirstMessage(t *testing.T) {
	ve := Field("seat", "The seat is already taken")
	ve.Add("seat", "other").Add("cargo", "bad cargo")

	if ve.Fields["seat"] != "The seat is already taken" {
		t.Errorf("seat message overwritten: %q", ve.Fields["seat"])
	}
	if ve.Fields["cargo"] != "bad cargo" {
		t.Errorf("cargo message missing: %v", ve.Fields)
	}
	if ve.Error() != "validation failed: cargo: bad cargo; seat: The seat is already taken" {
		t.Errorf("unexpected message %q", ve.Error())
	}
}

func TestAsValidationUnwraps(t *testing.T) {
	err := fmt.Errorf("create ticket: %w", Field("seat", "taken"))
	ve, ok := AsValidation(err)
	if !ok || ve.Fields["seat"] != "taken" {
		t.Fatalf("AsValidation did not unwrap: %v %v", ve, ok)
	}
	if _, ok := AsValidation(ErrNotFound); ok {
		t.Error("ErrNotFound should not be a validation error")
	}
	if FromLookup(gorm.ErrRecordNotFound) != ErrNotFound {
		t.Error("FromLookup should map record not found")
	}
}
