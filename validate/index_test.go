package validate

import (
	"net/http/httptest"
	"testing"

	"train_station/model"
	"train_station/utils"

	"github.com/gofiber/fiber/v2"
)

func TestStructKeysByJSONName(t *testing.T) {
	journey := uint(1)
	input := model.OrderInput{
		Tickets: []model.OrderTicketInput{
			{Cargo: utils.Ptr(1), Seat: utils.Ptr(2), Journey: &journey},
			{Cargo: utils.Ptr(0), Journey: &journey},
		},
	}

	fields := Struct(&input, false)
	if len(fields) != 2 {
		t.Fatalf("expected two field errors, got %v", fields)
	}
	if _, ok := fields["tickets[1].seat"]; !ok {
		t.Errorf("missing tickets[1].seat in %v", fields)
	}
	if _, ok := fields["tickets[1].cargo"]; !ok {
		t.Errorf("missing tickets[1].cargo in %v", fields)
	}
}

func TestStructPartialOnlyChecksSentFields(t *testing.T) {
	tests := []struct {
		name   string
		input  model.StationInput
		fields []string
	}{
		{"nothing sent", model.StationInput{}, nil},
		{"valid latitude", model.StationInput{Latitude: utils.Ptr(45.0)}, nil},
		{"bad latitude", model.StationInput{Latitude: utils.Ptr(91.0)}, []string{"latitude"}},
		{"bad longitude", model.StationInput{Name: utils.Ptr("Kyiv"), Longitude: utils.Ptr(-181.0)}, []string{"longitude"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Struct(&tc.input, true)
			if len(got) != len(tc.fields) {
				t.Fatalf("got %v, expected keys %v", got, tc.fields)
			}
			for _, f := range tc.fields {
				if _, ok := got[f]; !ok {
					t.Errorf("missing %q in %v", f, got)
				}
			}
		})
	}

	if got := Struct(&model.StationInput{}, false); len(got) != 3 {
		t.Errorf("full validation should require every field, got %v", got)
	}
}

func TestGetById(t *testing.T) {
	app := fiber.New()
	app.Get("/:id", GetById("id"), func(c *fiber.Ctx) error {
		return c.JSON(c.Locals("id"))
	})

	tests := []struct {
		path   string
		status int
	}{
		{"/7", fiber.StatusOK},
		{"/0", fiber.StatusNotFound},
		{"/-1", fiber.StatusNotFound},
		{"/abc", fiber.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tc.path, nil), -1)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tc.status {
				t.Errorf("status = %d, expected %d", resp.StatusCode, tc.status)
			}
		})
	}
}
