package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"train_station/model"
	"train_station/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "store.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&model.User{}, &model.TokenBlacklist{}, &model.Station{}, &model.Route{},
		&model.TrainType{}, &model.Train{}, &model.Crew{}, &model.Journey{},
		&model.Order{}, &model.Ticket{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

// fixture is one journey New York -> Los Angeles on a 2 x 10 train, with
// two regular users and an administrator.
type fixture struct {
	store   *Store
	ctx     context.Context
	alice   model.User
	bob     model.User
	admin   model.User
	source  *model.Station
	route   *model.Route
	train   *model.Train
	journey *model.Journey
}

func (f *fixture) scope(u model.User) model.Scope {
	return model.Scope{UserID: u.ID, IsAdmin: u.IsStaff}
}

var departure = time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: newTestStore(t), ctx: context.Background()}
	f.alice = f.user(t, "alice@example.com", false)
	f.bob = f.user(t, "bob@example.com", false)
	f.admin = f.user(t, "admin@example.com", true)

	var err error
	f.source, err = f.store.CreateStation(f.ctx, &model.StationInput{
		Name: utils.Ptr("New York"), Latitude: utils.Ptr(40.7128), Longitude: utils.Ptr(-74.0060),
	})
	must(t, err)
	dest, err := f.store.CreateStation(f.ctx, &model.StationInput{
		Name: utils.Ptr("Los Angeles"), Latitude: utils.Ptr(34.0522), Longitude: utils.Ptr(-118.2437),
	})
	must(t, err)
	f.route, err = f.store.CreateRoute(f.ctx, &model.RouteInput{Source: &f.source.ID, Destination: &dest.ID})
	must(t, err)
	trainType, err := f.store.CreateTrainType(f.ctx, &model.TrainTypeInput{Name: utils.Ptr("Express")})
	must(t, err)
	f.train, err = f.store.CreateTrain(f.ctx, &model.TrainInput{
		Name: utils.Ptr("Hyperion"), CargoNum: utils.Ptr(2), PlacesInCargo: utils.Ptr(10), TrainType: &trainType.ID,
	}, nil)
	must(t, err)
	f.journey, err = f.store.CreateJourney(f.ctx, &model.JourneyInput{
		Route: &f.route.ID, Train: &f.train.ID,
		DepartureTime: utils.Ptr(departure), ArrivalTime: utils.Ptr(departure.Add(5 * time.Hour)),
	})
	must(t, err)
	return f
}

func (f *fixture) user(t *testing.T, email string, staff bool) model.User {
	t.Helper()
	u := model.User{Email: email, Password: "x", IsStaff: staff, IsActive: true}
	must(t, f.store.CreateUser(f.ctx, &u))
	return u
}

func (f *fixture) order(t *testing.T, owner model.User) *model.Order {
	t.Helper()
	order, _, err := f.store.CreateOrder(f.ctx, f.scope(owner), &model.OrderInput{})
	must(t, err)
	return order
}

func (f *fixture) ticketInput(order *model.Order, cargo, seat int) *model.TicketInput {
	return &model.TicketInput{Cargo: &cargo, Seat: &seat, Journey: &f.journey.ID, Order: &order.ID}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListStationsPaging(t *testing.T) {
	f := newFixture(t)

	all, total, err := f.store.ListStations(f.ctx, model.Pagination{}, "")
	must(t, err)
	if len(all) != 2 || total != 2 {
		t.Fatalf("expected 2 stations, got %d (total %d)", len(all), total)
	}

	page, total, err := f.store.ListStations(f.ctx, model.Pagination{Limit: utils.Ptr(1), Page: utils.Ptr(2)}, "")
	must(t, err)
	if len(page) != 1 || total != 2 || page[0].Name != "Los Angeles" {
		t.Errorf("unexpected page %+v total %d", page, total)
	}

	filtered, _, err := f.store.ListStations(f.ctx, model.Pagination{}, "YORK")
	must(t, err)
	if len(filtered) != 1 || filtered[0].ID != f.source.ID {
		t.Errorf("name filter returned %+v", filtered)
	}
}

func TestUpdateStationKeepsUnsentFields(t *testing.T) {
	f := newFixture(t)

	updated, err := f.store.UpdateStation(f.ctx, f.source.ID, &model.StationInput{Name: utils.Ptr("NYC Penn")})
	must(t, err)
	if updated.Name != "NYC Penn" || updated.Latitude != 40.7128 || updated.Longitude != -74.0060 {
		t.Errorf("unexpected station %+v", updated)
	}

	if _, err := f.store.UpdateStation(f.ctx, 999, &model.StationInput{Name: utils.Ptr("x")}); err == nil {
		t.Error("expected not found for missing station")
	}
}
