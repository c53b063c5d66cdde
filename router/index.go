package router

import (
	"strings"

	"train_station/constants"
	"train_station/handler"
	"train_station/middleware"
	"train_station/model"
	"train_station/policy"
	"train_station/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// New builds the fiber application with every route mounted.
func New(h *handler.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: h.Settings.BodyLimit,
		AppName:   "train-station",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: h.Settings.CorsOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Authorization, Accept",
		MaxAge:       600,
	}))
	SetupRoutes(app, h)
	return app
}

type resource struct {
	list, get, create, update, remove fiber.Handler
	body                              fiber.Handler
}

// mount registers list/create on /<name>/ and retrieve/update/delete on
// /<name>/:id/, each behind the access policy for name.
func mount(r fiber.Router, authz *policy.Authorizer, name string, res resource) fiber.Router {
	g := r.Group("/" + name)
	auth := middleware.Authorize(authz, name)
	id := validate.GetById("id")

	g.Get("/", auth, res.list)
	g.Post("/", auth, res.body, res.create)
	g.Get("/:id", auth, id, res.get)
	g.Put("/:id", auth, id, res.body, res.update)
	g.Patch("/:id", auth, id, res.body, res.update)
	g.Delete("/:id", auth, id, res.remove)
	return g
}

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	app.Get("/healthz", handler.Health)
	if media := strings.TrimSuffix(h.Settings.MediaURL, "/"); media != "" {
		app.Static(media, h.Settings.MediaRoot)
	}

	api := app.Group("/api", logger.New())
	protected := middleware.Protected(h.Tokens, h.Store)

	token := api.Group("/token")
	token.Post("/", validate.Body[model.LoginInput](), h.ObtainToken)
	token.Post("/refresh", validate.Body[model.RefreshInput](), h.RefreshToken)
	token.Post("/verify", validate.Body[model.VerifyInput](), h.VerifyToken)

	user := api.Group("/user")
	user.Post("/register", validate.Body[model.RegisterUserInput](), h.Register)
	user.Get("/me", protected, h.Me)
	user.Put("/me", protected, validate.Body[model.UpdateUserInput](), h.UpdateMe)
	user.Patch("/me", protected, validate.Body[model.UpdateUserInput](), h.UpdateMe)

	station := api.Group("/station", protected)

	mount(station, h.Authz, constants.RESOURCE_CREWS, resource{
		list: h.GetCrews, get: h.GetCrewById, create: h.CreateCrew, update: h.UpdateCrew, remove: h.DeleteCrew,
		body: validate.Body[model.CrewInput](),
	})
	mount(station, h.Authz, constants.RESOURCE_STATIONS, resource{
		list: h.GetStations, get: h.GetStationById, create: h.CreateStation, update: h.UpdateStation, remove: h.DeleteStation,
		body: validate.Body[model.StationInput](),
	})
	mount(station, h.Authz, constants.RESOURCE_ROUTES, resource{
		list: h.GetRoutes, get: h.GetRouteById, create: h.CreateRoute, update: h.UpdateRoute, remove: h.DeleteRoute,
		body: validate.Body[model.RouteInput](),
	})
	mount(station, h.Authz, constants.RESOURCE_TRAIN_TYPES, resource{
		list: h.GetTrainTypes, get: h.GetTrainTypeById, create: h.CreateTrainType, update: h.UpdateTrainType, remove: h.DeleteTrainType,
		body: validate.Body[model.TrainTypeInput](),
	})
	mount(station, h.Authz, constants.RESOURCE_TRAINS, resource{
		list: h.GetTrains, get: h.GetTrainById, create: h.CreateTrain, update: h.UpdateTrain, remove: h.DeleteTrain,
		body: validate.Body[model.TrainInput](),
	})
	journeys := mount(station, h.Authz, constants.RESOURCE_JOURNEYS, resource{
		list: h.GetJourneys, get: h.GetJourneyById, create: h.CreateJourney, update: h.UpdateJourney, remove: h.DeleteJourney,
		body: validate.Body[model.JourneyInput](),
	})
	seatsAuth := middleware.Authorize(h.Authz, constants.RESOURCE_JOURNEYS)
	journeys.Get("/:id/seats", seatsAuth, validate.GetById("id"), h.GetJourneySeats)
	journeys.Get("/:id/seats/live", seatsAuth, handler.UpgradeSeatFeed, websocket.New(h.SeatFeed))
	mount(station, h.Authz, constants.RESOURCE_ORDERS, resource{
		list: h.GetOrders, get: h.GetOrderById, create: h.CreateOrder, update: h.UpdateOrder, remove: h.DeleteOrder,
		body: validate.Body[model.OrderInput](),
	})
	mount(station, h.Authz, constants.RESOURCE_TICKETS, resource{
		list: h.GetTickets, get: h.GetTicketById, create: h.CreateTicket, update: h.UpdateTicket, remove: h.DeleteTicket,
		body: validate.Body[model.TicketInput](),
	})
}
