package main

import (
	bookingsrepository "hotelbooking/internal/bookings/repository"
	"hotelbooking/internal/rooms/handler"
	"hotelbooking/internal/rooms/repository"
	"hotelbooking/internal/rooms/service"
	"hotelbooking/internal/rooms/validator"
	"hotelbooking/pkg/app"
	"hotelbooking/pkg/config"
)

const ServiceName = "rooms"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Rooms service")

	roomService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewRoomHandler(roomService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.RoomService {
	roomValidator := validator.NewRoomValidator(cfg.Log)
	roomRepo := repository.NewMongoRoomRepository(cfg)
	bookingRepo := bookingsrepository.NewMongoBookingRepository(cfg)

	roomService := service.NewRoomService(
		roomRepo,
		bookingRepo,
		roomValidator,
		cfg,
	)

	cfg.Log.Info("Room service initialized", "database", cfg.MongoDatabaseName)
	return roomService
}
