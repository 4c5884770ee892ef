package main

import (
	bookingsrepository "hotelbooking/internal/bookings/repository"
	"hotelbooking/internal/hotels/handler"
	"hotelbooking/internal/hotels/repository"
	"hotelbooking/internal/hotels/service"
	"hotelbooking/internal/hotels/validator"
	roomsrepository "hotelbooking/internal/rooms/repository"
	"hotelbooking/pkg/app"
	"hotelbooking/pkg/config"
)

const ServiceName = "hotels"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Hotels service")

	hotelService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewHotelHandler(hotelService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.HotelService {
	hotelValidator := validator.NewHotelValidator(cfg.Log)
	hotelRepo := repository.NewMongoHotelRepository(cfg)
	roomRepo := roomsrepository.NewMongoRoomRepository(cfg)
	bookingRepo := bookingsrepository.NewMongoBookingRepository(cfg)

	hotelService := service.NewHotelService(
		hotelRepo,
		roomRepo,
		bookingRepo,
		hotelValidator,
		cfg,
	)

	cfg.Log.Info("Hotel service initialized", "database", cfg.MongoDatabaseName)
	return hotelService
}
