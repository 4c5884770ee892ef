package main

import (
	"hotelbooking/internal/bookings/handler"
	"hotelbooking/internal/bookings/repository"
	"hotelbooking/internal/bookings/service"
	"hotelbooking/internal/bookings/validator"
	"hotelbooking/internal/notifications"
	roomsrepository "hotelbooking/internal/rooms/repository"
	"hotelbooking/pkg/app"
	"hotelbooking/pkg/config"
	"hotelbooking/pkg/kafka"
	kafka_config "hotelbooking/pkg/kafka/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	bookingService := initServices(cfg)
	dispatcher := initDispatcher(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, dispatcher, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewRoomLockRepository(cfg)
	roomRepo := roomsrepository.NewMongoRoomRepository(cfg)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		roomRepo,
		bookingValidator,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

// initDispatcher wires the kafka producer for booking events. Without a
// reachable broker configuration the service still runs; events then only
// land in the log.
func initDispatcher(cfg *config.Config) notifications.Dispatcher {
	kafkaCfg := kafka_config.Load()

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Warn("Kafka producer unavailable, falling back to log dispatcher", "error", err)
		return notifications.NewLogDispatcher(cfg.Log)
	}

	cfg.Log.Info("Kafka dispatcher initialized", "topic", cfg.BookingEventsTopic)
	return notifications.NewKafkaDispatcher(producer, ServiceName, cfg.Log)
}
