package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rentwheels/internal/config"
	"rentwheels/internal/repository"
	"rentwheels/internal/service/booking"
	"rentwheels/internal/service/email"
	"rentwheels/internal/service/imagestore"
	"rentwheels/internal/service/notification"
	"rentwheels/internal/service/realtime"
	"rentwheels/internal/service/vehicle"
)

type Services struct {
	Vehicle      vehicle.Service
	Booking      booking.Service
	Notification notification.Service
	ImageStore   imagestore.Service
}

func NewServices(
	repos *repository.Repositories,
	redisClient *redis.Client,
	minioClient *minio.Client,
	cfg *config.Config,
	log *zap.Logger,
) *Services {
	publisher := realtime.NewRedisPublisher(redisClient)
	emailSender := email.NewSender(cfg)

	notifSvc := notification.NewService(repos.Notification, publisher, log)

	return &Services{
		Vehicle:      vehicle.NewService(repos.Vehicle, repos.User, notifSvc, emailSender, cfg, log),
		Booking:      booking.NewService(repos.Booking, repos.Vehicle, repos.User, notifSvc, log),
		Notification: notifSvc,
		ImageStore:   imagestore.NewService(minioClient, cfg),
	}
}
