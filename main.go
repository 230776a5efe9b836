package main

import (
	api "campusbuddy-backend/cmd/api"
	adminusecase "campusbuddy-backend/internal/admin/usecase"
	authrepo "campusbuddy-backend/internal/auth/repository"
	authusecase "campusbuddy-backend/internal/auth/usecase"
	eventrepo "campusbuddy-backend/internal/events/repository"
	eventusecase "campusbuddy-backend/internal/events/usecase"
	marketrepo "campusbuddy-backend/internal/marketplace/repository"
	marketusecase "campusbuddy-backend/internal/marketplace/usecase"
	qarepo "campusbuddy-backend/internal/qa/repository"
	qausecase "campusbuddy-backend/internal/qa/usecase"
	studyrepo "campusbuddy-backend/internal/studyhub/repository"
	studyusecase "campusbuddy-backend/internal/studyhub/usecase"
	"campusbuddy-backend/pkg/config"
	"campusbuddy-backend/pkg/database"
	"campusbuddy-backend/pkg/logger"
	"campusbuddy-backend/pkg/ratelimit"
	"campusbuddy-backend/pkg/upload"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	mongo, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer mongo.Close()
	db := mongo.DB()

	// Login throttling runs on Redis when configured, otherwise off.
	var limiter ratelimit.Limiter = ratelimit.Noop{}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = ratelimit.NewRedisLimiter(client, "login", cfg.LoginMaxAttempts, cfg.LoginWindow)
		log.WithField("addr", cfg.RedisAddr).Info("login rate limiting enabled")
	}

	files, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.WithError(err).Fatal("failed to prepare upload directory")
	}

	userRepo := authrepo.NewUserRepository(db, log)
	eventRepo := eventrepo.NewEventRepository(db, log)
	listingRepo := marketrepo.NewListingRepository(db, log)
	accommodationRepo := marketrepo.NewAccommodationRepository(db, log)
	materialRepo := studyrepo.NewMaterialRepository(db, log)
	questionRepo := qarepo.NewQuestionRepository(db, log)
	answerRepo := qarepo.NewAnswerRepository(db, log)

	authUc := authusecase.NewAuthUsecase(userRepo, limiter, cfg, log)
	eventUc := eventusecase.NewEventUsecase(eventRepo)
	marketUc := marketusecase.NewMarketplaceUsecase(listingRepo, accommodationRepo)
	materialUc := studyusecase.NewMaterialUsecase(materialRepo, files)
	qaUc := qausecase.NewQAUsecase(questionRepo, answerRepo, log)
	adminUc := adminusecase.NewAdminUsecase(userRepo, eventRepo, log)

	handler := api.NewHandler(authUc, eventUc, marketUc, materialUc, qaUc, adminUc, files, cfg, log)

	log.WithField("port", cfg.Port).Info("server starting")
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
