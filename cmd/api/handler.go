package api

import (
	adminusecase "campusbuddy-backend/internal/admin/usecase"
	authusecase "campusbuddy-backend/internal/auth/usecase"
	eventusecase "campusbuddy-backend/internal/events/usecase"
	marketusecase "campusbuddy-backend/internal/marketplace/usecase"
	qausecase "campusbuddy-backend/internal/qa/usecase"
	studyusecase "campusbuddy-backend/internal/studyhub/usecase"
	"campusbuddy-backend/pkg/config"
	"campusbuddy-backend/pkg/logger"
	"campusbuddy-backend/pkg/upload"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler aggregates the usecases and serves the HTTP API.
type Handler struct {
	authUsecase     authusecase.AuthUsecase
	eventUsecase    eventusecase.EventUsecase
	marketUsecase   marketusecase.MarketplaceUsecase
	materialUsecase studyusecase.MaterialUsecase
	qaUsecase       qausecase.QAUsecase
	adminUsecase    adminusecase.AdminUsecase
	files           *upload.Store
	config          *config.Config
	log             *logrus.Logger
}

func NewHandler(
	authUc authusecase.AuthUsecase,
	eventUc eventusecase.EventUsecase,
	marketUc marketusecase.MarketplaceUsecase,
	materialUc studyusecase.MaterialUsecase,
	qaUc qausecase.QAUsecase,
	adminUc adminusecase.AdminUsecase,
	files *upload.Store,
	cfg *config.Config,
	log *logrus.Logger,
) *Handler {
	return &Handler{
		authUsecase:     authUc,
		eventUsecase:    eventUc,
		marketUsecase:   marketUc,
		materialUsecase: materialUc,
		qaUsecase:       qaUc,
		adminUsecase:    adminUc,
		files:           files,
		config:          cfg,
		log:             log,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(h.log))

	// Explicit cap on multipart memory; the upload store enforces the
	// per-kind size limits on top of this.
	r.MaxMultipartMemory = 32 << 20

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With, x-access-token")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)

	return r.Run(addr)
}
