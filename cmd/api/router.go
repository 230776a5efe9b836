package api

import (
	"net/http"

	admindelivery "campusbuddy-backend/internal/admin/delivery"
	authdelivery "campusbuddy-backend/internal/auth/delivery"
	eventdelivery "campusbuddy-backend/internal/events/delivery"
	marketdelivery "campusbuddy-backend/internal/marketplace/delivery"
	qadelivery "campusbuddy-backend/internal/qa/delivery"
	studydelivery "campusbuddy-backend/internal/studyhub/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authed := authdelivery.Authenticate(h.authUsecase)
	notBlocked := authdelivery.NotBlocked()
	adminOnly := authdelivery.AdminOnly()
	premium := authdelivery.PremiumRequired()

	authHandler := authdelivery.NewAuthHandler(h.authUsecase, h.config)
	eventHandler := eventdelivery.NewEventHandler(h.eventUsecase)
	marketHandler := marketdelivery.NewMarketplaceHandler(h.marketUsecase)
	materialHandler := studydelivery.NewMaterialHandler(h.materialUsecase, h.files)
	qaHandler := qadelivery.NewQAHandler(h.qaUsecase)
	adminHandler := admindelivery.NewAdminHandler(h.adminUsecase)
	uploadHandler := NewUploadHandler(h.files)

	// Uploaded files are public once stored.
	r.Static("/uploads", h.files.Root())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authed, authHandler.Me)
			auth.PUT("/me", authed, notBlocked, authHandler.UpdateMe)
		}

		uploads := api.Group("/uploads")
		uploads.Use(authed, notBlocked)
		{
			uploads.POST("/images", uploadHandler.UploadImage)
		}

		events := api.Group("/events")
		{
			events.GET("", eventHandler.List)
			events.GET("/:id", eventHandler.Get)
			events.POST("", authed, notBlocked, eventHandler.Create)
			events.PUT("/:id", authed, notBlocked, eventHandler.Update)
			events.DELETE("/:id", authed, notBlocked, eventHandler.Delete)
		}

		market := api.Group("/marketplace")
		{
			market.GET("/listings", marketHandler.ListListings)
			market.GET("/listings/:id", marketHandler.GetListing)
			market.POST("/listings", authed, notBlocked, marketHandler.CreateListing)
			market.PUT("/listings/:id", authed, notBlocked, marketHandler.UpdateListing)
			market.PATCH("/listings/:id/status", authed, notBlocked, marketHandler.SetListingStatus)
			market.DELETE("/listings/:id", authed, notBlocked, marketHandler.DeleteListing)

			market.GET("/accommodations", marketHandler.ListAccommodations)
			market.GET("/accommodations/:id", marketHandler.GetAccommodation)
			market.POST("/accommodations", authed, notBlocked, marketHandler.CreateAccommodation)
			market.PUT("/accommodations/:id", authed, notBlocked, marketHandler.UpdateAccommodation)
			market.DELETE("/accommodations/:id", authed, notBlocked, marketHandler.DeleteAccommodation)
		}

		studyhub := api.Group("/studyhub")
		{
			studyhub.GET("/materials", materialHandler.List)
			studyhub.GET("/materials/:id", materialHandler.Get)
			studyhub.POST("/materials/upload", authed, notBlocked, materialHandler.Upload)
			studyhub.POST("/materials", authed, notBlocked, materialHandler.Create)
			studyhub.PUT("/materials/:id", authed, notBlocked, materialHandler.Update)
			studyhub.DELETE("/materials/:id", authed, notBlocked, materialHandler.Delete)
			studyhub.POST("/materials/:id/vote", authed, notBlocked, materialHandler.Vote)
			studyhub.GET("/materials/:id/download", authed, notBlocked, premium, materialHandler.Download)
		}

		qa := api.Group("/qa")
		{
			qa.GET("/questions", qaHandler.ListQuestions)
			qa.GET("/questions/:id", qaHandler.GetQuestion)
			qa.POST("/questions", authed, notBlocked, qaHandler.CreateQuestion)
			qa.PUT("/questions/:id", authed, notBlocked, qaHandler.UpdateQuestion)
			qa.PATCH("/questions/:id/status", authed, notBlocked, qaHandler.SetQuestionStatus)
			qa.DELETE("/questions/:id", authed, notBlocked, qaHandler.DeleteQuestion)
			qa.POST("/questions/:id/vote", authed, notBlocked, qaHandler.VoteQuestion)

			qa.GET("/answers/:id", qaHandler.ListAnswers)
			qa.POST("/answers/:id", authed, notBlocked, qaHandler.CreateAnswer)
			qa.PUT("/answers/:id", authed, notBlocked, qaHandler.UpdateAnswer)
			qa.DELETE("/answers/:id", authed, notBlocked, qaHandler.DeleteAnswer)
			qa.POST("/answers/:id/accept", authed, notBlocked, qaHandler.AcceptAnswer)
			qa.POST("/answers/:id/vote", authed, notBlocked, qaHandler.VoteAnswer)
		}

		admin := api.Group("/admin")
		admin.Use(authed, adminOnly)
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id/block", adminHandler.SetBlocked)
			admin.PATCH("/users/:id/premium", adminHandler.SetPremium)
			admin.PUT("/users/:id/role", adminHandler.SetRole)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			admin.GET("/events", adminHandler.ListEvents)
			admin.DELETE("/events/:id", adminHandler.DeleteEvent)
		}
	}
}
