package server

import (
	"net/http"
	"time"

	handler "auction-tracker/services/auction/handler"
	"auction-tracker/utils"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application; clock supplies
// the instant used for open, close and bid requests.
func SetupRouter(manager handler.AuctionManagerInterface, stats handler.StatsProvider, clock func() time.Time) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestIDMiddleware)     // correlate log lines per request
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(manager, clock)
	notificationHandler := handler.NewNotificationHandler(stats)

	router.GET("/health", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"time": clock().UTC().Format(time.RFC3339)}, "ok")
	})

	participants := router.Group("/participants")
	{
		participants.POST("", auctionHandler.CreateParticipantHandler)
		participants.GET("", auctionHandler.ListParticipantsHandler)
		participants.GET("/:id", auctionHandler.GetParticipantHandler)
		participants.DELETE("/:id", auctionHandler.DeleteParticipantHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.GET("/:id", auctionHandler.GetAuctionHandler)
		auctions.PATCH("/:id", auctionHandler.EditAuctionHandler)
		auctions.DELETE("/:id", auctionHandler.DeleteAuctionHandler)
		auctions.POST("/:id/open", auctionHandler.OpenAuctionHandler)
		auctions.POST("/:id/close", auctionHandler.CloseAuctionHandler)
		auctions.POST("/:id/bids", auctionHandler.PlaceBidHandler)
		auctions.GET("/:id/bids", auctionHandler.GetBidsHandler)
		auctions.GET("/:id/winner", auctionHandler.GetWinnerHandler)
	}

	notifications := router.Group("/notifications")
	{
		notifications.GET("/stats", notificationHandler.StatsHandler)
	}

	return router
}
