package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// ListTrips returns the trips of ?month=YYYY-MM
func ListTrips(c *gin.Context) {
	trips, err := handlerServices.TripService.ListTrips(c.Request.Context(), currentActor(c), c.Query("month"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, trips)
}

// SaveTrip creates a trip, or updates it when the body carries an id
func SaveTrip(c *gin.Context) {
	var request models.TripRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.SaveTrip(c.Request.Context(), currentActor(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, trip)
}

// CompleteTrip marks a trip completed
func CompleteTrip(c *gin.Context) {
	trip, err := handlerServices.TripService.CompleteTrip(c.Request.Context(), currentActor(c), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, trip)
}

// DeleteTrip removes a trip
func DeleteTrip(c *gin.Context) {
	if err := handlerServices.TripService.DeleteTrip(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"success": true})
}

// ListTripTemplates returns the trip templates
func ListTripTemplates(c *gin.Context) {
	templates, err := handlerServices.TripService.ListTemplates(c.Request.Context(), currentActor(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, templates)
}

// CreateTripTemplate adds a trip template
func CreateTripTemplate(c *gin.Context) {
	var request models.TripTemplateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	template, err := handlerServices.TripService.CreateTemplate(c.Request.Context(), currentActor(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, template)
}

// DeleteTripTemplate removes a trip template
func DeleteTripTemplate(c *gin.Context) {
	if err := handlerServices.TripService.DeleteTemplate(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"success": true})
}
