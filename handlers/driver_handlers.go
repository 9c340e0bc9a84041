package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// ListDrivers returns the roster. ?active=true hides soft deleted drivers.
func ListDrivers(c *gin.Context) {
	drivers, err := handlerServices.DriverService.ListDrivers(c.Request.Context(), currentActor(c), c.Query("active") == "true")
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, drivers)
}

// CreateDriver adds a driver
func CreateDriver(c *gin.Context) {
	var request models.DriverRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	driver, err := handlerServices.DriverService.CreateDriver(c.Request.Context(), currentActor(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, driver)
}

// UpdateDriver changes a driver
func UpdateDriver(c *gin.Context) {
	var request models.DriverRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	driver, err := handlerServices.DriverService.UpdateDriver(c.Request.Context(), currentActor(c), c.Param("id"), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, driver)
}

// DeleteDriver soft deletes a driver
func DeleteDriver(c *gin.Context) {
	if err := handlerServices.DriverService.CloseDriver(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"success": true})
}
