package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// ListAdvances returns the advances of ?month=YYYY-MM
func ListAdvances(c *gin.Context) {
	advances, err := handlerServices.LedgerService.ListAdvances(c.Request.Context(), currentActor(c), c.Query("month"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, advances)
}

// CreateAdvance records an advance
func CreateAdvance(c *gin.Context) {
	var request models.AdvanceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	advance, err := handlerServices.LedgerService.CreateAdvance(c.Request.Context(), currentActor(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, advance)
}

// DeleteAdvance removes an advance
func DeleteAdvance(c *gin.Context) {
	if err := handlerServices.LedgerService.DeleteAdvance(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"success": true})
}

// ListDeductions returns the deductions of ?month=YYYY-MM
func ListDeductions(c *gin.Context) {
	deductions, err := handlerServices.LedgerService.ListDeductions(c.Request.Context(), currentActor(c), c.Query("month"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, deductions)
}

// CreateDeduction records a deduction
func CreateDeduction(c *gin.Context) {
	var request models.DeductionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	deduction, err := handlerServices.LedgerService.CreateDeduction(c.Request.Context(), currentActor(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, deduction)
}

// DeleteDeduction removes a deduction
func DeleteDeduction(c *gin.Context) {
	if err := handlerServices.LedgerService.DeleteDeduction(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"success": true})
}
