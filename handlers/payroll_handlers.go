package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fadhlanhapp/fleetpay-backend/logger"
	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// PreviewPayroll computes the payroll sheet of :month
func PreviewPayroll(c *gin.Context) {
	sheet, err := handlerServices.PayrollService.Preview(c.Request.Context(), currentActor(c), c.Param("month"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, sheet)
}

// ClosePayroll freezes the payroll of :month
func ClosePayroll(c *gin.Context) {
	var request models.ClosePayrollRequest
	// The body is optional; without it every driver keeps its default payment type
	if err := c.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	sheet, err := handlerServices.PayrollService.Close(c.Request.Context(), currentActor(c), c.Param("month"), request.PaymentTypes)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, sheet)
}

// PayrollHistory lists the stored payroll records of :month
func PayrollHistory(c *gin.Context) {
	records, err := handlerServices.PayrollService.History(c.Request.Context(), currentActor(c), c.Param("month"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, records)
}

// ExportPayroll downloads the payroll of :month as an Excel workbook
func ExportPayroll(c *gin.Context) {
	excelFile, filename, err := handlerServices.PayrollService.Export(c.Request.Context(), currentActor(c), c.Param("month"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer excelFile.Close()

	// Set headers for file download
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := excelFile.Write(c.Writer); err != nil {
		logger.FromGin(c).Error("failed to write payroll workbook", zap.Error(err))
		_ = c.Error(err)
	}
}
