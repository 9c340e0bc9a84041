package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

// Dashboard returns the summary figures of the workspace
func Dashboard(c *gin.Context) {
	stats, err := handlerServices.WorkspaceService.Dashboard(c.Request.Context(), currentActor(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, stats)
}

// ListWorkspaces returns the workspaces visible to the caller
func ListWorkspaces(c *gin.Context) {
	workspaces, err := handlerServices.WorkspaceService.ListWorkspaces(c.Request.Context(), currentActor(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, workspaces)
}

// CreateWorkspace adds a workspace
func CreateWorkspace(c *gin.Context) {
	var request models.WorkspaceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	workspace, err := handlerServices.WorkspaceService.CreateWorkspace(c.Request.Context(), currentActor(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, workspace)
}

// UpdateWorkspace changes a workspace
func UpdateWorkspace(c *gin.Context) {
	var request models.WorkspaceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	workspace, err := handlerServices.WorkspaceService.UpdateWorkspace(c.Request.Context(), currentActor(c), c.Param("id"), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, workspace)
}

// DeleteWorkspace removes a workspace
func DeleteWorkspace(c *gin.Context) {
	if err := handlerServices.WorkspaceService.DeleteWorkspace(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"success": true})
}

// GetSettings returns the workspace settings
func GetSettings(c *gin.Context) {
	settings, err := handlerServices.WorkspaceService.GetSettings(c.Request.Context(), currentActor(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, settings)
}

// UpdateSettings changes the workspace settings
func UpdateSettings(c *gin.Context) {
	var request models.SettingsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	settings, err := handlerServices.WorkspaceService.UpdateSettings(c.Request.Context(), currentActor(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, settings)
}

// ListManagers returns the managers of the account
func ListManagers(c *gin.Context) {
	managers, err := handlerServices.WorkspaceService.ListManagers(c.Request.Context(), currentActor(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, managers)
}

// SaveManager creates or updates a manager
func SaveManager(c *gin.Context) {
	var request models.ManagerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	manager, err := handlerServices.WorkspaceService.SaveManager(c.Request.Context(), currentActor(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, manager)
}

// DeleteManager removes a manager
func DeleteManager(c *gin.Context) {
	if err := handlerServices.WorkspaceService.DeleteManager(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"success": true})
}

// SetAccountLock sets or clears an account's lock flag
func SetAccountLock(c *gin.Context) {
	var request models.AccountLockRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	account, err := handlerServices.WorkspaceService.SetLocked(c.Request.Context(), c.Param("id"), *request.Locked)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, account)
}
