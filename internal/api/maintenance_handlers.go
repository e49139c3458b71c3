package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"syndic/internal/logs"
	"syndic/internal/models"
	"syndic/internal/repo"
)

type maintenanceListRequest struct {
	UserID   string   `json:"userId"`
	UserType string   `json:"userType"`
	Page     *flexInt `json:"page"`
	All      bool     `json:"all"`
}

func (a *API) handleMaintenanceRequests(w http.ResponseWriter, r *http.Request) {
	var req maintenanceListRequest
	if err := decode(r, &req); err != nil || req.UserID == "" || req.UserType == "" {
		models.WriteError(w, http.StatusBadRequest, "Missing userId or userType in request body")
		return
	}
	role, ok := models.ParseRole(req.UserType)
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "Invalid userType. Must be 'tenant', 'owner', 'admin', or 'employee'")
		return
	}
	cred := a.resolveCredential(r.Context(), w, req.UserID)
	if cred == nil {
		return
	}

	page := 1
	if req.Page != nil {
		page = int(*req.Page)
	}
	requests, err := a.maintenance.ListFor(r.Context(), cred.ID, cred.ProfileID, role,
		repo.ListOptions{Page: page, All: req.All})
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, requests)
}

type submitMaintenanceRequest struct {
	UserID      string   `json:"userId"`
	UserType    string   `json:"userType"`
	RoomNo      *flexInt `json:"room_no"`
	Description string   `json:"description"`
}

func (a *API) handleSubmitMaintenanceRequest(w http.ResponseWriter, r *http.Request) {
	var req submitMaintenanceRequest
	if err := decode(r, &req); err != nil ||
		req.UserID == "" || req.UserType == "" || req.RoomNo == nil || req.Description == "" {
		models.WriteError(w, http.StatusBadRequest, "Missing required fields: userId, userType, room_no, description")
		return
	}
	role, ok := models.ParseRole(req.UserType)
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "Invalid userType")
		return
	}
	cred := a.resolveCredential(r.Context(), w, req.UserID)
	if cred == nil {
		return
	}

	created, err := a.maintenance.Create(r.Context(), cred.ID, role, int(*req.RoomNo), req.Description)
	if err != nil {
		a.serverError(w, err)
		return
	}
	if err := a.activity.Notify(r.Context(), cred.ID, "Votre demande de maintenance a été enregistrée"); err != nil {
		logs.Logger.Warnf("api: notification for %s: %v", cred.UserID, err)
	}
	models.WriteJSON(w, http.StatusOK, map[string]any{
		"message":   "Maintenance request submitted successfully",
		"requestId": created.ID,
	})
}

func (a *API) handleMaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, "Invalid request id")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := decode(r, &req); err != nil || req.Status == "" {
		models.WriteError(w, http.StatusBadRequest, "Missing status in request body")
		return
	}

	err = a.maintenance.UpdateStatus(r.Context(), uint(id), req.Status)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		models.WriteError(w, http.StatusNotFound, "Maintenance request not found")
	case errors.Is(err, repo.ErrBadTransition):
		models.WriteError(w, http.StatusBadRequest, "Invalid status transition")
	case err != nil:
		a.serverError(w, err)
	default:
		models.WriteMessage(w, http.StatusOK, "Maintenance request updated successfully")
	}
}
