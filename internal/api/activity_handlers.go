package api

import (
	"net/http"

	"syndic/internal/models"
)

type activityFeedRequest struct {
	UserID   string `json:"userId"`
	UserType string `json:"userType"`
}

// feedRole validates the userType the activity/notification feeds accept.
func feedRole(userType string) (models.Role, bool) {
	role, ok := models.ParseRole(userType)
	if !ok || role == models.RoleEmployee {
		return models.RoleUnknown, false
	}
	return role, true
}

func (a *API) handleRecentActivities(w http.ResponseWriter, r *http.Request) {
	var req activityFeedRequest
	if err := decode(r, &req); err != nil || req.UserID == "" || req.UserType == "" {
		models.WriteError(w, http.StatusBadRequest, "Missing userId or userType in request body")
		return
	}
	role, ok := feedRole(req.UserType)
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "Invalid userType. Must be 'tenant', 'owner', or 'admin'")
		return
	}
	cred := a.resolveCredential(r.Context(), w, req.UserID)
	if cred == nil {
		return
	}
	activities, err := a.activity.RecentFor(r.Context(), cred.ID, role)
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, activities)
}

func (a *API) handleNotifications(w http.ResponseWriter, r *http.Request) {
	var req activityFeedRequest
	if err := decode(r, &req); err != nil || req.UserID == "" || req.UserType == "" {
		models.WriteError(w, http.StatusBadRequest, "Missing userId or userType in request body")
		return
	}
	role, ok := feedRole(req.UserType)
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "Invalid userType. Must be 'tenant', 'owner', or 'admin'")
		return
	}
	cred := a.resolveCredential(r.Context(), w, req.UserID)
	if cred == nil {
		return
	}
	notifications, err := a.activity.RecentNotifications(r.Context(), cred.ID, role)
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, notifications)
}
