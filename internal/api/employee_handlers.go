package api

import (
	"net/http"

	"syndic/internal/models"
)

func (a *API) handleEmployeeDetails(w http.ResponseWriter, r *http.Request) {
	employees, err := a.employees.List(r.Context())
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, employees)
}

func (a *API) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := decode(r, &req); err != nil || req.UserID == "" {
		models.WriteError(w, http.StatusBadRequest, "Missing userId in request body")
		return
	}
	cred := a.resolveCredential(r.Context(), w, externalID(models.RoleEmployee, req.UserID))
	if cred == nil {
		return
	}
	if err := a.employees.Delete(r.Context(), cred.ProfileID); err != nil {
		a.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
