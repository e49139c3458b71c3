package api

import (
	"errors"
	"net/http"

	"syndic/internal/models"
	"syndic/internal/repo"
)

func (a *API) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	payload, err := a.dashboards.Admin(r.Context())
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, payload)
}

func (a *API) handleOwnerDashboard(w http.ResponseWriter, r *http.Request) {
	cred, ok := a.dashboardCredential(w, r, models.RoleOwner)
	if !ok {
		return
	}
	payload, err := a.dashboards.Owner(r.Context(), cred.ProfileID)
	if errors.Is(err, repo.ErrNotFound) {
		models.WriteError(w, http.StatusNotFound, "Propriétaire non trouvé")
		return
	}
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, payload)
}

func (a *API) handleEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	cred, ok := a.dashboardCredential(w, r, models.RoleEmployee)
	if !ok {
		return
	}
	payload, err := a.dashboards.Employee(r.Context(), cred.ProfileID)
	if errors.Is(err, repo.ErrNotFound) {
		models.WriteError(w, http.StatusNotFound, "Employé non trouvé")
		return
	}
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, payload)
}

func (a *API) handleTenantDashboard(w http.ResponseWriter, r *http.Request) {
	cred, ok := a.dashboardCredential(w, r, models.RoleTenant)
	if !ok {
		return
	}
	payload, err := a.dashboards.Tenant(r.Context(), cred.ProfileID)
	if errors.Is(err, repo.ErrNotFound) {
		models.WriteError(w, http.StatusNotFound, "Locataire non trouvé")
		return
	}
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, payload)
}

// dashboardCredential reads the {userId} body and resolves the login record,
// normalizing bare profile numbers with the role prefix.
func (a *API) dashboardCredential(w http.ResponseWriter, r *http.Request, role models.Role) (*models.Credential, bool) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := decode(r, &req); err != nil || req.UserID == "" {
		models.WriteError(w, http.StatusBadRequest, "Missing userId in request body")
		return nil, false
	}
	cred := a.resolveCredential(r.Context(), w, externalID(role, req.UserID))
	if cred == nil {
		return nil, false
	}
	return cred, true
}
