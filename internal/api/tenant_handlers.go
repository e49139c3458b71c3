package api

import (
	"errors"
	"fmt"
	"net/http"

	"syndic/internal/logs"
	"syndic/internal/models"
	"syndic/internal/repo"
)

type createTenantRequest struct {
	Name      string   `json:"name"`
	Age       *flexInt `json:"age"`
	RoomNo    *flexInt `json:"roomno"`
	Password  string   `json:"password"`
	DOB       string   `json:"dob"`
	IDProof   string   `json:"ID"`
	Stat      string   `json:"stat"`
	LeaveDate *string  `json:"leaveDate"`
	Email     *string  `json:"email"`
}

func (a *API) handleCreateTenant(w http.ResponseWriter, r *http.Request) {
	var req createTenantRequest
	if err := decode(r, &req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.Name == "" || req.RoomNo == nil || req.Password == "" || req.DOB == "" ||
		req.IDProof == "" || req.Stat == "" || req.Age == nil {
		models.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	res, err := a.tenants.Create(r.Context(), repo.CreateTenantInput{
		Name:      req.Name,
		Age:       int(*req.Age),
		RoomNo:    int(*req.RoomNo),
		Password:  req.Password,
		DOB:       req.DOB,
		IDProof:   req.IDProof,
		Stat:      req.Stat,
		LeaveDate: req.LeaveDate,
		Email:     req.Email,
	})
	if errors.Is(err, repo.ErrNoOwnerForRoom) {
		models.WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("No owner found for room number %d", int(*req.RoomNo)))
		return
	}
	if err != nil {
		a.serverError(w, err)
		return
	}

	// The verification mail rides its own transaction; a failure here must
	// not undo the account.
	if req.Email != nil && *req.Email != "" {
		if _, err := a.verifier.Issue(r.Context(), models.RoleTenant, res.TenantID); err != nil {
			logs.Logger.Warnf("api: verification mail for tenant %d: %v", res.TenantID, err)
		}
	}

	models.WriteJSON(w, http.StatusOK, map[string]any{
		"message":   "Tenant created successfully",
		"tenant_id": res.TenantID,
		"user_id":   res.UserID,
	})
}

func (a *API) handleTenantDetails(w http.ResponseWriter, r *http.Request) {
	tenants, err := a.tenants.List(r.Context())
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, tenants)
}

func (a *API) handleDeleteTenant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := decode(r, &req); err != nil || req.UserID == "" {
		models.WriteError(w, http.StatusBadRequest, "Missing userId in request body")
		return
	}
	cred := a.resolveCredential(r.Context(), w, externalID(models.RoleTenant, req.UserID))
	if cred == nil {
		return
	}
	if err := a.tenants.Delete(r.Context(), cred.ProfileID); err != nil {
		a.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (a *API) handlePayMaintenance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := decode(r, &req); err != nil || req.ID == "" {
		models.WriteError(w, http.StatusBadRequest, "Missing id in request body")
		return
	}
	cred := a.resolveCredential(r.Context(), w, req.ID)
	if cred == nil {
		return
	}
	if err := a.tenants.PayMaintenance(r.Context(), cred.ProfileID); err != nil {
		a.serverError(w, err)
		return
	}
	if err := a.activity.Append(r.Context(), cred.ID, "Paid maintenance"); err != nil {
		logs.Logger.Warnf("api: activity append failed for %s: %v", cred.UserID, err)
	}
	w.WriteHeader(http.StatusOK)
}

func (a *API) handlePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := decode(r, &req); err != nil || req.UserID == "" {
		models.WriteError(w, http.StatusBadRequest, "Missing userId in request body")
		return
	}
	cred := a.resolveCredential(r.Context(), w, req.UserID)
	if cred == nil {
		return
	}
	status, err := a.tenants.PaymentStatus(r.Context(), cred.ProfileID)
	if errors.Is(err, repo.ErrNotFound) {
		models.WriteError(w, http.StatusNotFound, "Payment status not found for the given user")
		return
	}
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, status)
}
