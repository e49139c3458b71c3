package api

import (
	"net/http"

	"syndic/internal/logs"
	"syndic/internal/models"
	"syndic/internal/repo"
)

type createOwnerRequest struct {
	Name            string   `json:"name"`
	Age             *flexInt `json:"age"`
	RoomNo          *flexInt `json:"roomno"`
	Password        string   `json:"password"`
	AggrementStatus string   `json:"aggrementStatus"`
	DOB             string   `json:"dob"`
	Email           *string  `json:"email"`
}

func (a *API) handleCreateOwner(w http.ResponseWriter, r *http.Request) {
	var req createOwnerRequest
	if err := decode(r, &req); err != nil {
		models.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "All fields are required"})
		return
	}
	if req.Name == "" || req.Age == nil || req.RoomNo == nil || req.Password == "" ||
		req.AggrementStatus == "" || req.DOB == "" {
		models.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "All fields are required"})
		return
	}

	res, err := a.owners.Create(r.Context(), repo.CreateOwnerInput{
		Name:            req.Name,
		Age:             int(*req.Age),
		RoomNo:          int(*req.RoomNo),
		Password:        req.Password,
		AggrementStatus: req.AggrementStatus,
		DOB:             req.DOB,
		Email:           req.Email,
	})
	if err != nil {
		a.serverError(w, err)
		return
	}

	if req.Email != nil && *req.Email != "" {
		if _, err := a.verifier.Issue(r.Context(), models.RoleOwner, res.OwnerID); err != nil {
			logs.Logger.Warnf("api: verification mail for owner %d: %v", res.OwnerID, err)
		}
	}

	models.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  "Owner created successfully",
		"owner_id": res.OwnerID,
		"user_id":  res.UserID,
	})
}

func (a *API) handleOwnerDetails(w http.ResponseWriter, r *http.Request) {
	owners, err := a.owners.List(r.Context())
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, owners)
}

func (a *API) handleDeleteOwner(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := decode(r, &req); err != nil || req.UserID == "" {
		models.WriteError(w, http.StatusBadRequest, "Missing userId in request body")
		return
	}
	cred := a.resolveCredential(r.Context(), w, externalID(models.RoleOwner, req.UserID))
	if cred == nil {
		return
	}
	if err := a.owners.Delete(r.Context(), cred.ProfileID); err != nil {
		a.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (a *API) handleOwnerRoomDetails(w http.ResponseWriter, r *http.Request) {
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
	rooms, err := a.owners.Rooms(r.Context(), cred.ProfileID)
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, rooms)
}

func (a *API) handleOwnerTenantDetails(w http.ResponseWriter, r *http.Request) {
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
	tenants, err := a.tenants.OfOwner(r.Context(), cred.ProfileID)
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, tenants)
}
