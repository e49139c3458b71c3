package api

import (
	"net/http"

	"syndic/internal/models"
)

type raiseComplaintRequest struct {
	Desc    string   `json:"desc"`
	BlockNo *flexInt `json:"blockno"`
	RoomNo  *flexInt `json:"roomno"`
}

func (a *API) handleRaiseComplaint(w http.ResponseWriter, r *http.Request) {
	var req raiseComplaintRequest
	if err := decode(r, &req); err != nil || req.Desc == "" || req.BlockNo == nil || req.RoomNo == nil {
		models.WriteError(w, http.StatusBadRequest, "Missing required fields: desc, blockno, roomno")
		return
	}
	if err := a.rooms.RegisterComplaint(r.Context(), int(*req.BlockNo), int(*req.RoomNo), req.Desc); err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteMessage(w, http.StatusOK, "Complaint registered successfully")
}

func (a *API) handleViewComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := a.rooms.OpenComplaints(r.Context())
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, complaints)
}

func (a *API) handleOwnerComplaints(w http.ResponseWriter, r *http.Request) {
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
	complaints, err := a.rooms.ComplaintsOfOwner(r.Context(), cred.ProfileID)
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, complaints)
}

func (a *API) handleDeleteComplaint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomNo *flexInt `json:"room_no"`
	}
	if err := decode(r, &req); err != nil || req.RoomNo == nil {
		models.WriteError(w, http.StatusBadRequest, "Missing room_no in request body")
		return
	}
	if err := a.rooms.ResolveComplaint(r.Context(), int(*req.RoomNo)); err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteMessage(w, http.StatusOK, "Complaint resolved successfully")
}
