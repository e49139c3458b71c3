package api

import (
	"errors"
	"net/http"

	"syndic/internal/models"
	"syndic/internal/repo"
)

func (a *API) handleBookSlot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomNo *flexInt `json:"roomNo"`
		SlotNo *flexInt `json:"slotNo"`
	}
	if err := decode(r, &req); err != nil || req.RoomNo == nil || req.SlotNo == nil {
		models.WriteError(w, http.StatusBadRequest, "Missing roomNo or slotNo in request body")
		return
	}
	err := a.rooms.BookSlot(r.Context(), int(*req.RoomNo), int(*req.SlotNo))
	if errors.Is(err, repo.ErrNotFound) {
		models.WriteError(w, http.StatusNotFound, "Chambre non trouvée")
		return
	}
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteMessage(w, http.StatusOK, "Place de parking réservée avec succès")
}

func (a *API) handleViewParking(w http.ResponseWriter, r *http.Request) {
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
	slot, err := a.tenants.Parking(r.Context(), cred.ProfileID)
	if errors.Is(err, repo.ErrNotFound) {
		models.WriteError(w, http.StatusNotFound, "Chambre non trouvée")
		return
	}
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]any{"parking_slot": slot})
}

func (a *API) handleAvailableParkingSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := a.rooms.AvailableParkingSlots(r.Context())
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, slots)
}

func (a *API) handleAvailableRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := a.rooms.AvailableRooms(r.Context())
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, rooms)
}

func (a *API) handleOccupiedRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := a.rooms.OccupiedRooms(r.Context())
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, rooms)
}

func (a *API) handleAvailableBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := a.rooms.Blocks(r.Context())
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, blocks)
}
