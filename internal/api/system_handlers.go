package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"syndic/internal/models"
	"syndic/internal/repo"
)

// epoch anchors the uptime percentage, mirroring the formula the ops
// dashboard has always displayed.
var uptimeEpoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func (a *API) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	total := now.Sub(uptimeEpoch).Seconds()
	up := now.Sub(a.startedAt).Seconds()
	pct := 0.0
	if total > 0 {
		pct = (total - up) / total * 100
	}
	if pct > 99.9 {
		pct = 99.9
	}

	activeUsers, err := a.activity.ActiveUsers(r.Context(), now.Add(-24*time.Hour))
	if err != nil {
		a.serverError(w, err)
		return
	}
	alerts, err := a.activity.UnresolvedAlerts(r.Context(), now.Add(-7*24*time.Hour))
	if err != nil {
		a.serverError(w, err)
		return
	}

	models.WriteJSON(w, http.StatusOK, map[string]any{
		"uptime":      fmt.Sprintf("%.1f%%", pct),
		"activeUsers": activeUsers,
		"alerts":      alerts,
	})
}

func (a *API) handleQuickStats(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	logins, err := a.activity.LoginsSince(r.Context(), startOfDay)
	if err != nil {
		a.serverError(w, err)
		return
	}
	complaints, err := a.stats.TotalComplaints(r.Context())
	if err != nil {
		a.serverError(w, err)
		return
	}
	pending, err := a.maintenance.PendingCount(r.Context())
	if err != nil {
		a.serverError(w, err)
		return
	}

	models.WriteJSON(w, http.StatusOK, map[string]any{
		"totalLoginsToday":     logins,
		"totalComplaintsFiled": complaints,
		"pendingRequests":      pending,
	})
}

func (a *API) handleSystemAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := a.activity.UnresolvedAlerts(r.Context(), time.Now().Add(-7*24*time.Hour))
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]any{"alerts": alerts})
}

func (a *API) handleStatsHistory(w http.ResponseWriter, r *http.Request) {
	history, err := a.activity.StatsHistory(r.Context())
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, history)
}

func (a *API) handleBlockAdmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminID *flexInt `json:"admin_id"`
	}
	if err := decode(r, &req); err != nil || req.AdminID == nil {
		models.WriteError(w, http.StatusBadRequest, "Missing admin_id in request body")
		return
	}
	admin, err := a.admins.GetByID(r.Context(), uint(int(*req.AdminID)))
	if errors.Is(err, repo.ErrNotFound) {
		models.WriteError(w, http.StatusNotFound, "Admin not found")
		return
	}
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, admin)
}

func (a *API) handleBlockByRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomNo *flexInt `json:"room_no"`
	}
	if err := decode(r, &req); err != nil || req.RoomNo == nil {
		models.WriteError(w, http.StatusBadRequest, "Missing room_no in request body")
		return
	}
	block, err := a.rooms.BlockByRoomNo(r.Context(), int(*req.RoomNo))
	if errors.Is(err, repo.ErrNotFound) {
		models.WriteError(w, http.StatusNotFound, "Block not found for the given room number")
		return
	}
	if err != nil {
		a.serverError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, block)
}
