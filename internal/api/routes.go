package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"syndic/internal/models"
)

// RegisterRoutes wires the REST surface. Routes that carry an identity go
// through authMW (bearer-token validation); login, verification links and
// the weather proxy stay public.
func (a *API) RegisterRoutes(r *mux.Router, authMW mux.MiddlewareFunc) {
	r.HandleFunc("/", handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/auth", a.handleAuth).Methods(http.MethodPost)
	r.HandleFunc("/verify-email", a.handleVerifyEmail).Methods(http.MethodGet)
	r.HandleFunc("/resend-verification", a.handleResendVerification).Methods(http.MethodPost)
	r.HandleFunc("/weather", a.handleWeather).Methods(http.MethodGet)

	p := r.PathPrefix("/").Subrouter()
	if authMW != nil {
		p.Use(authMW)
	}

	p.HandleFunc("/createtenant", a.handleCreateTenant).Methods(http.MethodPost)
	p.HandleFunc("/createowner", a.handleCreateOwner).Methods(http.MethodPost)
	p.HandleFunc("/tenantdetails", a.handleTenantDetails).Methods(http.MethodGet)
	p.HandleFunc("/ownerdetails", a.handleOwnerDetails).Methods(http.MethodGet)
	p.HandleFunc("/employee", a.handleEmployeeDetails).Methods(http.MethodGet)
	p.HandleFunc("/deletetenant", a.handleDeleteTenant).Methods(http.MethodPost)
	p.HandleFunc("/deleteowner", a.handleDeleteOwner).Methods(http.MethodPost)
	p.HandleFunc("/deleteemployee", a.handleDeleteEmployee).Methods(http.MethodPost)

	p.HandleFunc("/raisingcomplaint", a.handleRaiseComplaint).Methods(http.MethodPost)
	p.HandleFunc("/viewcomplaints", a.handleViewComplaints).Methods(http.MethodGet)
	p.HandleFunc("/ownercomplaints", a.handleOwnerComplaints).Methods(http.MethodPost)
	p.HandleFunc("/deletecomplaint", a.handleDeleteComplaint).Methods(http.MethodPost)

	p.HandleFunc("/bookslot", a.handleBookSlot).Methods(http.MethodPost)
	p.HandleFunc("/viewparking", a.handleViewParking).Methods(http.MethodPost)
	p.HandleFunc("/available-parking-slots", a.handleAvailableParkingSlots).Methods(http.MethodGet)
	p.HandleFunc("/available-rooms", a.handleAvailableRooms).Methods(http.MethodGet)
	p.HandleFunc("/occupied-rooms", a.handleOccupiedRooms).Methods(http.MethodGet)
	p.HandleFunc("/available-blocks", a.handleAvailableBlocks).Methods(http.MethodGet)

	p.HandleFunc("/ownerroomdetails", a.handleOwnerRoomDetails).Methods(http.MethodPost)
	p.HandleFunc("/ownertenantdetails", a.handleOwnerTenantDetails).Methods(http.MethodPost)
	p.HandleFunc("/paymaintanance", a.handlePayMaintenance).Methods(http.MethodPost)
	p.HandleFunc("/paymentstatus", a.handlePaymentStatus).Methods(http.MethodPost)

	p.HandleFunc("/recentactivities", a.handleRecentActivities).Methods(http.MethodPost)
	p.HandleFunc("/notifications", a.handleNotifications).Methods(http.MethodPost)

	p.HandleFunc("/maintenancerequests", a.handleMaintenanceRequests).Methods(http.MethodPost)
	p.HandleFunc("/submitmaintenancerequest", a.handleSubmitMaintenanceRequest).Methods(http.MethodPost)
	p.HandleFunc("/maintenancerequests/{id:[0-9]+}/status", a.handleMaintenanceStatus).Methods(http.MethodPut)

	p.HandleFunc("/updateprofile/{userType}", a.handleUpdateProfile).Methods(http.MethodPut)

	p.HandleFunc("/stats-history", a.handleStatsHistory).Methods(http.MethodGet)
	p.HandleFunc("/systemstatus", a.handleSystemStatus).Methods(http.MethodGet)
	p.HandleFunc("/quickstats", a.handleQuickStats).Methods(http.MethodGet)
	p.HandleFunc("/systemalerts", a.handleSystemAlerts).Methods(http.MethodGet)
	p.HandleFunc("/block_admin", a.handleBlockAdmin).Methods(http.MethodPost)
	p.HandleFunc("/block", a.handleBlockByRoom).Methods(http.MethodPost)

	p.HandleFunc("/dashboard/admin", a.handleAdminDashboard).Methods(http.MethodPost)
	p.HandleFunc("/dashboard/owner", a.handleOwnerDashboard).Methods(http.MethodPost)
	p.HandleFunc("/dashboard/employee", a.handleEmployeeDashboard).Methods(http.MethodPost)
	p.HandleFunc("/dashboard/tenant", a.handleTenantDashboard).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(handleNotFound)
}

func handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Only accepting GET and POST requests!"))
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	models.WriteError(w, http.StatusNotFound, "Route not found: "+r.URL.RequestURI())
}
