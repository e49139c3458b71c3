package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"syndic/internal/auth"
	"syndic/internal/dashboard"
	"syndic/internal/logs"
	"syndic/internal/models"
	"syndic/internal/profile"
	"syndic/internal/repo"
	"syndic/internal/verify"
	"syndic/internal/weather"
)

// API holds the handler dependencies. One instance serves the whole REST
// surface; RegisterRoutes wires it onto the router.
type API struct {
	creds       *repo.CredentialStore
	tenants     *repo.TenantStore
	owners      *repo.OwnerStore
	employees   *repo.EmployeeStore
	admins      *repo.AdminStore
	rooms       *repo.RoomStore
	maintenance *repo.MaintenanceStore
	activity    *repo.ActivityStore
	stats       *repo.DashboardStore

	auth       *auth.Service
	profiles   *profile.Service
	verifier   *verify.Service
	dashboards *dashboard.Service
	weather    *weather.Client

	frontendURL string
	startedAt   time.Time
}

type Deps struct {
	Creds       *repo.CredentialStore
	Tenants     *repo.TenantStore
	Owners      *repo.OwnerStore
	Employees   *repo.EmployeeStore
	Admins      *repo.AdminStore
	Rooms       *repo.RoomStore
	Maintenance *repo.MaintenanceStore
	Activity    *repo.ActivityStore
	Stats       *repo.DashboardStore

	Auth       *auth.Service
	Profiles   *profile.Service
	Verifier   *verify.Service
	Dashboards *dashboard.Service
	Weather    *weather.Client

	FrontendURL string
}

func New(d Deps) *API {
	return &API{
		creds:       d.Creds,
		tenants:     d.Tenants,
		owners:      d.Owners,
		employees:   d.Employees,
		admins:      d.Admins,
		rooms:       d.Rooms,
		maintenance: d.Maintenance,
		activity:    d.Activity,
		stats:       d.Stats,
		auth:        d.Auth,
		profiles:    d.Profiles,
		verifier:    d.Verifier,
		dashboards:  d.Dashboards,
		weather:     d.Weather,
		frontendURL: d.FrontendURL,
		startedAt:   time.Now(),
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// resolveCredential maps an external user id ("t-42") to its login record and
// writes the legacy 404 body when absent. Returns nil if the response has
// been written.
func (a *API) resolveCredential(ctx context.Context, w http.ResponseWriter, userID string) *models.Credential {
	cred, err := a.creds.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		models.WriteError(w, http.StatusNotFound, "Utilisateur non trouvé dans la table auth")
		return nil
	}
	if err != nil {
		a.serverError(w, err)
		return nil
	}
	return cred
}

func (a *API) serverError(w http.ResponseWriter, err error) {
	logs.Logger.Errorf("api: %v", err)
	models.WriteError(w, http.StatusInternalServerError, "Erreur serveur")
}

// externalID normalizes a client-supplied user id: the front end sends either
// the full "t-42" form or the bare profile number.
func externalID(role models.Role, userID string) string {
	if strings.HasPrefix(userID, role.Letter()+"-") {
		return userID
	}
	return role.Letter() + "-" + userID
}

// flexInt accepts both a JSON number and a numeric string; the legacy front
// end sends form values as strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

func (f *flexInt) intPtr() *int {
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
