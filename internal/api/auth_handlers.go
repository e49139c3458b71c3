package api

import (
	"errors"
	"net/http"

	"syndic/internal/auth"
	"syndic/internal/models"
	"syndic/internal/repo"
)

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Access   string      `json:"access"`
	User     models.Role `json:"user"`
	UserType models.Role `json:"userType,omitempty"`
	Username string      `json:"username,omitempty"`
	AdminID  *uint       `json:"adminId,omitempty"`
	Token    string      `json:"token,omitempty"`
}

func (a *API) handleAuth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decode(r, &req); err != nil || req.Username == "" || req.Password == "" {
		models.WriteError(w, http.StatusBadRequest, "Nom d'utilisateur et mot de passe requis")
		return
	}

	res, err := a.auth.Authenticate(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrEmailNotVerified) {
		models.WriteError(w, http.StatusForbidden, "Veuillez vérifier votre adresse e-mail avant de vous connecter")
		return
	}
	// Only the admin row lookup can surface ErrNotFound here; an unknown
	// username already came back as a denial.
	if errors.Is(err, repo.ErrNotFound) {
		models.WriteError(w, http.StatusNotFound, "Admin non trouvé dans la table block_admin")
		return
	}
	if err != nil {
		a.serverError(w, err)
		return
	}

	if res.Access != "granted" {
		models.WriteJSON(w, http.StatusOK, authResponse{Access: res.Access, User: res.Role})
		return
	}
	models.WriteJSON(w, http.StatusOK, authResponse{
		Access:   res.Access,
		User:     res.Role,
		UserType: res.Role,
		Username: req.Username,
		AdminID:  res.AdminID,
		Token:    res.Token,
	})
}
