package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"syndic/internal/models"
	"syndic/internal/profile"
	"syndic/internal/repo"
	"syndic/internal/verify"
)

type updateProfileRequest struct {
	UserID   string   `json:"userId"`
	Name     *string  `json:"name"`
	Email    *string  `json:"email"`
	Phone    *string  `json:"phone"`
	Password *string  `json:"password"`
	BlockNo  *flexInt `json:"block_no"`
	RoomNo   *flexInt `json:"room_no"`
	Age      *flexInt `json:"age"`
	DOB      *string  `json:"dob"`
}

func (a *API) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	role, ok := models.ParseRole(mux.Vars(r)["userType"])
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "Invalid userType")
		return
	}
	var req updateProfileRequest
	if err := decode(r, &req); err != nil || req.UserID == "" {
		models.WriteError(w, http.StatusBadRequest, "Missing userId in request body")
		return
	}

	msg, err := a.profiles.Update(r.Context(), role, externalID(role, req.UserID), profile.Fields{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		BlockNo:  req.BlockNo.intPtr(),
		RoomNo:   req.RoomNo.intPtr(),
		Age:      req.Age.intPtr(),
		DOB:      req.DOB,
	})

	var verr *profile.ValidationError
	switch {
	case errors.As(err, &verr):
		models.WriteError(w, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, repo.ErrNotFound):
		models.WriteError(w, http.StatusNotFound, "Utilisateur non trouvé dans la table auth")
	case errors.Is(err, repo.ErrInvalidRole):
		models.WriteError(w, http.StatusBadRequest, "Invalid userType")
	case err != nil:
		models.WriteError(w, http.StatusInternalServerError, "Erreur lors de la mise à jour du profil")
	default:
		models.WriteMessage(w, http.StatusOK, msg)
	}
}

// handleVerifyEmail consumes the token from the mail link and redirects to
// the front end with the outcome in the query string.
func (a *API) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("userId")
	token := q.Get("token")
	role, ok := models.ParseRole(q.Get("userType"))
	if userID == "" || token == "" || !ok {
		a.redirectVerified(w, r, "error", "Lien de vérification invalide")
		return
	}

	status, err := a.verifier.Consume(r.Context(), userID, role, token)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		a.redirectVerified(w, r, "error", "Utilisateur non trouvé")
	case errors.Is(err, repo.ErrInvalidRole):
		a.redirectVerified(w, r, "error", "Lien de vérification invalide")
	case err != nil:
		a.redirectVerified(w, r, "error", "Erreur serveur")
	case status == verify.StatusVerified:
		a.redirectVerified(w, r, "message", "Adresse e-mail vérifiée avec succès")
	case status == verify.StatusAlreadyVerified:
		a.redirectVerified(w, r, "message", "Adresse e-mail déjà vérifiée")
	default:
		a.redirectVerified(w, r, "error", "Lien de vérification invalide ou expiré")
	}
}

func (a *API) redirectVerified(w http.ResponseWriter, r *http.Request, key, msg string) {
	target := a.frontendURL + "/email-verified?" + key + "=" + url.QueryEscape(msg)
	http.Redirect(w, r, target, http.StatusFound)
}

func (a *API) handleResendVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"userId"`
		UserType string `json:"userType"`
	}
	if err := decode(r, &req); err != nil || req.UserID == "" || req.UserType == "" {
		models.WriteError(w, http.StatusBadRequest, "Missing userId or userType in request body")
		return
	}
	role, ok := models.ParseRole(req.UserType)
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "Invalid userType")
		return
	}

	err := a.verifier.Resend(r.Context(), req.UserID, role)
	switch {
	case errors.Is(err, repo.ErrAlreadyVerified):
		models.WriteMessage(w, http.StatusOK, "Adresse e-mail déjà vérifiée")
	case errors.Is(err, repo.ErrNoEmail):
		models.WriteError(w, http.StatusNotFound, "Aucune adresse e-mail enregistrée")
	case errors.Is(err, repo.ErrNotFound):
		models.WriteError(w, http.StatusNotFound, "Utilisateur non trouvé dans la table auth")
	case errors.Is(err, repo.ErrInvalidRole):
		models.WriteError(w, http.StatusBadRequest, "Invalid userType")
	case err != nil:
		a.serverError(w, err)
	default:
		models.WriteMessage(w, http.StatusOK, "E-mail de vérification envoyé")
	}
}
