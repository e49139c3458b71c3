package api

import (
	"errors"
	"net/http"

	"syndic/internal/models"
	"syndic/internal/weather"
)

func (a *API) handleWeather(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		city = "Paris"
	}

	data, err := a.weather.Current(r.Context(), city)
	var apiErr *weather.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound:
		models.WriteJSON(w, http.StatusNotFound, map[string]string{
			"error": "City not found", "details": apiErr.Message,
		})
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized:
		models.WriteJSON(w, http.StatusUnauthorized, map[string]string{
			"error": "Invalid API key", "details": apiErr.Message,
		})
	case err != nil:
		models.WriteError(w, http.StatusInternalServerError, "Error fetching weather data")
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
