package handlers

import (
	"net/http"

	"github.com/dom/studio-api/internal/api/respond"
)

func Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
