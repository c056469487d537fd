package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/otlink-il/otlink-backend/internal/config"
	"github.com/otlink-il/otlink-backend/internal/services"
)

var cloudinaryService *services.CloudinaryService

func InitCloudinaryService(cfg *config.Config) error {
	service, err := services.NewCloudinaryService(
		cfg.CloudinaryName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// UploadPhoto handles profile photo uploads to Cloudinary. Requires an
// authenticated session; only image content types are accepted.
func UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if cloudinaryService == nil {
		writeJSONError(w, http.StatusInternalServerError, "Photo uploads are not available")
		return
	}

	if authenticatedUser(r) == nil {
		writeJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	// Parse multipart form (max 5MB)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		writeJSONError(w, http.StatusBadRequest, "Only image uploads are allowed")
		return
	}

	url, err := cloudinaryService.UploadImageFromHeader(r.Context(), fileHeader, "otlink/profiles")
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to upload photo")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UploadResponse{
		Success: true,
		Message: "Photo uploaded successfully",
		URL:     url,
	})
}
