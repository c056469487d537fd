package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/otlink-il/otlink-backend/internal/database"
	"github.com/otlink-il/otlink-backend/internal/models"
	"github.com/otlink-il/otlink-backend/internal/search"
)

// profileUpdateFields is the whitelist of fields an OT may edit on their
// own profile. Slug, tier, featured flag, view counter, and active state
// are all managed elsewhere.
var profileUpdateFields = []string{
	"bio",
	"displayName",
	"photo",
	"specialisations",
	"languages",
	"sessionTypes",
	"insuranceAccepted",
	"feeRange",
	"contactPhone",
	"contactEmail",
	"isAcceptingPatients",
	"location",
	"mohRegistrationNumber",
}

// requireOTProfile authenticates the request and resolves the caller's
// linked profile ID. Writes the error response itself on failure.
func requireOTProfile(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	user := authenticatedUser(r)
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "Authentication required")
		return primitive.NilObjectID, false
	}
	if user.OTProfileID == "" {
		writeJSONError(w, http.StatusForbidden, "No OT profile linked to this account")
		return primitive.NilObjectID, false
	}
	profileID, err := primitive.ObjectIDFromHex(user.OTProfileID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Invalid profile reference")
		return primitive.NilObjectID, false
	}
	return profileID, true
}

// GetMyProfile returns the caller's own profile, active or not.
func GetMyProfile(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireOTProfile(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var profile models.OTProfile
	err := database.DB.Collection(search.ProfileCollection).
		FindOne(ctx, bson.M{"_id": profileID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeJSONError(w, http.StatusNotFound, "Profile not found")
			return
		}
		log.Printf("[GET /api/dashboard/profile] %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// UpdateMyProfile applies a partial update to the caller's profile. The
// profile auto-activates the first time a city is provided — the minimum
// needed to appear in search. Deactivation afterwards is an admin action.
func UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireOTProfile(w, r)
	if !ok {
		return
	}

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := bson.M{}
	for _, key := range profileUpdateFields {
		if value, present := body[key]; present {
			update[key] = value
		}
	}
	if len(update) == 0 {
		writeJSONError(w, http.StatusBadRequest, "No valid fields to update")
		return
	}

	if city := updatedCity(update); city != "" {
		update["isActive"] = true
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := database.DB.Collection(search.ProfileCollection).
		UpdateOne(ctx, bson.M{"_id": profileID}, bson.M{"$set": update})
	if err != nil {
		log.Printf("[PATCH /api/dashboard/profile] %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if result.MatchedCount == 0 {
		writeJSONError(w, http.StatusNotFound, "Profile not found")
		return
	}

	// Edits should show up in search promptly
	searchCache.Invalidate(ctx)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// updatedCity extracts a non-blank location.city from the update body.
func updatedCity(update bson.M) string {
	location, ok := update["location"].(map[string]interface{})
	if !ok {
		return ""
	}
	city, _ := location["city"].(string)
	return strings.TrimSpace(city)
}
