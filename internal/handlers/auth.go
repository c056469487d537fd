package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/otlink-il/otlink-backend/internal/database"
	"github.com/otlink-il/otlink-backend/internal/models"
	"github.com/otlink-il/otlink-backend/internal/search"
	"github.com/otlink-il/otlink-backend/internal/services"
	"github.com/otlink-il/otlink-backend/pkg/utils"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

type AuthResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	User    map[string]interface{} `json:"user,omitempty"`
	Token   string                 `json:"token,omitempty"`
}

// extractBearerToken pulls the session token out of an Authorization header.
func extractBearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// authenticatedUser validates the request's session and loads the account.
// Returns nil when the request is not authenticated.
func authenticatedUser(r *http.Request) *models.User {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return nil
	}
	userID, ok, err := services.ValidateSession(token)
	if err != nil || !ok {
		return nil
	}
	user, err := services.GetUserByID(userID)
	if err != nil {
		return nil
	}
	return user
}

func userPayload(user *models.User) map[string]interface{} {
	payload := map[string]interface{}{
		"id":         user.ID.String(),
		"name":       user.Name,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	}
	if user.Role != "" {
		payload["role"] = user.Role
	}
	if user.OTProfileID != "" {
		payload["ot_profile_id"] = user.OTProfileID
	}
	return payload
}

// Register handles account creation. The role stays unset until the user
// completes role selection after their first sign-in.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	if len(req.Password) < 8 {
		writeJSONError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	if !emailRegex.MatchString(req.Email) {
		writeJSONError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	existing, err := services.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("[POST /api/auth/register] %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if existing != nil {
		writeJSONError(w, http.StatusConflict, "An account with this email already exists")
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user, err := services.CreateUser(req.Name, req.Email, passwordHash)
	if err != nil {
		log.Printf("[POST /api/auth/register] %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(AuthResponse{
		Success: true,
		Message: "Account created successfully",
		User:    userPayload(user),
	})
}

// Signin verifies credentials and issues a Redis-backed session token.
func Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := services.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("[POST /api/auth/signin] %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	valid, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		writeJSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := services.CreateSession(user.ID)
	if err != nil {
		log.Printf("[POST /api/auth/signin] %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AuthResponse{
		Success: true,
		Message: "Signed in successfully",
		User:    userPayload(user),
		Token:   token,
	})
}

// GetMe returns the authenticated account.
func GetMe(w http.ResponseWriter, r *http.Request) {
	user := authenticatedUser(r)
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AuthResponse{Success: true, User: userPayload(user)})
}

// Signout invalidates the current session.
func Signout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token != "" {
		services.InvalidateSession(token)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AuthResponse{Success: true, Message: "Signed out"})
}

// SetRole assigns the account role once. Choosing "ot" creates a draft,
// inactive profile that becomes searchable only after the OT fills in their
// city on the dashboard.
func SetRole(w http.ResponseWriter, r *http.Request) {
	user := authenticatedUser(r)
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Role != models.RoleOT && req.Role != models.RolePatient {
		writeJSONError(w, http.StatusBadRequest, "Invalid role")
		return
	}
	if user.Role != "" {
		writeJSONError(w, http.StatusConflict, "Role already assigned")
		return
	}

	otProfileID := ""
	if req.Role == models.RoleOT {
		profileID, err := createDraftProfile(user)
		if err != nil {
			log.Printf("[POST /api/auth/set-role] %v", err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to create profile")
			return
		}
		otProfileID = profileID
	}

	if err := services.SetUserRole(user.ID, req.Role, otProfileID); err != nil {
		log.Printf("[POST /api/auth/set-role] %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to assign role")
		return
	}

	response := map[string]interface{}{"success": true, "role": req.Role}
	if otProfileID != "" {
		response["ot_profile_id"] = otProfileID
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// createDraftProfile inserts an inactive OT profile linked to the account.
// The slug is derived from the account name with a user-ID suffix and never
// changes afterwards.
func createDraftProfile(user *models.User) (string, error) {
	idStr := strings.ReplaceAll(user.ID.String(), "-", "")
	slug := utils.Slugify(user.Name, idStr[len(idStr)-4:])

	now := time.Now()
	profile := models.OTProfile{
		Slug:        slug,
		DisplayName: models.MultilingualText{He: user.Name, Ar: user.Name, En: user.Name},
		Bio:         models.MultilingualText{},
		Languages:   []string{"he"},
		Location: models.GeoLocation{
			Type:        "Point",
			Coordinates: []float64{34.7818, 32.0853},
		},
		Specialisations:     []string{},
		SessionTypes:        []string{},
		InsuranceAccepted:   []string{},
		ContactEmail:        user.Email,
		SubscriptionTier:    models.TierFree,
		IsAcceptingPatients: true,
		IsActive:            false,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.DB.Collection(search.ProfileCollection).InsertOne(ctx, profile)
	if err != nil {
		return "", err
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", mongo.ErrNilDocument
	}
	return oid.Hex(), nil
}
