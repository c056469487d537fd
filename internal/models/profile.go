package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Specialisation values — closed vocabulary, stored as raw tokens.
const (
	SpecPaediatrics       = "paediatrics"
	SpecNeurological      = "neurological"
	SpecMentalHealth      = "mental-health"
	SpecHandTherapy       = "hand-therapy"
	SpecGeriatrics        = "geriatrics"
	SpecSensoryProcessing = "sensory-processing"
	SpecVocational        = "vocational"
	SpecErgonomic         = "ergonomic"
)

// Session type values
const (
	SessionInPerson   = "in-person"
	SessionTelehealth = "telehealth"
	SessionHomeVisit  = "home-visit"
)

// Insurance values (Israeli HMOs + private)
const (
	InsuranceClalit   = "clalit"
	InsuranceMaccabi  = "maccabi"
	InsuranceMeuhedet = "meuhedet"
	InsuranceLeumit   = "leumit"
	InsurancePrivate  = "private"
)

// Subscription tiers
const (
	TierFree    = "free"
	TierPremium = "premium"
)

// MultilingualText holds a value per supported locale. "he" is always
// populated; "ar" and "en" may be empty (render-time fallback to "he").
type MultilingualText struct {
	He string `bson:"he" json:"he"`
	Ar string `bson:"ar" json:"ar"`
	En string `bson:"en" json:"en"`
}

// GeoLocation stores the profile's city plus GeoJSON coordinates.
// Coordinates are [lng, lat]; they are stored but not used in ranking.
type GeoLocation struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
	City        string    `bson:"city" json:"city"`
	Address     string    `bson:"address" json:"address"`
}

// FeeRange is the advertised per-session fee range in ILS.
type FeeRange struct {
	Min      int    `bson:"min" json:"min"`
	Max      int    `bson:"max" json:"max"`
	Currency string `bson:"currency" json:"currency"`
}

// OTProfile is the public-facing record of an occupational therapist.
// Only profiles with IsActive == true are visible to search and slug lookup.
type OTProfile struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug                  string             `bson:"slug" json:"slug"`
	DisplayName           MultilingualText   `bson:"displayName" json:"displayName"`
	Bio                   MultilingualText   `bson:"bio" json:"bio"`
	Photo                 string             `bson:"photo,omitempty" json:"photo,omitempty"`
	MohRegistrationNumber string             `bson:"mohRegistrationNumber" json:"mohRegistrationNumber"`
	Specialisations       []string           `bson:"specialisations" json:"specialisations"`
	Languages             []string           `bson:"languages" json:"languages"`
	Location              GeoLocation        `bson:"location" json:"location"`
	SessionTypes          []string           `bson:"sessionTypes" json:"sessionTypes"`
	InsuranceAccepted     []string           `bson:"insuranceAccepted" json:"insuranceAccepted"`
	FeeRange              *FeeRange          `bson:"feeRange,omitempty" json:"feeRange,omitempty"`
	ContactEmail          string             `bson:"contactEmail" json:"contactEmail"`
	ContactPhone          string             `bson:"contactPhone" json:"contactPhone"`
	SubscriptionTier      string             `bson:"subscriptionTier" json:"subscriptionTier"`
	IsFeatured            bool               `bson:"isFeatured" json:"isFeatured"`
	IsAcceptingPatients   bool               `bson:"isAcceptingPatients" json:"isAcceptingPatients"`
	IsActive              bool               `bson:"isActive" json:"isActive"`
	ProfileViews          int64              `bson:"profileViews" json:"profileViews"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}
