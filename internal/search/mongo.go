package search

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/otlink-il/otlink-backend/internal/models"
)

// ProfileCollection is the Mongo collection holding OT profiles.
const ProfileCollection = "ot_profiles"

// MongoEngine is the live search engine. Filtering is delegated to Mongo's
// query planner (text index + $in set membership) and ranking to a native
// sort expression.
type MongoEngine struct {
	col *mongo.Collection
}

func NewMongoEngine(db *mongo.Database) *MongoEngine {
	return &MongoEngine{col: db.Collection(ProfileCollection)}
}

// buildProfileFilter translates a canonical Query into a Mongo filter
// document. The isActive gate is unconditional.
func buildProfileFilter(q Query) bson.M {
	filter := bson.M{"isActive": true}

	if q.Term != "" {
		filter["$text"] = bson.M{"$search": q.Term}
	}
	if q.City != "" {
		filter["location.city"] = bson.M{"$regex": regexp.QuoteMeta(q.City), "$options": "i"}
	}
	if len(q.Specialisations) > 0 {
		filter["specialisations"] = bson.M{"$in": q.Specialisations}
	}
	if len(q.Insurances) > 0 {
		filter["insuranceAccepted"] = bson.M{"$in": q.Insurances}
	}
	if len(q.SessionTypes) > 0 {
		filter["sessionTypes"] = bson.M{"$in": q.SessionTypes}
	}
	if len(q.Languages) > 0 {
		filter["languages"] = bson.M{"$in": q.Languages}
	}
	if q.AcceptingOnly {
		filter["isAcceptingPatients"] = true
	}
	return filter
}

// buildProfileSort returns the ranking expression: text relevance first when
// a term is present, otherwise featured > premium > newest.
func buildProfileSort(q Query) bson.D {
	if q.Term != "" {
		return bson.D{
			{Key: "score", Value: bson.M{"$meta": "textScore"}},
			{Key: "isFeatured", Value: -1},
		}
	}
	return bson.D{
		{Key: "isFeatured", Value: -1},
		{Key: "subscriptionTier", Value: -1},
		{Key: "createdAt", Value: -1},
	}
}

func (e *MongoEngine) Search(ctx context.Context, q Query) (*SearchResult, error) {
	filter := buildProfileFilter(q)

	total, err := e.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, classifyStoreErr(err)
	}

	findOptions := options.Find()
	findOptions.SetSort(buildProfileSort(q))
	findOptions.SetSkip(int64((q.Page - 1) * q.PageSize))
	findOptions.SetLimit(int64(q.PageSize))
	if q.Term != "" {
		findOptions.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
	}

	cursor, err := e.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	defer cursor.Close(ctx)

	profiles := []models.OTProfile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, classifyStoreErr(err)
	}

	return &SearchResult{
		Profiles:   profiles,
		Total:      total,
		Page:       q.Page,
		TotalPages: totalPages(total, q.PageSize),
	}, nil
}

func (e *MongoEngine) GetBySlug(ctx context.Context, slug string) (*models.OTProfile, error) {
	var profile models.OTProfile
	err := e.col.FindOne(ctx, bson.M{"slug": slug, "isActive": true}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, classifyStoreErr(err)
	}
	return &profile, nil
}

// IncrementViews bumps the profile view counter by one. Callers invoke it
// fire-and-forget; failures are logged and swallowed here.
func (e *MongoEngine) IncrementViews(slug string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := e.col.UpdateOne(ctx, bson.M{"slug": slug}, bson.M{"$inc": bson.M{"profileViews": 1}})
	if err != nil {
		log.Printf("profile view increment failed for %q: %v", slug, err)
	}
}

// classifyStoreErr maps connectivity failures to ErrUnavailable so the
// adapter can fall back; anything else (e.g. a query rejected by the
// store's validator) propagates unchanged and must not trigger fallback.
func classifyStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ErrUnavailable
	}
	return err
}

// EnsureProfileIndexes creates the text, slug, and geo indexes used by the
// live engine. Safe to call on every startup.
func EnsureProfileIndexes(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(ProfileCollection)

	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "displayName.he", Value: "text"},
				{Key: "displayName.en", Value: "text"},
				{Key: "bio.he", Value: "text"},
				{Key: "bio.en", Value: "text"},
				{Key: "location.city", Value: "text"},
			},
			Options: options.Index().SetWeights(bson.M{
				"displayName.he": 10,
				"displayName.en": 10,
				"location.city":  5,
			}),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "location.coordinates", Value: "2dsphere"}},
		},
		{
			Keys: bson.D{
				{Key: "isFeatured", Value: -1},
				{Key: "subscriptionTier", Value: -1},
				{Key: "createdAt", Value: -1},
			},
		},
	})
	return err
}
