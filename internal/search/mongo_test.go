package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestBuildProfileFilter(t *testing.T) {
	t.Run("empty query filters on active only", func(t *testing.T) {
		filter := buildProfileFilter(Query{})
		assert.Equal(t, bson.M{"isActive": true}, filter)
	})

	t.Run("term uses text search", func(t *testing.T) {
		filter := buildProfileFilter(Query{Term: "sensory"})
		assert.Equal(t, bson.M{"$search": "sensory"}, filter["$text"])
	})

	t.Run("facets use set membership", func(t *testing.T) {
		filter := buildProfileFilter(Query{
			Specialisations: []string{"paediatrics", "geriatrics"},
			Insurances:      []string{"clalit"},
			SessionTypes:    []string{"telehealth"},
			Languages:       []string{"he", "ar"},
		})
		assert.Equal(t, bson.M{"$in": []string{"paediatrics", "geriatrics"}}, filter["specialisations"])
		assert.Equal(t, bson.M{"$in": []string{"clalit"}}, filter["insuranceAccepted"])
		assert.Equal(t, bson.M{"$in": []string{"telehealth"}}, filter["sessionTypes"])
		assert.Equal(t, bson.M{"$in": []string{"he", "ar"}}, filter["languages"])
	})

	t.Run("city is a case-insensitive substring regex", func(t *testing.T) {
		filter := buildProfileFilter(Query{City: "Tel Aviv"})
		assert.Equal(t, bson.M{"$regex": "Tel Aviv", "$options": "i"}, filter["location.city"])
	})

	t.Run("city regex metacharacters are escaped", func(t *testing.T) {
		filter := buildProfileFilter(Query{City: "a.b*"})
		city, ok := filter["location.city"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, `a\.b\*`, city["$regex"])
	})

	t.Run("accepting only", func(t *testing.T) {
		filter := buildProfileFilter(Query{AcceptingOnly: true})
		assert.Equal(t, true, filter["isAcceptingPatients"])

		filter = buildProfileFilter(Query{})
		assert.NotContains(t, filter, "isAcceptingPatients")
	})
}

func TestBuildProfileSort(t *testing.T) {
	t.Run("without term ranks featured, tier, recency", func(t *testing.T) {
		sort := buildProfileSort(Query{})
		require.Len(t, sort, 3)
		assert.Equal(t, "isFeatured", sort[0].Key)
		assert.Equal(t, "subscriptionTier", sort[1].Key)
		assert.Equal(t, "createdAt", sort[2].Key)
	})

	t.Run("with term ranks relevance then featured", func(t *testing.T) {
		sort := buildProfileSort(Query{Term: "sensory"})
		require.Len(t, sort, 2)
		assert.Equal(t, "score", sort[0].Key)
		assert.Equal(t, bson.M{"$meta": "textScore"}, sort[0].Value)
		assert.Equal(t, "isFeatured", sort[1].Key)
	})
}

func TestClassifyStoreErr(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, classifyStoreErr(nil))
	})

	t.Run("connectivity failures map to unavailable", func(t *testing.T) {
		assert.ErrorIs(t, classifyStoreErr(context.DeadlineExceeded), ErrUnavailable)
		assert.ErrorIs(t, classifyStoreErr(mongo.ErrClientDisconnected), ErrUnavailable)
	})

	t.Run("query execution errors pass through", func(t *testing.T) {
		cmdErr := mongo.CommandError{Code: 2, Message: "unknown operator"}
		got := classifyStoreErr(cmdErr)
		assert.NotErrorIs(t, got, ErrUnavailable)

		other := errors.New("decode failure")
		assert.Equal(t, other, classifyStoreErr(other))
	})
}
