package repository

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults when absent", query: "", wantPage: 1, wantLimit: 10},
		{name: "explicit values", query: "page=3&limit=25", wantPage: 3, wantLimit: 25},
		{name: "non-numeric falls back", query: "page=abc&limit=xyz", wantPage: 1, wantLimit: 10},
		{name: "zero falls back", query: "page=0&limit=0", wantPage: 1, wantLimit: 10},
		{name: "negative falls back", query: "page=-2&limit=-5", wantPage: 1, wantLimit: 10},
		{name: "limit capped", query: "limit=5000", wantPage: 1, wantLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)

			params := ParsePageParams(values)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestParsePageParams_SearchTrimmed(t *testing.T) {
	values := url.Values{"search": []string{"  physics  "}}
	assert.Equal(t, "physics", ParsePageParams(values).Search)
}

func TestPageParams_Skip(t *testing.T) {
	assert.Equal(t, int64(0), PageParams{Page: 1, Limit: 10}.Skip())
	assert.Equal(t, int64(10), PageParams{Page: 2, Limit: 10}.Skip())
	assert.Equal(t, int64(50), PageParams{Page: 3, Limit: 25}.Skip())
}

func TestPageParams_HasMore(t *testing.T) {
	page := PageParams{Page: 1, Limit: 10}
	assert.True(t, page.HasMore(10, 11))
	assert.False(t, page.HasMore(10, 10))
	assert.False(t, page.HasMore(3, 3))

	last := PageParams{Page: 2, Limit: 10}
	assert.False(t, last.HasMore(5, 15))
}

func TestSearchFilter(t *testing.T) {
	t.Run("empty term produces no filter", func(t *testing.T) {
		assert.Equal(t, bson.M{}, searchFilter("", []string{"name"}))
		assert.Equal(t, bson.M{}, searchFilter("   ", []string{"name"}))
	})

	t.Run("no fields produces no filter", func(t *testing.T) {
		assert.Equal(t, bson.M{}, searchFilter("math", nil))
	})

	t.Run("disjunction over fields", func(t *testing.T) {
		filter := searchFilter("math", []string{"subject", "class"})
		or, ok := filter["$or"].([]bson.M)
		assert.True(t, ok)
		assert.Len(t, or, 2)
		assert.Equal(t, bson.M{"subject": bson.M{"$regex": "math", "$options": "i"}}, or[0])
		assert.Equal(t, bson.M{"class": bson.M{"$regex": "math", "$options": "i"}}, or[1])
	})

	t.Run("regex metacharacters are quoted", func(t *testing.T) {
		filter := searchFilter("c++ (advanced)", []string{"subject"})
		or := filter["$or"].([]bson.M)
		pattern := or[0]["subject"].(bson.M)["$regex"].(string)
		assert.Equal(t, `c\+\+ \(advanced\)`, pattern)
	})
}
