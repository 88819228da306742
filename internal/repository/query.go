package repository

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// PageParams is the normalized form of the {page, limit, search} query
// parameters shared by every list endpoint.
type PageParams struct {
	Page   int
	Limit  int
	Search string
}

// ParsePageParams reads page/limit/search from a query string. Absent,
// non-numeric, zero and negative values fall back to page=1 and limit=10;
// limit is capped at 100.
func ParsePageParams(q url.Values) PageParams {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return PageParams{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(q.Get("search")),
	}
}

// Skip returns the number of documents to skip for the requested page.
func (p PageParams) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// HasMore reports whether documents remain past the returned page.
func (p PageParams) HasMore(returned int, total int64) bool {
	return p.Skip()+int64(returned) < total
}

// searchFilter builds a disjunction of case-insensitive substring matches
// across the given field allow-list. An empty term means "no filter".
func searchFilter(term string, fields []string) bson.M {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return bson.M{}
	}

	pattern := regexp.QuoteMeta(term)
	or := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		or = append(or, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
	}

	return bson.M{"$or": or}
}
