// Package pagination turns untrusted page/limit/tag query parameters into the skip, limit
// and filter of a store query.
package pagination

import (
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 5
)

// Page is a resolved page request. Limit has no upper bound.
type Page struct {
	Page   int64
	Skip   int64
	Limit  int64
	Filter bson.M
}

// Build resolves pageParam and limitParam, falling back to the defaults for absent,
// non-numeric or non-positive values. A nil filter matches every document.
func Build(pageParam, limitParam string, filter bson.M) Page {
	page := parsePositive(pageParam, DefaultPage)
	limit := parsePositive(limitParam, DefaultLimit)
	if filter == nil {
		filter = bson.M{}
	}
	return Page{
		Page:   page,
		Skip:   skipFor(page, limit),
		Limit:  limit,
		Filter: filter,
	}
}

// TotalPages returns ceil(total / limit); zero records yield zero pages.
func TotalPages(total, limit int64) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// skipFor saturates at math.MaxInt64 so an out-of-range page reads as empty
func skipFor(page, limit int64) int64 {
	if page-1 > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return (page - 1) * limit
}

// TagFilter matches posts whose tag set contains tag. An empty tag matches everything.
func TagFilter(tag string) bson.M {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return bson.M{}
	}
	return bson.M{"tags": tag}
}

func parsePositive(raw string, fallback int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
