// Package query translates listing parameters into database clauses
package query

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// DefaultSort orders listings by creation time, newest first.
const DefaultSort = "$createdAt-desc"

var ErrBadSortField = errors.New("invalid sort field provided")

// Timestamp fields keep their document-era names on the wire
var fieldAliases = map[string]string{
	"$createdAt": "created_at",
	"$updatedAt": "updated_at",
}

var identifier = regexp.MustCompile(`^[A-Za-z0-9_$]+$`)

// ListParams is everything a file listing can filter on besides the
// requesting user.
type ListParams struct {
	Types  []string
	Search string
	Sort   string
	Limit  int
}

// Order parses a `field-direction` sort token into an ORDER BY clause.
// Unknown-but-well-formed field names are forwarded and fail at the
// database; anything that isn't a plain identifier is rejected here.
func Order(sort string) (string, error) {
	if sort == "" {
		sort = DefaultSort
	}

	field, direction, _ := strings.Cut(sort, "-")

	if alias, ok := fieldAliases[field]; ok {
		field = alias
	}

	if !identifier.MatchString(field) {
		return "", ErrBadSortField
	}

	if direction == "asc" {
		return field + " asc", nil
	}

	return field + " desc", nil
}

// List applies the listing predicates to a statement: the mandatory
// owner-or-shared filter, then type membership, name substring and limit
// when requested, and exactly one ordering. Pure construction, the
// caller runs the query.
func List(db *gorm.DB, userID, email string, p ListParams) (*gorm.DB, error) {
	order, err := Order(p.Sort)
	if err != nil {
		return nil, err
	}

	// The shared-user list is stored comma joined so membership is a
	// delimiter-padded substring match
	tx := db.Where("owner_id = ? OR (',' || users || ',') LIKE ?",
		userID, fmt.Sprintf("%%,%s,%%", email))

	if len(p.Types) > 0 {
		tx = tx.Where("type IN ?", p.Types)
	}

	if p.Search != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(p.Search)+"%")
	}

	if p.Limit > 0 {
		tx = tx.Limit(p.Limit)
	}

	return tx.Order(order), nil
}
