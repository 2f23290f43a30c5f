package models

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category classifies an expense.
type Category string

const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategorySubscription   Category = "Subscription"
	CategoryHousing        Category = "Housing"
	CategoryEntertainment  Category = "Entertainment"
	CategoryShopping       Category = "Shopping"
	CategoryHealth         Category = "Health"
	CategoryEducation      Category = "Education"
	CategoryOther          Category = "Other"
)

// Categories lists all valid categories.
var Categories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategorySubscription,
	CategoryHousing,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategoryEducation,
	CategoryOther,
}

// ParseCategory parses a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(cases.Title(language.English).String(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%q is not a valid category", s)
	}

	return c, nil
}

func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}
