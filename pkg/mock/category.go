package mock

import "fmt"

// Category is the kind of condition a matcher registers.
type Category int

// Matcher categories.
const (
	CategoryURL Category = iota
	CategoryBody
	CategoryContentType
	CategoryMethod
	CategoryAuth
	CategoryHeaderInclusive
	CategoryHeaderExclusive
	CategoryQueryParamInclusive
	CategoryQueryParamExclusive
	CategoryQueryParamValueInclusive
	CategoryQueryParamValueExclusive
	CategoryCustom
)

var categoryNames = map[Category]string{
	CategoryURL:                      "URL",
	CategoryBody:                     "Body",
	CategoryContentType:              "ContentType",
	CategoryMethod:                   "Method",
	CategoryAuth:                     "Auth",
	CategoryHeaderInclusive:          "HeaderInclusive",
	CategoryHeaderExclusive:          "HeaderExclusive",
	CategoryQueryParamInclusive:      "QueryParamInclusive",
	CategoryQueryParamExclusive:      "QueryParamsExclusive",
	CategoryQueryParamValueInclusive: "QueryParamValueInclusive",
	CategoryQueryParamValueExclusive: "QueryParamValueExclusive",
	CategoryCustom:                   "Custom",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Cardinality describes how many registrations a category allows per setup.
type Cardinality int

const (
	// Unconstrained categories are never checked.
	Unconstrained Cardinality = iota
	// Singleton categories allow one registration per setup.
	Singleton
	// Keyed categories allow one registration per key.
	Keyed
)

// Cardinality returns the registration rule for c.
func (c Category) Cardinality() Cardinality {
	switch c {
	case CategoryURL, CategoryBody, CategoryContentType, CategoryMethod, CategoryAuth:
		return Singleton
	case CategoryHeaderInclusive, CategoryHeaderExclusive,
		CategoryQueryParamInclusive, CategoryQueryParamExclusive:
		return Keyed
	default:
		return Unconstrained
	}
}

// opposites pairs keyed categories whose same-key registrations contradict.
var opposites = map[Category]Category{
	CategoryHeaderInclusive:     CategoryHeaderExclusive,
	CategoryHeaderExclusive:     CategoryHeaderInclusive,
	CategoryQueryParamInclusive: CategoryQueryParamExclusive,
	CategoryQueryParamExclusive: CategoryQueryParamInclusive,
}

// Opposite returns the category that logically negates c, if any.
func (c Category) Opposite() (Category, bool) {
	o, ok := opposites[c]
	return o, ok
}
