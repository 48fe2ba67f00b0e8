// Package query models issue-store filters as an immutable expression
// tree. Resolvers compose predicates functionally; the tree is compiled
// to a MongoDB filter only at the store boundary (see ToBSON) and can be
// evaluated in memory against any document exposing FieldValue, which is
// what the in-memory store and the visibility tests run on.
package query

import (
	"reflect"
	"strings"
	"time"
)

// Doc is anything a predicate can be evaluated against in memory.
type Doc interface {
	FieldValue(name string) (interface{}, bool)
}

// geoPoint is satisfied by models.GeoPoint without importing it here.
type geoPoint interface {
	Latitude() float64
	Longitude() float64
}

// Predicate is a node of the filter expression tree. Implementations are
// value types; composing predicates never mutates existing ones.
type Predicate interface {
	// Matches evaluates the predicate against an in-memory document.
	Matches(doc Doc) bool
}

// EqNode requires field == value.
type EqNode struct {
	Field string
	Value interface{}
}

// InNode requires the field value to be one of Values. An empty Values
// list is a contradiction: it matches nothing, same as Mongo's empty $in.
type InNode struct {
	Field  string
	Values []interface{}
}

// RegexNode requires a case-insensitive substring match on a string field.
type RegexNode struct {
	Field   string
	Pattern string
}

// ExistsNode requires the field to be present.
type ExistsNode struct {
	Field string
}

// LteNode requires field <= value (inclusive). Supports time.Time and
// numeric values.
type LteNode struct {
	Field string
	Value interface{}
}

// NearNode requires a geo field within MaxMeters of the given point.
type NearNode struct {
	Field     string
	Latitude  float64
	Longitude float64
	MaxMeters float64
}

// AndNode matches when every child matches. An empty AndNode matches
// everything.
type AndNode struct {
	Children []Predicate
}

// OrNode matches when at least one child matches. An empty OrNode matches
// nothing.
type OrNode struct {
	Children []Predicate
}

func Eq(field string, value interface{}) EqNode   { return EqNode{Field: field, Value: value} }
func Exists(field string) ExistsNode              { return ExistsNode{Field: field} }
func Lte(field string, value interface{}) LteNode { return LteNode{Field: field, Value: value} }
func Regex(field, pattern string) RegexNode       { return RegexNode{Field: field, Pattern: pattern} }
func And(children ...Predicate) AndNode           { return AndNode{Children: children} }
func Or(children ...Predicate) OrNode             { return OrNode{Children: children} }

func In(field string, values ...interface{}) InNode {
	return InNode{Field: field, Values: values}
}

// InStrings builds an InNode from a string slice; an empty slice yields
// the match-nothing contradiction used by wildcard-scoped supervisors.
func InStrings(field string, values []string) InNode {
	vs := make([]interface{}, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return InNode{Field: field, Values: vs}
}

func Near(field string, latitude, longitude, maxMeters float64) NearNode {
	return NearNode{Field: field, Latitude: latitude, Longitude: longitude, MaxMeters: maxMeters}
}

func (n EqNode) Matches(doc Doc) bool {
	v, ok := doc.FieldValue(n.Field)
	return ok && valuesEqual(v, n.Value)
}

func (n InNode) Matches(doc Doc) bool {
	v, ok := doc.FieldValue(n.Field)
	if !ok {
		return false
	}
	for _, candidate := range n.Values {
		if valuesEqual(v, candidate) {
			return true
		}
	}
	return false
}

func (n RegexNode) Matches(doc Doc) bool {
	v, ok := doc.FieldValue(n.Field)
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(n.Pattern))
}

func (n ExistsNode) Matches(doc Doc) bool {
	_, ok := doc.FieldValue(n.Field)
	return ok
}

func (n LteNode) Matches(doc Doc) bool {
	v, ok := doc.FieldValue(n.Field)
	if !ok {
		return false
	}
	switch limit := n.Value.(type) {
	case time.Time:
		t, ok := v.(time.Time)
		return ok && !t.After(limit)
	case float64:
		f, ok := toFloat(v)
		return ok && f <= limit
	case int:
		f, ok := toFloat(v)
		return ok && f <= float64(limit)
	case int64:
		f, ok := toFloat(v)
		return ok && f <= float64(limit)
	}
	return false
}

func (n NearNode) Matches(doc Doc) bool {
	v, ok := doc.FieldValue(n.Field)
	if !ok {
		return false
	}
	p, ok := v.(geoPoint)
	if !ok {
		return false
	}
	return haversineMeters(n.Latitude, n.Longitude, p.Latitude(), p.Longitude()) <= n.MaxMeters
}

func (n AndNode) Matches(doc Doc) bool {
	for _, child := range n.Children {
		if !child.Matches(doc) {
			return false
		}
	}
	return true
}

func (n OrNode) Matches(doc Doc) bool {
	for _, child := range n.Children {
		if child.Matches(doc) {
			return true
		}
	}
	return false
}

func valuesEqual(a, b interface{}) bool {
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
