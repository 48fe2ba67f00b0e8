package query

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestAndCompilesToFlatFilter(t *testing.T) {
	p := And(
		Eq("isPublic", true),
		Eq("status", "reported"),
		InStrings("category", []string{"Road & Traffic"}),
	)

	got := ToBSON(p)
	want := bson.M{
		"isPublic": true,
		"status":   "reported",
		"category": bson.M{"$in": []interface{}{"Road & Traffic"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("compiled filter mismatch:\ngot  %#v\nwant %#v", got, want)
	}
}

func TestTwoOrClausesStayConjoined(t *testing.T) {
	visibilityOr := Or(Eq("assignedTo", "u1"), Eq("status", "escalated"))
	searchOr := Or(Regex("title", "pothole"), Regex("description", "pothole"))

	got := ToBSON(And(Eq("isPublic", true), visibilityOr, searchOr))

	if _, ok := got["$or"]; !ok {
		t.Fatal("expected first $or at the top level")
	}
	conjoined, ok := got["$and"].([]bson.M)
	if !ok || len(conjoined) != 1 {
		t.Fatalf("expected second $or under $and, got %#v", got)
	}
	if _, ok := conjoined[0]["$or"]; !ok {
		t.Errorf("expected conjoined clause to hold the search $or, got %#v", conjoined[0])
	}

	// The two OR lists must not have been merged into one.
	first := got["$or"].([]bson.M)
	if len(first) != 2 {
		t.Errorf("visibility $or was altered: %#v", first)
	}
}

func TestConflictingFieldConstraintsConjoined(t *testing.T) {
	got := ToBSON(And(Eq("status", "resolved"), Eq("status", "reported")))

	if got["status"] != "resolved" {
		t.Errorf("first constraint should win the flat slot, got %#v", got)
	}
	conjoined, ok := got["$and"].([]bson.M)
	if !ok || len(conjoined) != 1 || conjoined[0]["status"] != "reported" {
		t.Errorf("second constraint should be conjoined, got %#v", got)
	}
}

func TestNearCompilesToGeoWithin(t *testing.T) {
	got := ToBSON(Near("location.coordinates", 12.9716, 77.5946, 5000))

	field, ok := got["location.coordinates"].(bson.M)
	if !ok {
		t.Fatalf("expected geo field clause, got %#v", got)
	}
	within, ok := field["$geoWithin"].(bson.M)
	if !ok {
		t.Fatalf("expected $geoWithin clause, got %#v", field)
	}
	sphere, ok := within["$centerSphere"].([]interface{})
	if !ok || len(sphere) != 2 {
		t.Fatalf("expected [center, radius] pair, got %#v", within)
	}
	center := sphere[0].([]float64)
	// GeoJSON ordering: longitude first.
	if center[0] != 77.5946 || center[1] != 12.9716 {
		t.Errorf("center not in [lng, lat] order: %#v", center)
	}
	if radians := sphere[1].(float64); radians != 5000.0/6371000.0 {
		t.Errorf("radius not converted to radians: %v", radians)
	}
}

// CountDocuments runs the filter through an aggregation $match, where the
// server rejects $near. The geo clause must compile to something legal in
// both find and count contexts.
func TestGeoFilterIsCountSafe(t *testing.T) {
	filter := ToBSON(And(
		Eq("isPublic", true),
		Near("location.coordinates", 12.9716, 77.5946, 5000),
	))

	var walk func(v interface{})
	walk = func(v interface{}) {
		switch m := v.(type) {
		case bson.M:
			for k, child := range m {
				if k == "$near" || k == "$nearSphere" {
					t.Fatalf("count-unsafe operator %s in filter %#v", k, filter)
				}
				walk(child)
			}
		case []bson.M:
			for _, child := range m {
				walk(child)
			}
		case []interface{}:
			for _, child := range m {
				walk(child)
			}
		}
	}
	walk(filter)
}

func TestEmptyInCompilesToEmptyList(t *testing.T) {
	got := ToBSON(InStrings("category", nil))

	clause := got["category"].(bson.M)
	values := clause["$in"].([]interface{})
	if len(values) != 0 {
		t.Errorf("expected empty $in, got %#v", values)
	}
}

func TestExistsAndLteCompile(t *testing.T) {
	got := ToBSON(Exists("resolvedAt"))
	if !reflect.DeepEqual(got, bson.M{"resolvedAt": bson.M{"$exists": true}}) {
		t.Errorf("unexpected exists filter: %#v", got)
	}

	got = ToBSON(Regex("title", "light"))
	if !reflect.DeepEqual(got, bson.M{"title": bson.M{"$regex": "light", "$options": "i"}}) {
		t.Errorf("unexpected regex filter: %#v", got)
	}
}
