package query

import "go.mongodb.org/mongo-driver/bson"

// ToBSON compiles a predicate tree to a MongoDB filter document. This is
// the only place the tree meets the driver; everything upstream works on
// the tree form.
func ToBSON(p Predicate) bson.M {
	switch n := p.(type) {
	case EqNode:
		return bson.M{n.Field: n.Value}
	case InNode:
		values := n.Values
		if values == nil {
			values = []interface{}{}
		}
		return bson.M{n.Field: bson.M{"$in": values}}
	case RegexNode:
		return bson.M{n.Field: bson.M{"$regex": n.Pattern, "$options": "i"}}
	case ExistsNode:
		return bson.M{n.Field: bson.M{"$exists": true}}
	case LteNode:
		return bson.M{n.Field: bson.M{"$lte": n.Value}}
	case NearNode:
		// $geoWithin, not $near: the same filter feeds both Find and
		// CountDocuments, and the server rejects $near inside a count's
		// $match stage. $geoWithin returns no particular order, which is
		// fine since listings sort explicitly. $centerSphere takes the
		// radius in radians.
		return bson.M{n.Field: bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": []interface{}{
					[]float64{n.Longitude, n.Latitude},
					n.MaxMeters / earthRadiusMeters,
				},
			},
		}}
	case OrNode:
		clauses := make([]bson.M, 0, len(n.Children))
		for _, child := range n.Children {
			clauses = append(clauses, ToBSON(child))
		}
		return bson.M{"$or": clauses}
	case AndNode:
		return compileAnd(n)
	}
	return bson.M{}
}

// compileAnd merges child filters into one flat document where keys are
// disjoint, matching the shape the listing filter historically had. Keys
// that collide (two $or clauses, two constraints on one field) are kept
// apart under $and so clauses are conjoined rather than overwritten.
func compileAnd(n AndNode) bson.M {
	out := bson.M{}
	var conjoined []bson.M

	for _, child := range n.Children {
		m := ToBSON(child)
		collides := false
		for k := range m {
			if _, exists := out[k]; exists {
				collides = true
				break
			}
		}
		if collides {
			conjoined = append(conjoined, m)
			continue
		}
		for k, v := range m {
			out[k] = v
		}
	}

	if len(conjoined) > 0 {
		if prior, ok := out["$and"].([]bson.M); ok {
			conjoined = append(prior, conjoined...)
		}
		out["$and"] = conjoined
	}
	return out
}
