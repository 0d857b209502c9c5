package profile

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	mongodb "github.com/vitrine-cloud/vitrine/internal/db/mongo"
	"github.com/vitrine-cloud/vitrine/internal/domain/query"
)

// whereToBson translates the conjunctive predicate list into a match
// document. Scalar conditions occupy the top level keyed by field path;
// existential conditions all target array fields (often the same one,
// e.g. several facets over "features"), so they are collected into one
// $and list where keys cannot collide.
func whereToBson(conds []query.Condition) bson.M {
	match := bson.M{}
	var and bson.A

	for _, c := range conds {
		switch {
		case c.IsElem():
			and = append(and, bson.M{
				c.Field(): bson.M{"$elemMatch": elemToBson(c.ElemConditions())},
			})
		default:
			field, value := scalarEntry(c)
			match[field] = value
		}
	}

	if len(and) > 0 {
		match["$and"] = and
	}
	return match
}

// elemToBson builds the element-level document of an $elemMatch. Fields
// are relative to the array element; a nested existential condition
// becomes a nested $elemMatch.
func elemToBson(conds []query.Condition) bson.M {
	doc := bson.M{}
	for _, c := range conds {
		if c.IsElem() {
			doc[c.Field()] = bson.M{"$elemMatch": elemToBson(c.ElemConditions())}
			continue
		}
		field, value := scalarEntry(c)
		doc[field] = value
	}
	return doc
}

func scalarEntry(c query.Condition) (string, any) {
	switch {
	case c.IsEq():
		return c.Field(), c.EqValue()
	case c.IsIn():
		return c.Field(), bson.M{"$in": c.InValues()}
	case c.IsRange():
		return c.Field(), rangeToBson(c.RangeBounds())
	default:
		// Empty condition; matches everything on its field.
		return c.Field(), bson.M{}
	}
}

func rangeToBson(r *query.Range) bson.M {
	doc := bson.M{}
	if gte := r.GTE(); gte != nil {
		doc["$gte"] = gte
	}
	if lte := r.LTE(); lte != nil {
		doc["$lte"] = lte
	}
	return doc
}

// referencesUser reports whether any predicate traverses the user
// association, which requires the lookup stage before matching.
func referencesUser(conds []query.Condition) bool {
	for _, c := range conds {
		if strings.HasPrefix(c.Field(), "user.") {
			return true
		}
	}
	return false
}

// userLookupStages joins and flattens the owning user document.
// preserveNullAndEmptyArrays keeps profiles whose user is missing, so
// the join alone never narrows the result set.
func userLookupStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         mongodb.UsersCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$user",
			"preserveNullAndEmptyArrays": true,
		}}},
	}
}

// featureLookupStage resolves features[].group_id to the full attribute
// groups for label hydration. It is appended only when the caller
// explicitly asked for features.
func featureLookupStage() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         mongodb.AttributeGroupsCollection,
		"localField":   "features.group_id",
		"foreignField": "_id",
		"as":           "feature_groups",
	}}}
}

// projectionToBson maps the planned field list to stored paths. "id" is
// implicit (_id is always returned); "verification" projects the joined
// user document.
func projectionToBson(p query.Projection) bson.M {
	doc := bson.M{}
	for _, f := range p.Fields() {
		switch f {
		case "id":
			// _id is included by default.
		case "verification":
			if p.IncludeVerification() {
				doc["user"] = 1
			}
		case "features":
			doc["features"] = 1
			if p.IncludeFeatures() {
				doc["feature_groups"] = 1
			}
		default:
			doc[f] = 1
		}
	}
	return doc
}

func sortToBson(s query.Sort) bson.D {
	order := 1
	if s.Desc() {
		order = -1
	}
	return bson.D{{Key: s.Field(), Value: order}}
}

// rowsPipeline builds the full aggregation for one page of rows.
func rowsPipeline(def *query.Definition) mongo.Pipeline {
	needUser := def.Projection().IncludeVerification() || referencesUser(def.Where())

	var pipeline mongo.Pipeline
	if needUser {
		pipeline = append(pipeline, userLookupStages()...)
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$match", Value: whereToBson(def.Where())}},
		bson.D{{Key: "$sort", Value: sortToBson(def.Sort())}},
		bson.D{{Key: "$skip", Value: def.Page().Skip()}},
		bson.D{{Key: "$limit", Value: def.Page().Limit()}},
	)
	if def.Projection().IncludeFeatures() {
		pipeline = append(pipeline, featureLookupStage())
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$project", Value: projectionToBson(def.Projection())}},
	)
	return pipeline
}

// countPipeline builds the count aggregation over the same predicate
// list, with no sort, window, or projection. The user lookup is added
// exactly when the predicates require it, and it preserves unmatched
// profiles, so the matched set is identical to the rows pipeline's.
func countPipeline(where []query.Condition) mongo.Pipeline {
	var pipeline mongo.Pipeline
	if referencesUser(where) {
		pipeline = append(pipeline, userLookupStages()...)
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$match", Value: whereToBson(where)}},
		bson.D{{Key: "$count", Value: "count"}},
	)
	return pipeline
}
