// Package entries narrows loosely typed records, such as documents read back
// from storage or elements of an import payload, into the closed set of entry
// variants defined in models.
//
// Classification is total: a value either decodes into a Meal or a WaterLog,
// or it does not match. Nothing here returns an error or panics on bad input.
package entries

import (
	"math"

	"health-tracker/models"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	fieldEntryType = "entryType"
	fieldID        = "id"
	fieldUserID    = "userId"
	fieldDate      = "date"
	fieldName      = "name"
	fieldCalories  = "calories"
	fieldAmountML  = "amountMl"
)

// Decode parses value into a Meal or WaterLog. The boolean is false when value
// is not an object, lacks entryType, id or userId, carries them with the wrong
// primitive types, or names a discriminator other than "meal" or "water".
// Unknown fields are ignored, and optional attributes that do not read cleanly
// are left at zero.
func Decode(value any) (models.Entry, bool) {
	return decode(value, false)
}

// DecodeStrict is Decode for values about to be written. It also rejects a
// value whose optional attributes are present with the wrong type, or whose
// numbers are fractional or too large to be a count.
func DecodeStrict(value any) (models.Entry, bool) {
	return decode(value, true)
}

func decode(value any, strict bool) (models.Entry, bool) {
	switch v := value.(type) {
	case models.Meal:
		v.EntryType = models.EntryTypeMeal
		return v, true
	case *models.Meal:
		if v == nil {
			return nil, false
		}
		m := *v
		m.EntryType = models.EntryTypeMeal
		return m, true
	case models.WaterLog:
		v.EntryType = models.EntryTypeWater
		return v, true
	case *models.WaterLog:
		if v == nil {
			return nil, false
		}
		w := *v
		w.EntryType = models.EntryTypeWater
		return w, true
	case map[string]any:
		return decodeDocument(v, strict)
	case bson.M:
		return decodeDocument(v, strict)
	case bson.D:
		doc := make(map[string]any, len(v))
		for _, e := range v {
			doc[e.Key] = e.Value
		}
		return decodeDocument(doc, strict)
	}
	return nil, false
}

func decodeDocument(doc map[string]any, strict bool) (models.Entry, bool) {
	kind, ok := discriminator(doc[fieldEntryType])
	if !ok {
		return nil, false
	}
	id, ok := doc[fieldID].(string)
	if !ok {
		return nil, false
	}
	userID, ok := doc[fieldUserID].(string)
	if !ok {
		return nil, false
	}

	attrs := attributes{doc: doc}
	var entry models.Entry
	switch kind {
	case models.EntryTypeMeal:
		entry = models.Meal{
			EntryType: models.EntryTypeMeal,
			ID:        id,
			UserID:    userID,
			Date:      attrs.readString(fieldDate),
			Name:      attrs.readString(fieldName),
			Calories:  attrs.readInt(fieldCalories),
		}
	case models.EntryTypeWater:
		entry = models.WaterLog{
			EntryType: models.EntryTypeWater,
			ID:        id,
			UserID:    userID,
			Date:      attrs.readString(fieldDate),
			AmountML:  attrs.readInt(fieldAmountML),
		}
	default:
		return nil, false
	}

	if strict && attrs.invalid {
		return nil, false
	}
	return entry, true
}

func discriminator(v any) (models.EntryType, bool) {
	switch t := v.(type) {
	case string:
		return models.EntryType(t), true
	case models.EntryType:
		return t, true
	}
	return "", false
}

// Largest magnitude a float can carry while still holding an exact integer.
const maxExactFloat = 1 << 53

// attributes reads optional fields. A field that is present but unreadable
// yields zero and marks the document invalid.
type attributes struct {
	doc     map[string]any
	invalid bool
}

func (a *attributes) readString(key string) string {
	v, ok := a.doc[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		a.invalid = true
	}
	return s
}

func (a *attributes) readInt(key string) int {
	v, ok := a.doc[key]
	if !ok || v == nil {
		return 0
	}

	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		if n >= -maxExactFloat && n <= maxExactFloat {
			return int(n)
		}
	case float64:
		if n == math.Trunc(n) && n >= -maxExactFloat && n <= maxExactFloat {
			return int(n)
		}
	case float32:
		if f := float64(n); f == math.Trunc(f) && f >= -maxExactFloat && f <= maxExactFloat {
			return int(f)
		}
	}
	a.invalid = true
	return 0
}
