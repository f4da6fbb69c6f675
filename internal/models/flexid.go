package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FlexID is an identifier that may have been persisted either as an ObjectID
// or as its hex string. Older enrollment documents used both forms, so the
// decoder normalizes whatever is stored into the hex representation.
type FlexID string

// Hex returns the normalized hex form of the identifier.
func (f FlexID) Hex() string {
	return string(f)
}

// ObjectID converts the identifier back to an ObjectID where possible.
func (f FlexID) ObjectID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(string(f))
}

// UnmarshalBSONValue accepts both ObjectID and string encodings.
func (f *FlexID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeObjectID:
		var oid primitive.ObjectID
		copy(oid[:], data)
		*f = FlexID(oid.Hex())
		return nil
	case bson.TypeString:
		var s string
		if err := bson.UnmarshalValue(bson.TypeString, data, &s); err != nil {
			return err
		}
		// Normalize hex strings through ObjectID so casing is consistent.
		if oid, err := primitive.ObjectIDFromHex(s); err == nil {
			*f = FlexID(oid.Hex())
		} else {
			*f = FlexID(s)
		}
		return nil
	default:
		return fmt.Errorf("flexid: cannot decode bson type %s", t)
	}
}

// MarshalBSONValue writes the canonical ObjectID form when the value is valid
// hex, otherwise the raw string. New documents therefore always carry the
// typed representation.
func (f FlexID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if oid, err := primitive.ObjectIDFromHex(string(f)); err == nil {
		return bson.MarshalValue(oid)
	}
	return bson.MarshalValue(string(f))
}
