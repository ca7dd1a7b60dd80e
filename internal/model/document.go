package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names shared by the stored documents.
const (
	FieldID            = "_id"
	FieldEmail         = "email"
	FieldUID           = "uid"
	FieldRole          = "role"
	FieldIsActive      = "isActive"
	FieldIsVerified    = "isVerified"
	FieldPaid          = "paid"
	FieldDeactivatedAt = "deactivatedAt"
	FieldEmployeeID    = "employeeId"
	FieldMonth         = "month"
)

// Document is a schemaless record as stored in a collection. Client
// supplied fields are kept verbatim; the accessors below read the few
// fields the service reasons about.
type Document map[string]interface{}

// ID returns the store-assigned identifier, if present.
func (d Document) ID() (primitive.ObjectID, bool) {
	oid, ok := d[FieldID].(primitive.ObjectID)
	return oid, ok
}

// String returns the string value of key, or "" when absent or not a string.
func (d Document) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// Bool returns the boolean value of key, or false when absent or not a bool.
func (d Document) Bool(key string) bool {
	b, _ := d[key].(bool)
	return b
}

// Time returns the time stored under key. BSON dates decode as
// primitive.DateTime, in-process values stay time.Time.
func (d Document) Time(key string) (time.Time, bool) {
	switch v := d[key].(type) {
	case time.Time:
		return v, true
	case primitive.DateTime:
		return v.Time(), true
	}
	return time.Time{}, false
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Without returns a shallow copy with the given keys removed.
func (d Document) Without(keys ...string) Document {
	out := d.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
