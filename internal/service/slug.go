package service

import (
	"strings"

	"worktrack/pkg/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SlugKind tags how an employee slug is resolved.
type SlugKind int

const (
	SlugObjectID SlugKind = iota
	SlugEmail
	SlugUID
)

func (k SlugKind) String() string {
	switch k {
	case SlugObjectID:
		return "objectId"
	case SlugEmail:
		return "email"
	case SlugUID:
		return "uid"
	}
	return "unknown"
}

// Slug is a classified employee identifier.
type Slug struct {
	Kind SlugKind
	Raw  string
	OID  primitive.ObjectID
}

// ClassifySlug resolves the slug kind once, in precedence order: store
// object id, email (contains "@"), external auth uid.
func ClassifySlug(raw string) Slug {
	if oid, err := util.ParseObjectID(raw); err == nil {
		return Slug{Kind: SlugObjectID, Raw: raw, OID: oid}
	}
	if strings.Contains(raw, "@") {
		return Slug{Kind: SlugEmail, Raw: raw}
	}
	return Slug{Kind: SlugUID, Raw: raw}
}
