package utils

import (
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateDocumentID returns a fresh Mongo object id in hex form.
func GenerateDocumentID() string {
	return primitive.NewObjectID().Hex()
}

// GenerateDeterministicID derives the same id for the same parts, so a
// retried write of one logical record collides instead of duplicating.
func GenerateDeterministicID(parts ...string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(parts, "|"))).String()
}
