package utils

import "go.mongodb.org/mongo-driver/bson/primitive"

// MongoIDFilterValue returns the ObjectID for a hex id and the plain string
// otherwise, so documents keyed either way can be matched.
func MongoIDFilterValue(id string) interface{} {
	if objectID, err := primitive.ObjectIDFromHex(id); err == nil {
		return objectID
	}
	return id
}
