package migration

import (
	"context"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/pkg/exceptions"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexSpec is one index to ensure on a collection.
type IndexSpec struct {
	Collection string
	Model      mongo.IndexModel
}

// IndexSpecs lists the indexes the service relies on. The partial unique
// index over slotKey is what makes a slot bookable by one active
// appointment only; cancelled appointments drop the field and leave it.
func IndexSpecs(cfg *config.InternalConfig) []IndexSpec {
	return []IndexSpec{
		{
			Collection: cfg.MongoDB.AppointmentCollection,
			Model: mongo.IndexModel{
				Keys: bson.D{{Key: "slotKey", Value: 1}},
				Options: options.Index().
					SetName("uniq_active_slot").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"slotKey": bson.M{"$exists": true}}),
			},
		},
		{
			Collection: cfg.MongoDB.AppointmentCollection,
			Model: mongo.IndexModel{
				Keys:    bson.D{{Key: "doctorId", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetName("doctor_date"),
			},
		},
		{
			Collection: cfg.MongoDB.AppointmentCollection,
			Model: mongo.IndexModel{
				Keys:    bson.D{{Key: "patientId", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("patient_created"),
			},
		},
		{
			Collection: cfg.MongoDB.NotificationCollection,
			Model: mongo.IndexModel{
				Keys:    bson.D{{Key: "recipientUserId", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("recipient_created"),
			},
		},
		{
			Collection: cfg.MongoDB.NotificationCollection,
			Model: mongo.IndexModel{
				Keys:    bson.D{{Key: "isRead", Value: 1}, {Key: "createdAt", Value: 1}},
				Options: options.Index().SetName("read_created"),
			},
		},
		{
			Collection: cfg.MongoDB.OnboardingCollection,
			Model: mongo.IndexModel{
				Keys:    bson.D{{Key: "doctorId", Value: 1}},
				Options: options.Index().SetName("uniq_doctor").SetUnique(true),
			},
		},
		{
			Collection: cfg.MongoDB.AvailabilityCollection,
			Model: mongo.IndexModel{
				Keys:    bson.D{{Key: "doctor", Value: 1}},
				Options: options.Index().SetName("uniq_doctor").SetUnique(true),
			},
		},
	}
}

// EnsureIndexes creates every index in IndexSpecs. Creating an index that
// already exists with the same definition is a no-op in MongoDB.
func EnsureIndexes(ctx context.Context, client *mongo.Client, dbName string, cfg *config.InternalConfig, log *logrus.Logger) (int, error) {
	db := client.Database(dbName)
	created := 0
	for _, spec := range IndexSpecs(cfg) {
		name, err := db.Collection(spec.Collection).Indexes().CreateOne(ctx, spec.Model)
		if err != nil {
			log.WithError(err).WithField("collection", spec.Collection).Error("failed to create index")
			return created, exceptions.ErrMongoDBCreateIndex(err, spec.Collection)
		}
		log.WithFields(logrus.Fields{
			"collection": spec.Collection,
			"index":      name,
		}).Info("index ensured")
		created++
	}
	return created, nil
}
