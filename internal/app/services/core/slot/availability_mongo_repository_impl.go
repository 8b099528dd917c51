package slot

import (
	"context"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/exceptions"
	"meetocure-service/internal/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type availabilityMongoRepository struct {
	Collection *mongo.Collection
}

func NewAvailabilityMongoRepository(db *mongo.Client, dbName, collection string) contracts.AvailabilityRepository {
	return &availabilityMongoRepository{
		Collection: db.Database(dbName).Collection(collection),
	}
}

func (repo *availabilityMongoRepository) FindByDoctorID(ctx context.Context, doctorID string) (*models.Availability, error) {
	availability := new(models.Availability)
	err := repo.Collection.FindOne(ctx, bson.M{"doctor": utils.MongoIDFilterValue(doctorID)}).Decode(availability)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	availability.DoctorID = doctorID
	return availability, nil
}
