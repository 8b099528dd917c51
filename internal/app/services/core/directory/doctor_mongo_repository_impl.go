package directory

import (
	"context"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/exceptions"
	"meetocure-service/internal/pkg/utils"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type doctorMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorMongoRepository(db *mongo.Client, dbName, collection string) contracts.DoctorRepository {
	return &doctorMongoRepository{
		Collection: db.Database(dbName).Collection(collection),
	}
}

func (repo *doctorMongoRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor := new(models.Doctor)
	opts := options.FindOne().SetProjection(bson.M{"name": 1, "email": 1, "registrationStatus": 1})
	err := repo.Collection.FindOne(ctx, bson.M{"_id": utils.MongoIDFilterValue(doctorID)}, opts).Decode(doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	doctor.ID = doctorID
	return doctor, nil
}

// UpdateRegistrationStatus mirrors the onboarding outcome onto the doctor
// profile, which the marketplace listing filters on.
func (repo *doctorMongoRepository) UpdateRegistrationStatus(ctx context.Context, doctorID string, status models.RegistrationStatus) error {
	_, err := repo.Collection.UpdateOne(ctx,
		bson.M{"_id": utils.MongoIDFilterValue(doctorID)},
		bson.M{"$set": bson.M{"registrationStatus": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
