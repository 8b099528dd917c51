package directory

import (
	"context"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/exceptions"
	"meetocure-service/internal/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type patientMongoRepository struct {
	Collection *mongo.Collection
}

func NewPatientMongoRepository(db *mongo.Client, dbName, collection string) contracts.PatientRepository {
	return &patientMongoRepository{
		Collection: db.Database(dbName).Collection(collection),
	}
}

func (repo *patientMongoRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	patient := new(models.Patient)
	opts := options.FindOne().SetProjection(bson.M{"name": 1, "email": 1})
	err := repo.Collection.FindOne(ctx, bson.M{"_id": utils.MongoIDFilterValue(patientID)}, opts).Decode(patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	patient.ID = patientID
	return patient, nil
}
