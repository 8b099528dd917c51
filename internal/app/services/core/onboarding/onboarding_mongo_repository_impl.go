package onboarding

import (
	"context"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type onboardingMongoRepository struct {
	Collection     *mongo.Collection
	CollectionName string
}

func NewOnboardingMongoRepository(db *mongo.Client, dbName, collection string) contracts.OnboardingRepository {
	return &onboardingMongoRepository{
		Collection:     db.Database(dbName).Collection(collection),
		CollectionName: collection,
	}
}

func (repo *onboardingMongoRepository) FindByDoctorID(ctx context.Context, doctorID string) (*models.DoctorVerification, error) {
	record := new(models.DoctorVerification)
	err := repo.Collection.FindOne(ctx, bson.M{"doctorId": doctorID}).Decode(record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return record, nil
}

// Insert depends on the unique index over doctorId to keep one record per
// doctor.
func (repo *onboardingMongoRepository) Insert(ctx context.Context, record *models.DoctorVerification) error {
	_, err := repo.Collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrMongoDBDuplicateDocument(err, repo.CollectionName, record.DoctorID)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *onboardingMongoRepository) ReplaceIfStatus(ctx context.Context, record *models.DoctorVerification, from models.RegistrationStatus) (bool, error) {
	result, err := repo.Collection.ReplaceOne(ctx,
		bson.M{"doctorId": record.DoctorID, "registrationStatus": from},
		record,
	)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (repo *onboardingMongoRepository) CompareAndSetStatus(ctx context.Context, doctorID string, from, to models.RegistrationStatus, reviewMessage, reviewedBy string) (bool, error) {
	set := bson.M{
		"registrationStatus": to,
		"reviewedBy":         reviewedBy,
		"updatedAt":          time.Now(),
	}
	update := bson.M{"$set": set}
	if reviewMessage != "" {
		set["reviewMessage"] = reviewMessage
	} else {
		update["$unset"] = bson.M{"reviewMessage": ""}
	}

	result, err := repo.Collection.UpdateOne(ctx, bson.M{"doctorId": doctorID, "registrationStatus": from}, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}
