package appointments

import (
	"context"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type appointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName, collection string) contracts.AppointmentRepository {
	return &appointmentMongoRepository{
		Collection: db.Database(dbName).Collection(collection),
	}
}

// Insert relies on the partial unique index over slotKey: the insert and
// the conflict check are one atomic server-side operation.
func (repo *appointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	appointment.SlotKey = models.BuildSlotKey(appointment.DoctorID, appointment.Date, appointment.Time)

	_, err := repo.Collection.InsertOne(ctx, appointment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrSlotConflict(err, appointment.DoctorID, appointment.Date, appointment.Time)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *appointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment := new(models.Appointment)
	err := repo.Collection.FindOne(ctx, bson.M{"_id": appointmentID}).Decode(appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return appointment, nil
}

func (repo *appointmentMongoRepository) FindByPatientID(ctx context.Context, patientID string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return repo.find(ctx, bson.M{"patientId": patientID}, opts)
}

func (repo *appointmentMongoRepository) FindByDoctorIDAndDates(ctx context.Context, doctorID string, dates []string) ([]models.Appointment, error) {
	filter := bson.M{
		"doctorId": doctorID,
		"date":     bson.M{"$in": dates},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})
	return repo.find(ctx, filter, opts)
}

// CompareAndSetStatus is a single conditional update. Leaving a slot-holding
// status also drops slotKey so the triple can be booked again.
func (repo *appointmentMongoRepository) CompareAndSetStatus(ctx context.Context, appointmentID string, from, to models.AppointmentStatus) (bool, error) {
	update := bson.M{
		"$set": bson.M{"status": to, "updatedAt": time.Now()},
	}
	if to == models.AppointmentStatusCancelled {
		update["$unset"] = bson.M{"slotKey": ""}
	}

	result, err := repo.Collection.UpdateOne(ctx, bson.M{"_id": appointmentID, "status": from}, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (repo *appointmentMongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	cursor, err := repo.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	err = cursor.All(ctx, &appointments)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}
