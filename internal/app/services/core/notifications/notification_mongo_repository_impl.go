package notifications

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

type notificationMongoRepository struct {
	Collection     *mongo.Collection
	CollectionName string
}

func NewNotificationMongoRepository(db *mongo.Client, dbName, collection string) contracts.NotificationRepository {
	return &notificationMongoRepository{
		Collection:     db.Database(dbName).Collection(collection),
		CollectionName: collection,
	}
}

func (repo *notificationMongoRepository) Insert(ctx context.Context, notification *models.Notification) error {
	_, err := repo.Collection.InsertOne(ctx, notification)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrMongoDBDuplicateDocument(err, repo.CollectionName, notification.ID)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *notificationMongoRepository) FindByRecipients(ctx context.Context, recipientUserIDs []string, limit int64) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return repo.find(ctx, bson.M{"recipientUserId": bson.M{"$in": recipientUserIDs}}, opts)
}

func (repo *notificationMongoRepository) MarkRead(ctx context.Context, notificationID, recipientUserID string) (bool, error) {
	result, err := repo.Collection.UpdateOne(ctx,
		bson.M{"_id": notificationID, "recipientUserId": recipientUserID},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (repo *notificationMongoRepository) FindIDsByRecipient(ctx context.Context, recipientUserID string) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	notifications, err := repo.find(ctx, bson.M{"recipientUserId": recipientUserID}, opts)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(notifications))
	for _, notification := range notifications {
		ids = append(ids, notification.ID)
	}
	return ids, nil
}

func (repo *notificationMongoRepository) DeleteByIDs(ctx context.Context, recipientUserID string, notificationIDs []string) (int64, error) {
	if len(notificationIDs) == 0 {
		return 0, nil
	}
	result, err := repo.Collection.DeleteMany(ctx, bson.M{
		"_id":             bson.M{"$in": notificationIDs},
		"recipientUserId": recipientUserID,
	})
	if err != nil {
		return 0, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount, nil
}

func (repo *notificationMongoRepository) DeleteRead(ctx context.Context, recipientUserID string) (int64, error) {
	result, err := repo.Collection.DeleteMany(ctx, bson.M{"recipientUserId": recipientUserID, "isRead": true})
	if err != nil {
		return 0, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount, nil
}

func (repo *notificationMongoRepository) FindUnreadOlderThan(ctx context.Context, before time.Time) ([]models.Notification, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1, "recipientUserId": 1})
	return repo.find(ctx, bson.M{"isRead": false, "createdAt": bson.M{"$lt": before}}, opts)
}

func (repo *notificationMongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Notification, error) {
	cursor, err := repo.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	for cursor.Next(ctx) {
		var notification models.Notification
		if err := cursor.Decode(&notification); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		notifications = append(notifications, notification)
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return notifications, nil
}
