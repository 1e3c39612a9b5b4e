package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"text-assistant/db"
	"text-assistant/models"
)

type RecordRepository struct {
	col *mongo.Collection
}

func NewRecordRepository(database *mongo.Database) *RecordRepository {
	return &RecordRepository{col: database.Collection(db.RecordCollection)}
}

// Insert stores a new modification record. Records are immutable after
// this point; there is no update path. The record's ID is assigned
// here so callers can reference it after the write.
func (r *RecordRepository) Insert(ctx context.Context, rec *models.ModificationRecord) error {
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, rec)
	return err
}

// ListOptions filter and paginate a user's history.
type ListOptions struct {
	UserID    string
	Page      int
	PageSize  int
	Operation models.Operation // empty means no filter
}

// ListByUser returns one page of records ordered by timestamp
// descending, plus the total number of matches.
func (r *RecordRepository) ListByUser(ctx context.Context, opt ListOptions) ([]models.ModificationRecord, int64, error) {
	filter := bson.M{"user_id": opt.UserID}
	if opt.Operation != "" {
		filter["operation"] = opt.Operation
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((opt.Page - 1) * opt.PageSize)
	limit := int64(opt.PageSize)
	findOpts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{
		{Key: "timestamp", Value: -1},
		{Key: "_id", Value: -1},
	})

	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var results []models.ModificationRecord
	for cur.Next(ctx) {
		var rec models.ModificationRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, 0, err
		}
		results = append(results, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// UserStats is the raw aggregation output for one user.
type UserStats struct {
	TotalModifications  int64      `bson:"total_modifications"`
	TotalProcessingTime float64    `bson:"total_processing_time"`
	AvgProcessingTime   float64    `bson:"avg_processing_time"`
	TotalWordsProcessed int64      `bson:"total_words_processed"`
	Operations          []string   `bson:"operations"`
	FirstModification   *time.Time `bson:"first_modification"`
	LastModification    *time.Time `bson:"last_modification"`
}

// AggregateUserStats groups all of a user's records in one pipeline.
// A user with no records yields (nil, nil); absence of history is not
// an error.
func (r *RecordRepository) AggregateUserStats(ctx context.Context, userID string) (*UserStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":                   nil,
			"total_modifications":   bson.M{"$sum": 1},
			"total_processing_time": bson.M{"$sum": "$processing_time"},
			"avg_processing_time":   bson.M{"$avg": "$processing_time"},
			"total_words_processed": bson.M{"$sum": "$word_count_original"},
			"operations":            bson.M{"$push": "$operation"},
			"first_modification":    bson.M{"$min": "$timestamp"},
			"last_modification":     bson.M{"$max": "$timestamp"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var stats UserStats
	if err := cur.Decode(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// DeleteOlderThan purges records created before the cutoff. Used only
// by the retention sweep.
func (r *RecordRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
