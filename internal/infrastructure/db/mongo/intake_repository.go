package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

// IntakeRepository stores one document per (user_id, date). Dates are kept as
// YYYY-MM-DD strings, which sort chronologically.
type IntakeRepository struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

func NewIntakeRepository(client *mongo.Client, db *mongo.Database, timeout time.Duration) *IntakeRepository {
	return &IntakeRepository{client: client, coll: db.Collection(collectionIntakes), timeout: timeoutOrDefault(timeout)}
}

type mongoIntake struct {
	UserID   int64  `bson:"user_id"`
	Date     string `bson:"date"`
	Calories int    `bson:"calories"`
}

// AddCalories applies every $inc upsert inside one multi-document
// transaction. Requires a replica set or sharded cluster.
func (r *IntakeRepository) AddCalories(ctx context.Context, records []domain.IntakeRecord) error {
	if len(records) == 0 {
		return nil
	}
	for _, rec := range records {
		if err := domain.CheckCalories(rec.Calories); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, rec := range records {
			date := rec.Date.Format(domain.DateLayout)
			_, err := r.coll.UpdateOne(sc,
				bson.M{"user_id": rec.UserID, "date": date},
				bson.M{"$inc": bson.M{"calories": rec.Calories}},
				options.Update().SetUpsert(true),
			)
			if err != nil {
				return nil, fmt.Errorf("add calories for %s: %w", date, err)
			}
		}
		return nil, nil
	})
	return err
}

func (r *IntakeRepository) List(ctx context.Context, userID int64, rng domain.DateRange) ([]domain.IntakeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"user_id": userID}
	dateFilter := bson.M{}
	if !rng.From.IsZero() {
		dateFilter["$gte"] = rng.From.Format(domain.DateLayout)
	}
	if !rng.To.IsZero() {
		dateFilter["$lte"] = rng.To.Format(domain.DateLayout)
	}
	if len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find intake: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoIntake
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode intake: %w", err)
	}

	out := make([]domain.IntakeRecord, 0, len(docs))
	for _, d := range docs {
		date, err := domain.ParseDate(d.Date)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.IntakeRecord{UserID: d.UserID, Date: date, Calories: d.Calories})
	}
	return out, nil
}
