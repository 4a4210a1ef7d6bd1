package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

type ArtifactRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewArtifactRepository(db *mongo.Database, timeout time.Duration) *ArtifactRepository {
	return &ArtifactRepository{coll: db.Collection(collectionCharts), timeout: timeoutOrDefault(timeout)}
}

type mongoChart struct {
	UserID    int64     `bson:"user_id"`
	PDFData   []byte    `bson:"pdf_data,omitempty"`
	CSVData   []byte    `bson:"csv_data,omitempty"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (r *ArtifactRepository) Save(ctx context.Context, a domain.ReportArtifact) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = time.Now().UTC()
	}
	set := bson.M{"updated_at": a.UpdatedAt}
	if a.PDF != nil {
		set["pdf_data"] = a.PDF
	}
	if a.CSV != nil {
		set["csv_data"] = a.CSV
	}

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": a.UserID},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save report artifact for user %d: %w", a.UserID, err)
	}
	return nil
}

func (r *ArtifactRepository) Load(ctx context.Context, userID int64, format domain.ReportFormat) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc mongoChart
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("load report artifact for user %d: %w", userID, err)
	}

	a := domain.ReportArtifact{UserID: doc.UserID, PDF: doc.PDFData, CSV: doc.CSVData, UpdatedAt: doc.UpdatedAt}
	data := a.Bytes(format)
	if data == nil {
		return nil, domain.ErrArtifactNotFound
	}
	return data, nil
}
