package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

const collectionTestimonials = "testimonials"

type TestimonialRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewTestimonialRepository(db *mongo.Database) *TestimonialRepository {
	return &TestimonialRepository{db: db, col: db.Collection(collectionTestimonials)}
}

func (r *TestimonialRepository) Create(ctx context.Context, t *domain.Testimonial) error {
	id, err := nextSequence(ctx, r.db, collectionTestimonials)
	if err != nil {
		return err
	}
	t.ID = id

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.InsertOne(ctx, t)
	return err
}

// FindRecentByClientName retrieves a prior submission under the same client
// name created at or after since.
func (r *TestimonialRepository) FindRecentByClientName(ctx context.Context, clientName string, since time.Time) (*domain.Testimonial, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"client_name": clientName,
		"created_at":  bson.M{"$gte": since},
	}

	var t domain.Testimonial
	err := r.col.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTestimonialNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListApproved returns approved testimonials, featured first then newest.
func (r *TestimonialRepository) ListApproved(ctx context.Context, featuredOnly bool, limit int) ([]*domain.Testimonial, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"approved": true}
	if featuredOnly {
		filter["featured"] = true
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	testimonials := make([]*domain.Testimonial, 0, limit)
	if err := cursor.All(ctx, &testimonials); err != nil {
		return nil, err
	}
	return testimonials, nil
}

func (r *TestimonialRepository) List(ctx context.Context, filter ports.TestimonialListFilter) ([]*domain.Testimonial, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Approved != nil {
		query["approved"] = *filter.Approved
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	testimonials := make([]*domain.Testimonial, 0, filter.Limit)
	if err := cursor.All(ctx, &testimonials); err != nil {
		return nil, 0, err
	}
	return testimonials, total, nil
}

// UpdateApproval sets approved, and featured only when non-nil.
func (r *TestimonialRepository) UpdateApproval(ctx context.Context, id int64, approved bool, featured *bool) (*domain.Testimonial, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"approved":   approved,
		"updated_at": time.Now().UTC(),
	}
	if featured != nil {
		set["featured"] = *featured
	}

	var t domain.Testimonial
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTestimonialNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TestimonialRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTestimonialNotFound
	}
	return nil
}

// Summary aggregates moderation counts, the average rating of approved
// testimonials and the five most recent submissions.
func (r *TestimonialRepository) Summary(ctx context.Context) (*domain.TestimonialSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	summary := &domain.TestimonialSummary{}

	var err error
	if summary.Total, err = r.col.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if summary.Approved, err = r.col.CountDocuments(ctx, bson.M{"approved": true}); err != nil {
		return nil, err
	}
	summary.Pending = summary.Total - summary.Approved
	if summary.Featured, err = r.col.CountDocuments(ctx, bson.M{"featured": true}); err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"approved": true}}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"avg": bson.M{"$avg": "$rating"},
		}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var avg []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cursor.All(ctx, &avg); err != nil {
		return nil, err
	}
	if len(avg) > 0 {
		summary.AverageRating = avg[0].Avg
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(5)
	recent, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer recent.Close(ctx)

	summary.Recent = make([]*domain.Testimonial, 0, 5)
	if err := recent.All(ctx, &summary.Recent); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *TestimonialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_name", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "approved", Value: 1}, {Key: "featured", Value: -1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
