package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

const collectionContacts = "contacts"

type ContactRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{db: db, col: db.Collection(collectionContacts)}
}

// Create inserts a new contact message, assigning a sequential id.
func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	id, err := nextSequence(ctx, r.db, collectionContacts)
	if err != nil {
		return err
	}
	c.ID = id

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.InsertOne(ctx, c)
	return err
}

// FindRecent retrieves a prior submission from the same email, created at or
// after since, whose stored message contains messagePrefix.
func (r *ContactRepository) FindRecent(ctx context.Context, email string, since time.Time, messagePrefix string) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"email":      email,
		"created_at": bson.M{"$gte": since},
		"message":    bson.M{"$regex": regexp.QuoteMeta(messagePrefix)},
	}

	var c domain.Contact
	err := r.col.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContactNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns a page of contacts, newest first, plus the total count.
func (r *ContactRepository) List(ctx context.Context, filter ports.ContactListFilter) ([]*domain.Contact, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
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

	contacts := make([]*domain.Contact, 0, filter.Limit)
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// UpdateStatus sets the moderation status and refreshes updated_at.
func (r *ContactRepository) UpdateStatus(ctx context.Context, id int64, status domain.ContactStatus) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}}

	var c domain.Contact
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContactNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Summary aggregates per-status counts and the five most recent messages.
func (r *ContactRepository) Summary(ctx context.Context) (*domain.ContactSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	summary := &domain.ContactSummary{}

	var err error
	if summary.Total, err = r.col.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if summary.Unread, err = r.col.CountDocuments(ctx, bson.M{"status": domain.ContactUnread}); err != nil {
		return nil, err
	}
	if summary.Read, err = r.col.CountDocuments(ctx, bson.M{"status": domain.ContactRead}); err != nil {
		return nil, err
	}
	if summary.Replied, err = r.col.CountDocuments(ctx, bson.M{"status": domain.ContactReplied}); err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(5)
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summary.Recent = make([]*domain.Contact, 0, 5)
	if err := cursor.All(ctx, &summary.Recent); err != nil {
		return nil, err
	}
	return summary, nil
}

// EnsureIndexes creates the indexes backing the duplicate guard and listings.
func (r *ContactRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
