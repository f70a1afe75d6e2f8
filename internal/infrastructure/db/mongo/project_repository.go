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

const collectionProjects = "projects"

// publicProjectSort orders listings: featured first, then explicit order,
// then newest.
var publicProjectSort = bson.D{
	{Key: "featured", Value: -1},
	{Key: "order", Value: 1},
	{Key: "created_at", Value: -1},
}

type ProjectRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{db: db, col: db.Collection(collectionProjects)}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	id, err := nextSequence(ctx, r.db, collectionProjects)
	if err != nil {
		return err
	}
	p.ID = id

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.InsertOne(ctx, p)
	return err
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindVisibleByID returns only visible projects; hidden ones read as missing.
func (r *ProjectRepository) FindVisibleByID(ctx context.Context, id int64) (*domain.Project, error) {
	return r.findOne(ctx, bson.M{"_id": id, "visible": true})
}

func (r *ProjectRepository) findOne(ctx context.Context, filter bson.M) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Project
	err := r.col.FindOne(ctx, filter).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) ListVisible(ctx context.Context, featuredOnly bool) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"visible": true}
	if featuredOnly {
		filter["featured"] = true
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(publicProjectSort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := make([]*domain.Project, 0)
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) List(ctx context.Context, filter ports.ProjectListFilter) ([]*domain.Project, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Visible != nil {
		query["visible"] = *filter.Visible
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(publicProjectSort).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	projects := make([]*domain.Project, 0, filter.Limit)
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// Update applies the non-nil fields of update and refreshes updated_at.
func (r *ProjectRepository) Update(ctx context.Context, id int64, update ports.ProjectUpdate) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Subtitle != nil {
		set["subtitle"] = *update.Subtitle
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Features != nil {
		set["features"] = update.Features
	}
	if update.TechStack != nil {
		set["tech_stack"] = update.TechStack
	}
	if update.Technologies != nil {
		set["technologies"] = update.Technologies
	}
	if update.ImageURL != nil {
		set["image_url"] = *update.ImageURL
	}
	if update.LiveURL != nil {
		set["live_url"] = *update.LiveURL
	}
	if update.GitHubURL != nil {
		set["github_url"] = *update.GitHubURL
	}
	if update.Visible != nil {
		set["visible"] = *update.Visible
	}
	if update.Featured != nil {
		set["featured"] = *update.Featured
	}
	if update.Order != nil {
		set["order"] = *update.Order
	}

	var p domain.Project
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Summary(ctx context.Context) (*domain.ProjectSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	summary := &domain.ProjectSummary{}

	var err error
	if summary.Total, err = r.col.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if summary.Visible, err = r.col.CountDocuments(ctx, bson.M{"visible": true}); err != nil {
		return nil, err
	}
	summary.Hidden = summary.Total - summary.Visible
	if summary.Featured, err = r.col.CountDocuments(ctx, bson.M{"featured": true}); err != nil {
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

	summary.Recent = make([]*domain.Project, 0, 5)
	if err := cursor.All(ctx, &summary.Recent); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "visible", Value: 1}, {Key: "featured", Value: -1}, {Key: "order", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
