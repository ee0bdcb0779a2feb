package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/pkg/paginate"
)

const tagsCollection = "tags"

type TagRepository struct {
	coll *mongo.Collection
}

func NewTagRepository(db *mongo.Database) *TagRepository {
	return &TagRepository{coll: db.Collection(tagsCollection)}
}

type tagDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Popularity int                `bson:"popularity"`
	Recipes    []string           `bson:"recipes"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d *tagDoc) toDomain() *domain.Tag {
	recipes := d.Recipes
	if recipes == nil {
		recipes = []string{}
	}
	return &domain.Tag{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Popularity: d.Popularity,
		Recipes:    recipes,
		CreatedAt:  d.CreatedAt,
	}
}

func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	doc := tagDoc{
		Name:      tag.Name,
		Recipes:   []string{},
		CreatedAt: tag.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("tag %q: %w", tag.Name, domain.ErrConflict)
		}
		return nil, fmt.Errorf("insert tag: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *TagRepository) FindByID(ctx context.Context, id string) (*domain.Tag, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFound("tag", id)
	}

	var doc tagDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("tag", id)
		}
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns tags sorted by popularity (most referenced first), then name.
func (r *TagRepository) List(ctx context.Context, window paginate.Window) ([]*domain.Tag, error) {
	opts := findOptions(window, bson.D{{Key: "popularity", Value: -1}, {Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer cursor.Close(ctx)

	var tags []*domain.Tag
	for cursor.Next(ctx) {
		var doc tagDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode tag: %w", err)
		}
		tags = append(tags, doc.toDomain())
	}
	return tags, cursor.Err()
}

func (r *TagRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFound("tag", id)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound("tag", id)
	}
	return nil
}

func (r *TagRepository) PushRecipe(ctx context.Context, tagID, recipeID string) error {
	return r.updateRecipes(ctx, tagID, recipeID, "$push", 1)
}

func (r *TagRepository) PullRecipe(ctx context.Context, tagID, recipeID string) error {
	return r.updateRecipes(ctx, tagID, recipeID, "$pull", -1)
}

// updateRecipes mutates the back-reference array and keeps popularity in
// step with it.
func (r *TagRepository) updateRecipes(ctx context.Context, tagID, recipeID, op string, popularityDelta int) error {
	oid, err := primitive.ObjectIDFromHex(tagID)
	if err != nil {
		return domain.NewNotFound("tag", tagID)
	}

	update := bson.M{
		op:     bson.M{"recipes": recipeID},
		"$inc": bson.M{"popularity": popularityDelta},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update tag recipes: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("tag", tagID)
	}
	return nil
}

// EnsureIndexes creates the unique name index.
func (r *TagRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, uniqueIndex("name"))
	return err
}
