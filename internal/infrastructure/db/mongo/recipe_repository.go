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
	"github.com/goodplates/recipes-api/internal/core/ports"
)

const recipesCollection = "recipes"

type RecipeRepository struct {
	coll *mongo.Collection
}

func NewRecipeRepository(db *mongo.Database) *RecipeRepository {
	return &RecipeRepository{coll: db.Collection(recipesCollection)}
}

type recipeDoc struct {
	ID               primitive.ObjectID        `bson:"_id,omitempty"`
	Title            string                    `bson:"title"`
	Portions         int                       `bson:"portions,omitempty"`
	Description      string                    `bson:"description,omitempty"`
	Tags             []domain.TagRef           `bson:"tags"`
	PreparationTime  int                       `bson:"preparation_time,omitempty"`
	CookingTime      int                       `bson:"cooking_time,omitempty"`
	Ingredients      []domain.RecipeIngredient `bson:"ingredients"`
	PreparationSteps []string                  `bson:"preparation_steps"`
	Owner            domain.UserRef            `bson:"owner"`
	CreatedAt        time.Time                 `bson:"created_at"`
	UpdatedAt        time.Time                 `bson:"updated_at"`
}

func (d *recipeDoc) toDomain() *domain.Recipe {
	tags := d.Tags
	if tags == nil {
		tags = []domain.TagRef{}
	}
	return &domain.Recipe{
		ID:               d.ID.Hex(),
		Title:            d.Title,
		Portions:         d.Portions,
		Description:      d.Description,
		Tags:             tags,
		PreparationTime:  d.PreparationTime,
		CookingTime:      d.CookingTime,
		Ingredients:      d.Ingredients,
		PreparationSteps: d.PreparationSteps,
		Owner:            d.Owner,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func fromDomain(r *domain.Recipe) recipeDoc {
	tags := r.Tags
	if tags == nil {
		tags = []domain.TagRef{}
	}
	return recipeDoc{
		Title:            r.Title,
		Portions:         r.Portions,
		Description:      r.Description,
		Tags:             tags,
		PreparationTime:  r.PreparationTime,
		CookingTime:      r.CookingTime,
		Ingredients:      r.Ingredients,
		PreparationSteps: r.PreparationSteps,
		Owner:            r.Owner,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	doc := fromDomain(recipe)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*domain.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFound("recipe", id)
	}

	var doc recipeDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("recipe", id)
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns recipes matching the filter, sorted by title.
func (r *RecipeRepository) List(ctx context.Context, filter ports.ListRecipesFilter) ([]*domain.Recipe, error) {
	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner.id"] = filter.OwnerID
	}
	if filter.TagID != "" {
		query["tags.id"] = filter.TagID
	}
	if filter.IngredientID != "" {
		query["ingredients.ingredient.id"] = filter.IngredientID
	}

	opts := findOptions(filter.Window, bson.D{{Key: "title", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer cursor.Close(ctx)

	var recipes []*domain.Recipe
	for cursor.Next(ctx) {
		var doc recipeDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode recipe: %w", err)
		}
		recipes = append(recipes, doc.toDomain())
	}
	return recipes, cursor.Err()
}

func (r *RecipeRepository) Update(ctx context.Context, id string, delta ports.RecipeDelta) (*domain.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFound("recipe", id)
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if delta.Title != nil {
		set["title"] = *delta.Title
	}
	if delta.Portions != nil {
		set["portions"] = *delta.Portions
	}
	if delta.Description != nil {
		set["description"] = *delta.Description
	}
	if delta.PreparationTime != nil {
		set["preparation_time"] = *delta.PreparationTime
	}
	if delta.CookingTime != nil {
		set["cooking_time"] = *delta.CookingTime
	}
	if delta.PreparationSteps != nil {
		set["preparation_steps"] = *delta.PreparationSteps
	}
	if delta.Tags != nil {
		set["tags"] = *delta.Tags
	}
	if delta.Ingredients != nil {
		set["ingredients"] = *delta.Ingredients
	}
	if delta.Owner != nil {
		set["owner"] = *delta.Owner
	}

	res := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		findOneAndUpdateAfter())
	var doc recipeDoc
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("recipe", id)
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFound("recipe", id)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound("recipe", id)
	}
	return nil
}

// EnsureIndexes creates the reference lookup indexes used by List.
func (r *RecipeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner.id", Value: 1}}},
		{Keys: bson.D{{Key: "tags.id", Value: 1}}},
		{Keys: bson.D{{Key: "ingredients.ingredient.id", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
