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

const ingredientsCollection = "ingredients"

type IngredientRepository struct {
	coll *mongo.Collection
}

func NewIngredientRepository(db *mongo.Database) *IngredientRepository {
	return &IngredientRepository{coll: db.Collection(ingredientsCollection)}
}

type ingredientDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Popularity int                `bson:"popularity"`
	Recipes    []string           `bson:"recipes"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d *ingredientDoc) toDomain() *domain.Ingredient {
	recipes := d.Recipes
	if recipes == nil {
		recipes = []string{}
	}
	return &domain.Ingredient{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Popularity: d.Popularity,
		Recipes:    recipes,
		CreatedAt:  d.CreatedAt,
	}
}

func (r *IngredientRepository) Create(ctx context.Context, ingredient *domain.Ingredient) (*domain.Ingredient, error) {
	doc := ingredientDoc{
		Name:      ingredient.Name,
		Recipes:   []string{},
		CreatedAt: ingredient.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("ingredient %q: %w", ingredient.Name, domain.ErrConflict)
		}
		return nil, fmt.Errorf("insert ingredient: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *IngredientRepository) FindByID(ctx context.Context, id string) (*domain.Ingredient, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFound("ingredient", id)
	}

	var doc ingredientDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("ingredient", id)
		}
		return nil, fmt.Errorf("find ingredient: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns ingredients sorted by popularity, then name.
func (r *IngredientRepository) List(ctx context.Context, window paginate.Window) ([]*domain.Ingredient, error) {
	opts := findOptions(window, bson.D{{Key: "popularity", Value: -1}, {Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer cursor.Close(ctx)

	var ingredients []*domain.Ingredient
	for cursor.Next(ctx) {
		var doc ingredientDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode ingredient: %w", err)
		}
		ingredients = append(ingredients, doc.toDomain())
	}
	return ingredients, cursor.Err()
}

func (r *IngredientRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFound("ingredient", id)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound("ingredient", id)
	}
	return nil
}

func (r *IngredientRepository) PushRecipe(ctx context.Context, ingredientID, recipeID string) error {
	return r.updateRecipes(ctx, ingredientID, recipeID, "$push", 1)
}

func (r *IngredientRepository) PullRecipe(ctx context.Context, ingredientID, recipeID string) error {
	return r.updateRecipes(ctx, ingredientID, recipeID, "$pull", -1)
}

func (r *IngredientRepository) updateRecipes(ctx context.Context, ingredientID, recipeID, op string, popularityDelta int) error {
	oid, err := primitive.ObjectIDFromHex(ingredientID)
	if err != nil {
		return domain.NewNotFound("ingredient", ingredientID)
	}

	update := bson.M{
		op:     bson.M{"recipes": recipeID},
		"$inc": bson.M{"popularity": popularityDelta},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update ingredient recipes: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("ingredient", ingredientID)
	}
	return nil
}

// EnsureIndexes creates the unique name index.
func (r *IngredientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, uniqueIndex("name"))
	return err
}
