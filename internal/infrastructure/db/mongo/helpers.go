package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/goodplates/recipes-api/internal/pkg/paginate"
)

// findOptions applies sort plus the pagination window.
func findOptions(window paginate.Window, sort bson.D) *options.FindOptions {
	opts := options.Find().SetSort(sort)
	if window.Constrained() {
		opts = opts.SetSkip(window.Skip).SetLimit(window.Limit)
	}
	return opts
}

func findOneAndUpdateAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

func uniqueIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}
