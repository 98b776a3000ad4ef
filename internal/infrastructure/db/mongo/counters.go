package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

// nextID atomically increments and returns the named sequence. Sequences
// start at 1, which keeps the reserved admin id stable across fresh
// databases.
func nextID(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	res := db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&doc); err != nil {
		return 0, fmt.Errorf("next id for %s: %w", name, err)
	}
	return doc.Seq, nil
}

// reserveID raises the named sequence to at least floor, so manually
// assigned ids are never handed out again.
func reserveID(ctx context.Context, db *mongo.Database, name string, floor int64) error {
	_, err := db.Collection(countersCollection).UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"seq": floor}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("reserve id for %s: %w", name, err)
	}
	return nil
}
