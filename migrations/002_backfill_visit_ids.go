package migrations

import (
	"context"
	"log"

	db "github.com/KanapuramVaishnavi/Core/config/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BackfillVisitIDs gives every document written before VisitID existed its own id.
func BackfillVisitIDs(ctx context.Context, coll *mongo.Collection, newID func() string) (int, error) {
	filter := bson.M{"VisitID": bson.M{"$exists": false}}
	cursor, err := coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		log.Println("Migration failed (visit ids):", err)
		return 0, err
	}
	defer cursor.Close(ctx)

	updated := 0
	for cursor.Next(ctx) {
		var doc struct {
			ID interface{} `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return updated, err
		}
		result, err := db.UpdateOne(ctx, coll,
			bson.M{"_id": doc.ID, "VisitID": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"VisitID": newID()}},
		)
		if err != nil {
			log.Println("Migration failed (visit ids):", err)
			return updated, err
		}
		updated += int(result.ModifiedCount)
	}
	if err := cursor.Err(); err != nil {
		return updated, err
	}
	log.Printf("Migration applied: %d visit documents given a VisitID\n", updated)
	return updated, nil
}
