package migrations

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// Run applies every migration in order. Ids are backfilled before the unique index is built.
func Run(ctx context.Context, coll *mongo.Collection) error {
	if _, err := BackfillVisitIDs(ctx, coll, uuid.NewString); err != nil {
		return err
	}
	return CreateVisitIndexes(ctx, coll)
}
