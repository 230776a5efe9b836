// Package votes implements toggle/switch vote semantics on top of a
// per-voter map field and an aggregate counter, using conditional
// updates so concurrent votes cannot lose a count.
package votes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when the voted document does not exist.
var ErrNotFound = errors.New("document not found")

const (
	Up   = 1
	Down = -1
)

// Delta returns the voter's resulting vote and the change to the total
// count when a voter whose previous vote is prev casts dir. Casting the
// same direction twice removes the vote; casting the opposite direction
// switches it.
func Delta(prev, dir int) (next, delta int) {
	switch prev {
	case dir:
		return 0, -dir
	case -dir:
		return dir, 2 * dir
	default:
		return dir, dir
	}
}

// Apply casts userID's vote on the document with the given id. The vote
// map lives under "votes" and the aggregate under "vote_count". Each
// candidate previous state is matched in the update filter itself, so a
// concurrent vote simply fails the filter and the next state is retried.
// The updated document is decoded into out when out is non-nil.
func Apply(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, userID string, dir int, out any) error {
	field := "votes." + userID

	for attempt := 0; attempt < 3; attempt++ {
		for _, prev := range []int{dir, -dir, 0} {
			next, delta := Delta(prev, dir)

			filter := bson.M{"_id": id}
			if prev == 0 {
				filter[field] = bson.M{"$exists": false}
			} else {
				filter[field] = prev
			}

			update := bson.M{
				"$inc": bson.M{"vote_count": delta},
				"$set": bson.M{"updated_at": time.Now()},
			}
			if next == 0 {
				update["$unset"] = bson.M{field: ""}
			} else {
				update["$set"].(bson.M)[field] = next
			}

			res := coll.FindOneAndUpdate(ctx, filter, update,
				options.FindOneAndUpdate().SetReturnDocument(options.After))
			err := res.Err()
			if err == nil {
				if out != nil {
					if err := res.Decode(out); err != nil {
						return fmt.Errorf("failed to decode voted document: %w", err)
					}
				}
				return nil
			}
			if !errors.Is(err, mongo.ErrNoDocuments) {
				return fmt.Errorf("failed to apply vote: %w", err)
			}
		}

		// No state matched: the document is gone or a concurrent vote
		// changed the voter's state between filters. Distinguish and retry.
		count, err := coll.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("failed to verify voted document: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
	}

	return errors.New("vote contention not resolved")
}
