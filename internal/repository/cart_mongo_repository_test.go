package repository

import (
	"context"
	"testing"
	"time"

	"github.com/storefront-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockCartCollectionTest(t *testing.T) *mtest.T {
	t.Helper()
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestMongoCartRepositoryGetByUserMiss(t *testing.T) {
	mt := newMockCartCollectionTest(t)
	mt.Run("miss", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		cart, err := NewMongoCartRepository(mt.Coll).GetByUser(context.Background(), "ghost")
		if err != nil {
			mt.Fatalf("miss should not error: %v", err)
		}
		if cart != nil {
			mt.Fatalf("miss should return nil cart, got %+v", cart)
		}
	})
}

func TestMongoCartRepositoryGetByUserDecodesDocument(t *testing.T) {
	mt := newMockCartCollectionTest(t)
	mt.Run("hit", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		updatedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "userId", Value: "u1"},
			{Key: "items", Value: bson.A{
				bson.D{{Key: "productId", Value: int32(3)}, {Key: "quantity", Value: int32(2)}},
				bson.D{{Key: "productId", Value: int32(7)}, {Key: "quantity", Value: int32(1)}},
			}},
			{Key: "createdAt", Value: updatedAt.Add(-time.Hour)},
			{Key: "updatedAt", Value: updatedAt},
		}))

		cart, err := NewMongoCartRepository(mt.Coll).GetByUser(context.Background(), "u1")
		if err != nil || cart == nil {
			mt.Fatalf("get cart failed: cart=%v err=%v", cart, err)
		}
		if cart.UserID != "u1" {
			mt.Fatalf("want userId u1 got %q", cart.UserID)
		}
		if len(cart.Items) != 2 || cart.Items[0].ProductID != 3 || cart.Items[0].Quantity != 2 || cart.Items[1].ProductID != 7 {
			mt.Fatalf("unexpected items: %+v", cart.Items)
		}
		if !cart.UpdatedAt.Equal(updatedAt) {
			mt.Fatalf("want updatedAt %v got %v", updatedAt, cart.UpdatedAt)
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "find" {
			mt.Fatalf("want find command, got %+v", started)
		}
		if got := started.Command.Lookup("filter", "userId").StringValue(); got != "u1" {
			mt.Fatalf("want filter on userId u1 got %q", got)
		}
	})
}

func TestMongoCartRepositoryGetByUserNormalizesMissingItems(t *testing.T) {
	mt := newMockCartCollectionTest(t)
	mt.Run("no items", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "userId", Value: "u2"},
		}))

		cart, err := NewMongoCartRepository(mt.Coll).GetByUser(context.Background(), "u2")
		if err != nil || cart == nil {
			mt.Fatalf("get cart failed: cart=%v err=%v", cart, err)
		}
		if cart.Items == nil || len(cart.Items) != 0 {
			mt.Fatalf("items should be an empty slice, got %#v", cart.Items)
		}
	})
}

func TestMongoCartRepositorySaveUpsertsByUser(t *testing.T) {
	mt := newMockCartCollectionTest(t)
	mt.Run("upsert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		cart := &models.Cart{
			UserID: "u1",
			Items:  []models.CartItem{{ProductID: 4, Quantity: 3}},
		}
		if err := NewMongoCartRepository(mt.Coll).Save(context.Background(), cart); err != nil {
			mt.Fatalf("save failed: %v", err)
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "update" {
			mt.Fatalf("want update command, got %+v", started)
		}
		update := started.Command.Lookup("updates").Array().Lookup("0").Document()
		if got := update.Lookup("q", "userId").StringValue(); got != "u1" {
			mt.Fatalf("want filter on userId u1 got %q", got)
		}
		if upsert, ok := update.Lookup("upsert").BooleanOK(); !ok || !upsert {
			mt.Fatalf("replace should be an upsert")
		}
		if _, ok := update.Lookup("multi").BooleanOK(); ok {
			mt.Fatalf("replace must target a single document")
		}
		replacement := update.Lookup("u").Document()
		if got := replacement.Lookup("userId").StringValue(); got != "u1" {
			mt.Fatalf("replacement userId want u1 got %q", got)
		}
		if got := replacement.Lookup("items", "0", "quantity").Int32(); got != 3 {
			mt.Fatalf("replacement quantity want 3 got %d", got)
		}
	})
}

func TestMongoCartRepositorySaveNormalizesNilItems(t *testing.T) {
	mt := newMockCartCollectionTest(t)
	mt.Run("nil items", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		cart := &models.Cart{UserID: "u3"}
		if err := NewMongoCartRepository(mt.Coll).Save(context.Background(), cart); err != nil {
			mt.Fatalf("save failed: %v", err)
		}
		items := mt.GetStartedEvent().Command.Lookup("updates").Array().Lookup("0").Document().Lookup("u", "items")
		if _, ok := items.ArrayOK(); !ok {
			mt.Fatalf("items should be stored as an array, got %v", items.Type)
		}
	})
}
