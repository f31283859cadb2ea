package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/storefront-api/internal/config"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCartIndexModelsTTL(t *testing.T) {
	models := CartIndexModels(7 * 24 * time.Hour)
	if len(models) != 2 {
		t.Fatalf("want 2 index models got %d", len(models))
	}

	userKeys, ok := models[0].Keys.(bson.D)
	if !ok || len(userKeys) != 1 || userKeys[0].Key != "userId" {
		t.Fatalf("unexpected user index keys: %#v", models[0].Keys)
	}
	if models[0].Options.Unique == nil || !*models[0].Options.Unique {
		t.Fatalf("user index should be unique")
	}

	ttlKeys, ok := models[1].Keys.(bson.D)
	if !ok || len(ttlKeys) != 1 || ttlKeys[0].Key != "updatedAt" {
		t.Fatalf("unexpected ttl index keys: %#v", models[1].Keys)
	}
	expire := models[1].Options.ExpireAfterSeconds
	if expire == nil || *expire != 604800 {
		t.Fatalf("want expireAfterSeconds 604800 got %v", expire)
	}
}

func TestConnectRejectsEmptyURI(t *testing.T) {
	if _, err := Connect(context.Background(), config.MongoConfig{URI: "  "}); err == nil {
		t.Fatalf("expected error for empty uri")
	}
}

func TestCloseNil(t *testing.T) {
	var m *Mongo
	if err := m.Close(context.Background()); err != nil {
		t.Fatalf("close nil mongo: %v", err)
	}
}
