package cache

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/models"
)

// Redis-backed cache for public card lookups. Shared share-links get hit
// far more often than cards change, so the public read path checks here
// first. Everything is best-effort: a cache failure never fails a request.

var client *redis.Client

const cardTTL = 5 * time.Minute

func Init() {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		log.Println("REDIS_URL not set, public card cache disabled")
		return
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Println("invalid REDIS_URL, public card cache disabled:", err)
		return
	}
	client = redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Println("redis unreachable, public card cache disabled:", err)
		client = nil
		return
	}
	log.Println("(SUCCESS): connected to redis cache")
}

func cardKey(id string) string { return "card:" + id }

// GetCard returns the cached public card, or false on miss or any error.
func GetCard(ctx context.Context, id string) (models.Card, bool) {
	var card models.Card
	if client == nil {
		return card, false
	}
	raw, err := client.Get(ctx, cardKey(id)).Bytes()
	if err != nil {
		return card, false
	}
	if err := json.Unmarshal(raw, &card); err != nil {
		return card, false
	}
	return card, true
}

// SetCard stores the public card with a short TTL.
func SetCard(ctx context.Context, card models.Card) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(card)
	if err != nil {
		return
	}
	_ = client.Set(ctx, cardKey(card.ID), raw, cardTTL).Err()
}

// DropCard invalidates a card after an update or delete.
func DropCard(ctx context.Context, id string) {
	if client == nil {
		return
	}
	_ = client.Del(ctx, cardKey(id)).Err()
}
