package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/segmentio/kafka-go"

	"casepilot/models"
	"casepilot/utils"
)

// ClientEvent is the payload published on the client_events topic. Saves
// carry the full client; deletes carry only the ifa number.
type ClientEvent struct {
	Event     string        `json:"event"`
	Data      models.Client `json:"data"`
	IfaNumber string        `json:"ifa_number"`
}

// ClientConsumer keeps the redis cache and the elasticsearch index in
// step with client mutations. The relational store is the system of
// record and is written by the handlers; this consumer only maintains the
// projections.
type ClientConsumer struct {
	cache    utils.RedisClient
	es       utils.ElasticsearchClient
	reader   *kafka.Reader
	shutdown chan struct{}
}

func NewClientConsumer(cache utils.RedisClient, es utils.ElasticsearchClient) *ClientConsumer {
	return &ClientConsumer{
		cache: cache,
		es:    es,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: []string{os.Getenv("KAFKA_BROKER")},
			Topic:   "client_events",
			GroupID: "casepilot-group",
			MaxWait: 10 * time.Second,
		}),
		shutdown: make(chan struct{}),
	}
}

func (c *ClientConsumer) Start(ctx context.Context) {
	log.Println("Starting Kafka consumer...")

	go func() {
		for {
			select {
			case <-c.shutdown:
				return
			default:
				c.processMessages(ctx)
			}
		}
	}()
}

func (c *ClientConsumer) Stop() {
	close(c.shutdown)
	if err := c.reader.Close(); err != nil {
		log.Printf("Error closing Kafka reader: %v", err)
	}
}

func (c *ClientConsumer) processMessages(ctx context.Context) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if err == context.Canceled {
			return
		}
		log.Printf("Kafka read error: %v (will retry)", err)
		time.Sleep(5 * time.Second)
		return
	}

	var event ClientEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Printf("Failed to unmarshal Kafka message: %v", err)
		return
	}

	c.dispatch(ctx, event)
}

func (c *ClientConsumer) dispatch(ctx context.Context, event ClientEvent) {
	switch event.Event {
	case "client_saved":
		c.handleClientSaved(ctx, event.Data)
	case "client_deleted":
		c.handleClientDeleted(ctx, event.IfaNumber)
	default:
		log.Printf("Unknown event type: %s", event.Event)
	}
}

func (c *ClientConsumer) handleClientSaved(ctx context.Context, client models.Client) {
	cacheKey := fmt.Sprintf("client:%s", client.IfaNumber)
	clientJSON, err := json.Marshal(client)
	if err != nil {
		log.Printf("Failed to marshal client to JSON: %v", err)
		return
	}

	if err := c.cache.SetToCache(ctx, cacheKey, string(clientJSON), 24*time.Hour); err != nil {
		log.Printf("Failed to cache client: %v", err)
	}

	if c.es != nil {
		if err := c.es.IndexRecord(ctx, "clients", client.IfaNumber, client); err != nil {
			log.Printf("Failed to index client in Elasticsearch: %v", err)
		}
	}

	log.Printf("Processed client_saved event for ifa number %s", client.IfaNumber)
}

func (c *ClientConsumer) handleClientDeleted(ctx context.Context, ifaNumber string) {
	cacheKey := fmt.Sprintf("client:%s", ifaNumber)
	if err := c.cache.DeleteFromCache(ctx, cacheKey); err != nil {
		log.Printf("Failed to delete client from cache: %v", err)
	}

	if c.es != nil {
		if err := c.es.DeleteRecord(ctx, "clients", ifaNumber); err != nil {
			log.Printf("Failed to delete client from Elasticsearch: %v", err)
		}
	}

	log.Printf("Processed client_deleted event for ifa number %s", ifaNumber)
}
