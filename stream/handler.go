// Package stream decodes DynamoDB Streams events into logical changes.
//
// A Handler turns each stream record into a [Change] whose key is read with
// the same [key.Schema] the store writes with, and whose images are plain
// records, as returned by the store's reads.
package stream

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/dynacrud/key"
	"github.com/jacentio/dynacrud/query"
)

// Stream event names.
const (
	EventInsert = "INSERT"
	EventModify = "MODIFY"
	EventRemove = "REMOVE"
)

// Change is one decoded stream record. Old is nil for inserts and New is
// nil for removes, or whenever the stream view type omits the image.
type Change struct {
	EventID   string
	EventName string
	Key       key.Key
	Old       query.Record
	New       query.Record
}

// Func consumes a single change.
type Func func(ctx context.Context, c Change) error

// Handler processes DynamoDB stream events record by record.
type Handler struct {
	schema key.Schema
	fn     Func
	logger *slog.Logger
}

// NewHandler creates a new stream handler.
func NewHandler(schema key.Schema, fn Func, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		schema: schema.Normalize(),
		fn:     fn,
		logger: logger,
	}
}

// HandleEvent decodes and dispatches every record in order.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleEvent(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"eventName", record.EventName,
				"error", err,
			)
			return err // Lambda retries the batch
		}
	}
	return nil
}

func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	c := h.Decode(record)
	if h.fn == nil {
		return nil
	}
	if err := h.fn(ctx, c); err != nil {
		return fmt.Errorf("%s %s: %w", c.EventName, c.Key, err)
	}
	return nil
}

// Decode converts a stream record into a Change.
func (h *Handler) Decode(record events.DynamoDBEventRecord) Change {
	return Change{
		EventID:   record.EventID,
		EventName: record.EventName,
		Key:       DecodeKey(h.schema, record.Change.Keys),
		Old:       DecodeImage(record.Change.OldImage),
		New:       DecodeImage(record.Change.NewImage),
	}
}

// DecodeKey reads the hash and range attributes named by the schema.
// Non-string key attributes are formatted with their logical value.
func DecodeKey(s key.Schema, keys map[string]events.DynamoDBAttributeValue) key.Key {
	s = s.Normalize()
	return key.Key{
		Hash:  keyPart(keys, s.HashKeyName),
		Range: keyPart(keys, s.RangeKeyName),
	}
}

func keyPart(keys map[string]events.DynamoDBAttributeValue, name string) string {
	v, ok := keys[name]
	if !ok {
		return ""
	}
	if v.DataType() == events.DataTypeString {
		return v.String()
	}
	return fmt.Sprint(Decode(v))
}
