package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/dynacrud/internal/chunk"
	"github.com/jacentio/dynacrud/query"
)

// Batch writes put and delete queries with BatchWriteItem, ChunkSize
// requests per call. Groups run one after another; a failing group stops
// the remaining ones and earlier groups stay written.
//
// Conditions are not evaluated by batch writes. The returned records are
// the items carried by each query's own request, in input order (nil for
// deletes); nothing is read back.
//
// Items the store leaves unprocessed are not retried. Their count is logged
// at Warn and they are still part of the returned records, so a caller
// that needs every write applied must verify them with reads.
func (s *Store) Batch(ctx context.Context, queries []query.Query) ([]query.Record, error) {
	if s.config.TableName == "" {
		return nil, ErrEmptyTableName
	}

	requests := make([]types.WriteRequest, 0, len(queries))
	for i, q := range queries {
		w, err := marshalRequest(s.config.TableName, q.Action, q.Request)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		req, err := w.writeRequest(q.Action)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		requests = append(requests, req)
	}

	s.logger.Debug("batch write",
		"table", s.config.TableName,
		"requests", len(requests),
		"groups", chunk.Count(len(requests), s.config.ChunkSize),
	)

	for n, group := range chunk.Chunk(requests, s.config.ChunkSize) {
		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.config.TableName: group,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("batch group %d: %w", n, err)
		}
		if out != nil {
			if unprocessed := len(out.UnprocessedItems[s.config.TableName]); unprocessed > 0 {
				s.logger.Warn("batch write left unprocessed items",
					"table", s.config.TableName,
					"group", n,
					"unprocessed", unprocessed,
				)
			}
		}
	}

	return itemsOf(queries), nil
}

// Transact writes put, update and delete queries with TransactWriteItems,
// ChunkSize operations per call, groups in order. A group whose condition
// fails is cancelled as a whole and skipped without error; the store
// does not report which member failed.
//
// The returned records are the items carried by each query's own request,
// in input order, regardless of whether its group was applied.
func (s *Store) Transact(ctx context.Context, queries ...query.Query) ([]query.Record, error) {
	if s.config.TableName == "" {
		return nil, ErrEmptyTableName
	}

	items := make([]types.TransactWriteItem, 0, len(queries))
	for i, q := range queries {
		w, err := marshalRequest(s.config.TableName, q.Action, q.Request)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		item, err := w.transactItem(q.Action)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		items = append(items, item)
	}

	s.logger.Debug("transact write",
		"table", s.config.TableName,
		"operations", len(items),
		"groups", chunk.Count(len(items), s.config.ChunkSize),
	)

	for n, group := range chunk.Chunk(items, s.config.ChunkSize) {
		_, err := s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
			TransactItems: group,
		})
		o, err := guard(err)
		if err != nil {
			return nil, fmt.Errorf("transact group %d: %w", n, err)
		}
		if o == conditionNotMet {
			s.logger.Info("transaction group condition not met",
				"table", s.config.TableName,
				"group", n,
				"size", len(group),
			)
		}
	}

	return itemsOf(queries), nil
}

func itemsOf(queries []query.Query) []query.Record {
	items := make([]query.Record, len(queries))
	for i, q := range queries {
		items[i] = q.Item()
	}
	return items
}
