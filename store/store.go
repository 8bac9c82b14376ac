package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"golang.org/x/sync/errgroup"

	"github.com/jacentio/dynacrud/query"
)

// Store executes query descriptors against a DynamoDB table.
type Store struct {
	client Client
	config Config
	logger *slog.Logger
}

// New creates a new Store instance.
func New(client Client, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
		logger: slog.Default(),
	}
}

// Open loads the default AWS configuration and creates a Store backed by
// a DynamoDB client built from it.
func Open(ctx context.Context, config Config, optFns ...func(*awsconfig.LoadOptions) error) (*Store, error) {
	if config.TableName == "" {
		return nil, ErrEmptyTableName
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return New(dynamodb.NewFromConfig(cfg), config), nil
}

// SetLogger sets the logger. A nil logger restores slog.Default().
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	s.logger = logger
}

// Config returns the validated configuration.
func (s *Store) Config() Config {
	return s.config
}

// Queries returns a query builder bound to the store's key schema.
func (s *Store) Queries() *query.Builder {
	return query.New(s.config.Schema())
}

// Invoke executes a single query.
//
// Reads of a missing item yield NotFound. Conditional writes whose
// condition does not hold yield ConditionNotMet. Both are results, not
// errors; any other store error is returned as is.
func (s *Store) Invoke(ctx context.Context, q query.Query) (Result, error) {
	if s.config.TableName == "" {
		return Result{}, ErrEmptyTableName
	}
	if !q.Action.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedAction, q.Action)
	}

	w, err := marshalRequest(s.config.TableName, q.Action, q.Request)
	if err != nil {
		return Result{}, err
	}

	s.logger.Debug("invoke",
		"action", q.Action,
		"hash", q.Key.Hash,
		"range", q.Key.Range,
	)

	switch q.Action {
	case query.ActionGet:
		out, err := s.client.GetItem(ctx, w.getInput())
		if err != nil {
			return Result{}, err
		}
		if out == nil || out.Item == nil {
			return Result{Status: NotFound}, nil
		}
		rec, err := unmarshalRecord(out.Item)
		if err != nil {
			return Result{}, err
		}
		return Result{Status: Done, Item: rec}, nil

	case query.ActionPut:
		_, err := s.client.PutItem(ctx, w.putInput())
		o, err := guard(err)
		if err != nil {
			return Result{}, err
		}
		if o == conditionNotMet {
			return Result{Status: ConditionNotMet}, nil
		}
		return Result{Status: Done, Item: q.Request.Item}, nil

	case query.ActionDelete:
		_, err := s.client.DeleteItem(ctx, w.deleteInput())
		o, err := guard(err)
		if err != nil {
			return Result{}, err
		}
		if o == conditionNotMet {
			return Result{Status: ConditionNotMet}, nil
		}
		return Result{Status: Done, Item: query.Record{}}, nil

	case query.ActionQuery:
		return s.query(ctx, w.queryInput())

	case query.ActionUpdate:
		_, err := s.client.UpdateItem(ctx, w.updateInput())
		o, err := guard(err)
		if err != nil {
			return Result{}, err
		}
		if o == conditionNotMet {
			return Result{Status: ConditionNotMet}, nil
		}
		// Read back the stored item rather than trusting the update output.
		return s.Invoke(ctx, query.Query{
			Schema: q.Schema,
			Action: query.ActionGet,
			Key:    q.Key,
			Request: query.Request{
				Key:            q.Request.Key,
				ConsistentRead: aws.Bool(true),
			},
		})
	}

	return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedAction, q.Action)
}

// InvokeAll executes queries concurrently and returns their results in
// input order. The first error fails the whole call and cancels the
// context passed to the remaining queries.
func (s *Store) InvokeAll(ctx context.Context, queries []query.Query) ([]Result, error) {
	results := make([]Result, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			r, err := s.Invoke(ctx, q)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// query runs a key-condition query. Without a Limit every page is read.
func (s *Store) query(ctx context.Context, input *dynamodb.QueryInput) (Result, error) {
	var pages []*dynamodb.QueryOutput

	if input.Limit != nil {
		out, err := s.client.Query(ctx, input)
		if err != nil {
			return Result{}, err
		}
		pages = append(pages, out)
	} else {
		paginator := dynamodb.NewQueryPaginator(s.client, input)
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return Result{}, err
			}
			pages = append(pages, page)
		}
	}

	counted := true
	count := 0
	var raw []map[string]types.AttributeValue
	for _, page := range pages {
		if page == nil {
			continue
		}
		if page.Items != nil {
			counted = false
		}
		raw = append(raw, page.Items...)
		count += int(page.Count)
	}

	if counted {
		return Result{Status: Done, Count: count, Counted: true}, nil
	}

	items, err := unmarshalRecords(raw)
	if err != nil {
		return Result{}, err
	}
	return Result{Status: Done, Items: items, Count: len(items)}, nil
}
