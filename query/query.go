// Package query builds store-agnostic query descriptors.
//
// A [Builder] is bound to a [key.Schema]. Each operation resolves its key
// spec, shapes the request fields a DynamoDB-style store expects and
// returns an immutable [Query]. Building never performs I/O; executing a
// Query is the job of the store package.
//
// Every attribute name and value in an expression goes through a
// placeholder: "#name" in ExpressionAttributeNames and ":name" in
// ExpressionAttributeValues. Reserved words never need special casing.
package query

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"

	"github.com/jacentio/dynacrud/key"
)

// Action is the store action a Query dispatches to.
type Action string

const (
	ActionGet    Action = "get"
	ActionPut    Action = "put"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionQuery  Action = "query"
)

// Valid reports whether a is one of the known store actions.
func (a Action) Valid() bool {
	switch a {
	case ActionGet, ActionPut, ActionUpdate, ActionDelete, ActionQuery:
		return true
	}
	return false
}

// Record is a logical (unmarshalled) item.
type Record map[string]any

// Query is a built descriptor. It is consumed once by a store.
type Query struct {
	Schema  key.Schema
	Action  Action
	Key     key.Key
	Request Request

	// Body is the evaluated write body; nil for reads and deletes.
	Body Record
}

// Item returns the item carried by the request, or nil.
func (q Query) Item() Record {
	return q.Request.Item
}

// Request holds the store-shaped fields of a Query.
type Request struct {
	Key  Record
	Item Record

	ConditionExpression    string
	UpdateExpression       string
	KeyConditionExpression string
	ProjectionExpression   string

	ExpressionAttributeNames  map[string]string
	ExpressionAttributeValues map[string]any

	IndexName              string
	Select                 string
	ReturnValues           string
	ReturnConsumedCapacity string
	ConsistentRead         *bool
	ScanIndexForward       *bool
	Limit                  int32

	// Filter is compiled into a FilterExpression when the query runs.
	Filter *expression.ConditionBuilder
}

// Options are pass-through request fields supplied by the caller.
// Non-zero fields override what the builder set.
type Options struct {
	IndexName              string
	Select                 string
	ReturnValues           string
	ReturnConsumedCapacity string
	ProjectionExpression   string
	ConsistentRead         *bool
	ScanIndexForward       *bool
	Limit                  int32
	Filter                 *expression.ConditionBuilder
}

// apply merges o into r.
func (o Options) apply(r *Request) {
	if o.IndexName != "" {
		r.IndexName = o.IndexName
	}
	if o.Select != "" {
		r.Select = o.Select
	}
	if o.ReturnValues != "" {
		r.ReturnValues = o.ReturnValues
	}
	if o.ReturnConsumedCapacity != "" {
		r.ReturnConsumedCapacity = o.ReturnConsumedCapacity
	}
	if o.ProjectionExpression != "" {
		r.ProjectionExpression = o.ProjectionExpression
	}
	if o.ConsistentRead != nil {
		r.ConsistentRead = o.ConsistentRead
	}
	if o.ScanIndexForward != nil {
		r.ScanIndexForward = o.ScanIndexForward
	}
	if o.Limit > 0 {
		r.Limit = o.Limit
	}
	if o.Filter != nil {
		r.Filter = o.Filter
	}
}
