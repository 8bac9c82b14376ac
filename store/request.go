package store

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/dynacrud/query"
)

// wireRequest is a query.Request with its logical values marshalled.
type wireRequest struct {
	table  string
	req    query.Request
	key    map[string]types.AttributeValue
	item   map[string]types.AttributeValue
	names  map[string]string
	values map[string]types.AttributeValue
	filter *string
}

// marshalRequest marshals Key, Item and ExpressionAttributeValues, and
// compiles the optional filter into the name/value maps. Only query
// actions may carry a filter.
func marshalRequest(table string, action query.Action, req query.Request) (*wireRequest, error) {
	if req.Filter != nil && action != query.ActionQuery {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFilter, action)
	}
	w := &wireRequest{table: table, req: req}

	var err error
	if req.Key != nil {
		if w.key, err = attributevalue.MarshalMap(req.Key); err != nil {
			return nil, fmt.Errorf("marshal key: %w", err)
		}
	}
	if req.Item != nil {
		if w.item, err = attributevalue.MarshalMap(req.Item); err != nil {
			return nil, fmt.Errorf("marshal item: %w", err)
		}
	}
	if len(req.ExpressionAttributeValues) > 0 {
		if w.values, err = attributevalue.MarshalMap(req.ExpressionAttributeValues); err != nil {
			return nil, fmt.Errorf("marshal expression values: %w", err)
		}
	}
	if len(req.ExpressionAttributeNames) > 0 {
		w.names = make(map[string]string, len(req.ExpressionAttributeNames))
		for k, v := range req.ExpressionAttributeNames {
			w.names[k] = v
		}
	}

	if req.Filter != nil {
		expr, err := expression.NewBuilder().WithFilter(*req.Filter).Build()
		if err != nil {
			return nil, fmt.Errorf("build filter: %w", err)
		}
		w.filter = expr.Filter()
		w.names = mergeExprNames(w.names, expr.Names())
		w.values = mergeExprValues(w.values, expr.Values())
	}

	return w, nil
}

func (w *wireRequest) getInput() *dynamodb.GetItemInput {
	return &dynamodb.GetItemInput{
		TableName:                aws.String(w.table),
		Key:                      w.key,
		ConsistentRead:           w.req.ConsistentRead,
		ProjectionExpression:     optString(w.req.ProjectionExpression),
		ExpressionAttributeNames: w.names,
		ReturnConsumedCapacity:   types.ReturnConsumedCapacity(w.req.ReturnConsumedCapacity),
	}
}

func (w *wireRequest) putInput() *dynamodb.PutItemInput {
	return &dynamodb.PutItemInput{
		TableName:                 aws.String(w.table),
		Item:                      w.item,
		ConditionExpression:       optString(w.req.ConditionExpression),
		ExpressionAttributeNames:  w.names,
		ExpressionAttributeValues: w.values,
		ReturnValues:              types.ReturnValue(w.req.ReturnValues),
		ReturnConsumedCapacity:    types.ReturnConsumedCapacity(w.req.ReturnConsumedCapacity),
	}
}

func (w *wireRequest) updateInput() *dynamodb.UpdateItemInput {
	return &dynamodb.UpdateItemInput{
		TableName:                 aws.String(w.table),
		Key:                       w.key,
		UpdateExpression:          optString(w.req.UpdateExpression),
		ConditionExpression:       optString(w.req.ConditionExpression),
		ExpressionAttributeNames:  w.names,
		ExpressionAttributeValues: w.values,
		ReturnValues:              types.ReturnValue(w.req.ReturnValues),
		ReturnConsumedCapacity:    types.ReturnConsumedCapacity(w.req.ReturnConsumedCapacity),
	}
}

func (w *wireRequest) deleteInput() *dynamodb.DeleteItemInput {
	return &dynamodb.DeleteItemInput{
		TableName:                 aws.String(w.table),
		Key:                       w.key,
		ConditionExpression:       optString(w.req.ConditionExpression),
		ExpressionAttributeNames:  w.names,
		ExpressionAttributeValues: w.values,
		ReturnValues:              types.ReturnValue(w.req.ReturnValues),
		ReturnConsumedCapacity:    types.ReturnConsumedCapacity(w.req.ReturnConsumedCapacity),
	}
}

func (w *wireRequest) queryInput() *dynamodb.QueryInput {
	in := &dynamodb.QueryInput{
		TableName:                 aws.String(w.table),
		IndexName:                 optString(w.req.IndexName),
		KeyConditionExpression:    optString(w.req.KeyConditionExpression),
		FilterExpression:          w.filter,
		ProjectionExpression:      optString(w.req.ProjectionExpression),
		ExpressionAttributeNames:  w.names,
		ExpressionAttributeValues: w.values,
		Select:                    types.Select(w.req.Select),
		ConsistentRead:            w.req.ConsistentRead,
		ScanIndexForward:          w.req.ScanIndexForward,
		ReturnConsumedCapacity:    types.ReturnConsumedCapacity(w.req.ReturnConsumedCapacity),
	}
	if w.req.Limit > 0 {
		in.Limit = aws.Int32(w.req.Limit)
	}
	return in
}

// writeRequest is the batch sub-request for a put or delete.
func (w *wireRequest) writeRequest(action query.Action) (types.WriteRequest, error) {
	switch action {
	case query.ActionPut:
		return types.WriteRequest{PutRequest: &types.PutRequest{Item: w.item}}, nil
	case query.ActionDelete:
		return types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: w.key}}, nil
	}
	return types.WriteRequest{}, fmt.Errorf("%w: %q in batch", ErrUnsupportedAction, action)
}

// transactItem is the transaction operation for a put, update or delete.
func (w *wireRequest) transactItem(action query.Action) (types.TransactWriteItem, error) {
	switch action {
	case query.ActionPut:
		return types.TransactWriteItem{Put: &types.Put{
			TableName:                 aws.String(w.table),
			Item:                      w.item,
			ConditionExpression:       optString(w.req.ConditionExpression),
			ExpressionAttributeNames:  w.names,
			ExpressionAttributeValues: w.values,
		}}, nil
	case query.ActionUpdate:
		return types.TransactWriteItem{Update: &types.Update{
			TableName:                 aws.String(w.table),
			Key:                       w.key,
			UpdateExpression:          optString(w.req.UpdateExpression),
			ConditionExpression:       optString(w.req.ConditionExpression),
			ExpressionAttributeNames:  w.names,
			ExpressionAttributeValues: w.values,
		}}, nil
	case query.ActionDelete:
		return types.TransactWriteItem{Delete: &types.Delete{
			TableName:                 aws.String(w.table),
			Key:                       w.key,
			ConditionExpression:       optString(w.req.ConditionExpression),
			ExpressionAttributeNames:  w.names,
			ExpressionAttributeValues: w.values,
		}}, nil
	}
	return types.TransactWriteItem{}, fmt.Errorf("%w: %q in transaction", ErrUnsupportedAction, action)
}

func unmarshalRecord(item map[string]types.AttributeValue) (query.Record, error) {
	rec := query.Record{}
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return rec, nil
}

func unmarshalRecords(items []map[string]types.AttributeValue) ([]query.Record, error) {
	recs := make([]query.Record, 0, len(items))
	for _, item := range items {
		rec, err := unmarshalRecord(item)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

// mergeExprNames merges multiple expression attribute name maps.
func mergeExprNames(maps ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			result[k] = v
		}
	}
	return result
}

// mergeExprValues merges multiple expression attribute value maps.
func mergeExprValues(maps ...map[string]types.AttributeValue) map[string]types.AttributeValue {
	result := make(map[string]types.AttributeValue)
	for _, m := range maps {
		for k, v := range m {
			result[k] = v
		}
	}
	return result
}
