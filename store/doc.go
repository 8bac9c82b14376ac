// Package store executes query descriptors against a DynamoDB table.
//
// Queries are shaped by the query package and handed to a [Store], which
// marshals their Key, Item and ExpressionAttributeValues, adds the table
// name and dispatches on the query action. The store never retries and
// never imposes a deadline; both belong to the client and the caller's
// context.
//
// # Operations
//
//   - [Store.Invoke] runs one query and returns a [Result].
//   - [Store.InvokeAll] runs many queries concurrently, all or nothing.
//   - [Store.Batch] sends puts and deletes through BatchWriteItem.
//   - [Store.Transact] sends puts, updates and deletes through
//     TransactWriteItems.
//
// Batch and Transact split their input into groups of at most
// [MaxChunkSize] and send the groups strictly one after another.
//
// # Outcomes
//
// Expected outcomes are reported as a [Status], not as errors:
//
//   - [NotFound] - get found no item
//   - [ConditionNotMet] - a conditional write was rejected by the store
//
// # Configuration
//
//	cfg := store.DefaultConfig()
//	cfg.TableName = "records"
//	s := store.New(dynamodb.NewFromConfig(awsCfg), cfg)
//
//	q := s.Queries().Post(key.Parts{"user", "42"}, query.Body{}.Set("name", "Ada"))
//	res, err := s.Invoke(ctx, q)
//
// # Errors
//
//   - [ErrUnsupportedAction] - the query action cannot be dispatched
//   - [ErrEmptyTableName] - no table configured
//   - [ErrUnsupportedFilter] - a filter on anything but a list or count
package store
