package query

import (
	"strconv"
	"strings"

	"github.com/jacentio/dynacrud/key"
)

// Fixed request values set by the builder.
const (
	SelectCount     = "COUNT"
	ReturnValuesNew = "ALL_NEW"
)

// Builder shapes queries under one key schema.
type Builder struct {
	schema key.Schema
}

// New creates a Builder. Empty schema fields fall back to the defaults.
func New(schema key.Schema) *Builder {
	return &Builder{schema: schema.Normalize()}
}

// Schema returns the normalized schema the builder is bound to.
func (b *Builder) Schema() key.Schema {
	return b.schema
}

// Get reads the item at spec.
func (b *Builder) Get(spec key.Spec, opts ...Options) Query {
	k := key.Resolve(b.schema, spec)
	req := Request{Key: b.keyRecord(k)}
	return b.finish(ActionGet, k, req, nil, opts)
}

// Post writes body at spec only if no item exists there yet.
func (b *Builder) Post(spec key.Spec, body Body, opts ...Options) Query {
	return b.write(spec, body, b.absentCondition(), opts)
}

// Put replaces the item at spec with body; the item must already exist.
func (b *Builder) Put(spec key.Spec, body Body, opts ...Options) Query {
	return b.write(spec, body, b.existsCondition(), opts)
}

// Patch sets the body fields on the existing item at spec and asks for
// the updated item back.
func (b *Builder) Patch(spec key.Spec, body Body, opts ...Options) Query {
	k := key.Resolve(b.schema, spec)
	order, rec := body.evaluate()

	names := b.keyNames()
	values := b.keyValues(k)
	var clauses []string
	for _, name := range order {
		if name == b.schema.HashKeyName || name == b.schema.RangeKeyName {
			continue
		}
		token := placeholder(name, rec, names)
		names["#"+token] = name
		values[":"+token] = rec[name]
		clauses = append(clauses, "#"+token+" = :"+token)
	}

	req := Request{
		Key:                       b.keyRecord(k),
		ConditionExpression:       b.existsCondition(),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              ReturnValuesNew,
	}
	if len(clauses) > 0 {
		req.UpdateExpression = "SET " + strings.Join(clauses, ", ")
	}
	return b.finish(ActionUpdate, k, req, rec, opts)
}

// Delete removes the existing item at spec. An already resolved key, such
// as one taken from a fetched entity, can be passed as a key.Key.
func (b *Builder) Delete(spec key.Spec, opts ...Options) Query {
	k := key.Resolve(b.schema, spec)
	req := Request{
		Key:                       b.keyRecord(k),
		ConditionExpression:       b.existsCondition(),
		ExpressionAttributeNames:  b.keyNames(),
		ExpressionAttributeValues: b.keyValues(k),
	}
	return b.finish(ActionDelete, k, req, nil, opts)
}

// List queries every item under the hash of spec whose range starts with
// the range of spec.
func (b *Builder) List(spec key.Spec, opts ...Options) Query {
	k := key.Resolve(b.schema, spec)
	return b.finish(ActionQuery, k, b.prefixRequest(k), nil, opts)
}

// Count is List returning only the number of matching items.
func (b *Builder) Count(spec key.Spec, opts ...Options) Query {
	q := b.List(spec, opts...)
	q.Request.Select = SelectCount
	return q
}

func (b *Builder) write(spec key.Spec, body Body, condition string, opts []Options) Query {
	k := key.Resolve(b.schema, spec)
	_, rec := body.evaluate()

	item := make(Record, len(rec)+2)
	for name, v := range rec {
		item[name] = v
	}
	for name, v := range b.keyRecord(k) {
		item[name] = v
	}

	req := Request{
		Item:                      item,
		ConditionExpression:       condition,
		ExpressionAttributeNames:  b.keyNames(),
		ExpressionAttributeValues: b.keyValues(k),
	}
	return b.finish(ActionPut, k, req, rec, opts)
}

// placeholder returns the token naming a body field in an update
// expression. Field names outside [A-Za-z0-9_] get a positional "fN"
// token that collides with no body field and no token already in use.
func placeholder(name string, body Record, names map[string]string) string {
	if validToken(name) {
		return name
	}
	for i := 0; ; i++ {
		token := "f" + strconv.Itoa(i)
		if _, used := names["#"+token]; used {
			continue
		}
		if _, field := body[token]; field {
			continue
		}
		return token
	}
}

func validToken(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r != '_' && (r < '0' || r > '9') && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func (b *Builder) prefixRequest(k key.Key) Request {
	h, r := b.schema.HashKeyName, b.schema.RangeKeyName
	return Request{
		KeyConditionExpression:    "#" + h + " = :" + h + " AND begins_with(#" + r + ", :" + r + ")",
		ExpressionAttributeNames:  b.keyNames(),
		ExpressionAttributeValues: b.keyValues(k),
	}
}

func (b *Builder) finish(action Action, k key.Key, req Request, body Record, opts []Options) Query {
	for _, o := range opts {
		o.apply(&req)
	}
	return Query{
		Schema:  b.schema,
		Action:  action,
		Key:     k,
		Request: req,
		Body:    body,
	}
}

// existsCondition holds when the item at the key already exists.
func (b *Builder) existsCondition() string {
	return b.keyCondition("=")
}

// absentCondition holds when no item exists at the key yet.
func (b *Builder) absentCondition() string {
	return b.keyCondition("<>")
}

func (b *Builder) keyCondition(op string) string {
	h, r := b.schema.HashKeyName, b.schema.RangeKeyName
	return "#" + h + " " + op + " :" + h + " AND #" + r + " " + op + " :" + r
}

func (b *Builder) keyRecord(k key.Key) Record {
	return Record(k.Record(b.schema))
}

func (b *Builder) keyNames() map[string]string {
	h, r := b.schema.HashKeyName, b.schema.RangeKeyName
	return map[string]string{
		"#" + h: h,
		"#" + r: r,
	}
}

func (b *Builder) keyValues(k key.Key) map[string]any {
	return map[string]any{
		":" + b.schema.HashKeyName:  k.Hash,
		":" + b.schema.RangeKeyName: k.Range,
	}
}
