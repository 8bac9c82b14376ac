package stream

import (
	"strconv"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/dynacrud/query"
)

// DecodeImage converts a stream image into a record. A nil image stays nil.
func DecodeImage(image map[string]events.DynamoDBAttributeValue) query.Record {
	if image == nil {
		return nil
	}
	rec := make(query.Record, len(image))
	for name, v := range image {
		rec[name] = Decode(v)
	}
	return rec
}

// Decode converts a stream attribute value into its logical value:
//
//	S     string
//	N     float64, or the raw string if it does not parse
//	B     []byte
//	BOOL  bool
//	NULL  nil
//	L     []any
//	M     map[string]any
//	SS    []string
//	NS    []float64, or []string if any member does not parse
//	BS    [][]byte
func Decode(v events.DynamoDBAttributeValue) any {
	switch v.DataType() {
	case events.DataTypeString:
		return v.String()
	case events.DataTypeNumber:
		return decodeNumber(v.Number())
	case events.DataTypeBinary:
		return v.Binary()
	case events.DataTypeBoolean:
		return v.Boolean()
	case events.DataTypeNull:
		return nil
	case events.DataTypeList:
		list := v.List()
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = Decode(item)
		}
		return out
	case events.DataTypeMap:
		m := v.Map()
		out := make(map[string]any, len(m))
		for name, item := range m {
			out[name] = Decode(item)
		}
		return out
	case events.DataTypeStringSet:
		return v.StringSet()
	case events.DataTypeNumberSet:
		return decodeNumberSet(v.NumberSet())
	case events.DataTypeBinarySet:
		return v.BinarySet()
	}
	return nil
}

func decodeNumber(s string) any {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return f
}

func decodeNumberSet(ss []string) any {
	out := make([]float64, len(ss))
	for i, s := range ss {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ss
		}
		out[i] = f
	}
	return out
}
