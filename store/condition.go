package store

import (
	"errors"
	"net/http"
	"strings"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

const (
	conditionalCheckFailed     = "ConditionalCheckFailed"
	conditionalCheckFailedType = conditionalCheckFailed + "Exception"
)

// outcome is the typed result of a conditional write.
type outcome int

const (
	succeeded outcome = iota
	conditionNotMet
)

// guard turns a conditional-check failure into conditionNotMet. Any other
// error is returned unchanged.
func guard(err error) (outcome, error) {
	if err == nil {
		return succeeded, nil
	}
	if IsConditionFailed(err) {
		return conditionNotMet, nil
	}
	return succeeded, err
}

// IsConditionFailed reports whether err is the store rejecting a write
// because its condition expression did not hold.
func IsConditionFailed(err error) bool {
	if err == nil {
		return false
	}

	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return true
	}

	var txErr *types.TransactionCanceledException
	if errors.As(err, &txErr) {
		for _, reason := range txErr.CancellationReasons {
			if reason.Code != nil && *reason.Code == conditionalCheckFailed {
				return true
			}
		}
		return false
	}

	// Unmodeled transports: a 400 whose type identifier carries the suffix.
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) || !strings.HasSuffix(apiErr.ErrorCode(), conditionalCheckFailedType) {
		return false
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode() == http.StatusBadRequest
	}
	return apiErr.ErrorFault() == smithy.FaultClient
}
