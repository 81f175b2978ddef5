package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
	"github.com/riskibarqy/prediction-pool/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "prediction-pool"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain   string `json:"domain"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var responseBufferPool bytebufferpool.Pool

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := responseBufferPool.Get()
	defer responseBufferPool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_, _ = buf.WriteString(`{"apiVersion":"` + googleAPIVersion + `","error":{"code":500,"message":"encode response","status":"INTERNAL"}}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	items := []googleErrorItem{
		{
			Domain:  errorDomain,
			Reason:  mapped.Reason,
			Message: err.Error(),
		},
	}

	var partial *usecase.PartialEvaluationError
	if errors.As(err, &partial) {
		for _, betID := range partial.BetIDs() {
			items = append(items, googleErrorItem{
				Domain:   errorDomain,
				Reason:   "betFailed",
				Message:  partial.FailedBets[betID],
				Location: betID,
			})
		}
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors:  items,
		},
	})
}

// writeInternalError hides the cause from the client; callers log it.
func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errInternal)
}

var errInternal = errors.New("internal server error")

var internalErrorMapping = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorMappings is ordered. The first rule with a matching sentinel wins.
var errorMappings = []struct {
	sentinels []error
	mapped    mappedError
}{
	{
		sentinels: []error{usecase.ErrInvalidInput, evaluator.ErrPointsOutOfRange, evaluator.ErrUnknownKind, evaluator.ErrInvalidRules, prediction.ErrMalformedPayload},
		mapped:    mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	},
	{
		sentinels: []error{usecase.ErrNotFound},
		mapped:    mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	},
	{
		sentinels: []error{usecase.ErrUnauthorized},
		mapped:    mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"},
	},
	{
		sentinels: []error{usecase.ErrAlreadyExists},
		mapped:    mappedError{HTTPStatus: http.StatusConflict, Reason: "alreadyExists", Status: "ALREADY_EXISTS"},
	},
	{
		sentinels: []error{usecase.ErrBettingClosed},
		mapped:    mappedError{HTTPStatus: http.StatusConflict, Reason: "bettingClosed", Status: "FAILED_PRECONDITION"},
	},
	{
		sentinels: []error{usecase.ErrNotReady},
		mapped:    mappedError{HTTPStatus: http.StatusConflict, Reason: "notReady", Status: "FAILED_PRECONDITION"},
	},
	{
		sentinels: []error{usecase.ErrLockConflict},
		mapped:    mappedError{HTTPStatus: http.StatusConflict, Reason: "lockConflict", Status: "ABORTED"},
	},
	{
		sentinels: []error{usecase.ErrPartialEvaluation},
		mapped:    mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "partialEvaluation", Status: "DATA_LOSS"},
	},
	{
		sentinels: []error{usecase.ErrConfiguration},
		mapped:    mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "invalidConfiguration", Status: "FAILED_PRECONDITION"},
	},
	{
		sentinels: []error{usecase.ErrDependencyUnavailable},
		mapped:    mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"},
	},
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	for _, rule := range errorMappings {
		for _, sentinel := range rule.sentinels {
			if errors.Is(err, sentinel) {
				return rule.mapped
			}
		}
	}
	return internalErrorMapping
}
