package myerrors

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type httpErrorCoder interface {
	error
	GetHTTPErrorCode() int
}

type httpError struct {
	httpCode int
	err      error
}

func (e *httpError) Error() string {
	return fmt.Sprintf("status: %d, err: %s", e.httpCode, e.err.Error())
}

func (e *httpError) Unwrap() error {
	return e.err
}

func (e *httpError) GetHTTPErrorCode() int {
	return e.httpCode
}

// GRPCStatus lets status.FromError and status.Code understand these errors.
func (e *httpError) GRPCStatus() *status.Status {
	return status.New(grpcCodes[e.httpCode], e.err.Error())
}

var grpcCodes = map[int]codes.Code{
	http.StatusBadRequest:           codes.InvalidArgument,
	http.StatusForbidden:            codes.PermissionDenied,
	http.StatusNotFound:             codes.NotFound,
	http.StatusConflict:             codes.FailedPrecondition,
	http.StatusUnsupportedMediaType: codes.InvalidArgument,
	http.StatusInternalServerError:  codes.Internal,
	http.StatusNotImplemented:       codes.Unimplemented,
	http.StatusServiceUnavailable:   codes.Unavailable,
}

func newError(httpCode int, err error) *httpError {
	return &httpError{
		httpCode: httpCode,
		err:      err,
	}
}

func NewInvalidInputError(err error) error {
	return newError(http.StatusBadRequest, err)
}

func NewInvalidInputErrorf(format string, args ...any) error {
	return NewInvalidInputError(fmt.Errorf(format, args...))
}

func NewUnsupportedMediaTypeError(err error) error {
	return newError(http.StatusUnsupportedMediaType, err)
}

func NewNotFoundError(err error) error {
	return newError(http.StatusNotFound, err)
}

func NewAuthenticationError(err error) error {
	return newError(http.StatusForbidden, err)
}

func NewConflictError(err error) error {
	return newError(http.StatusConflict, err)
}

func NewInternalError(err error) error {
	return newError(http.StatusInternalServerError, err)
}

func NewNotImplementedError(err error) error {
	return newError(http.StatusNotImplemented, err)
}

func NewUnavailableError(err error) error {
	return newError(http.StatusServiceUnavailable, err)
}

func GetHTTPStatus(err error) int {
	var coder httpErrorCoder
	if errors.As(err, &coder) {
		return coder.GetHTTPErrorCode()
	}
	return http.StatusInternalServerError
}

func IsInvalidInput(err error) bool {
	return err != nil && GetHTTPStatus(err) == http.StatusBadRequest
}

func IsNotFound(err error) bool {
	return err != nil && GetHTTPStatus(err) == http.StatusNotFound
}
