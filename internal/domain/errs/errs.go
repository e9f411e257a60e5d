// Package errs defines the error taxonomy shared by the orchestration core.
//
// Validation failures (InvalidArgumentError, MissingFieldError) are caller
// bugs and are never retried. Gateway-side failures are split between
// definitive integration errors (5xx) and transient communication errors
// (timeout, cancellation), because callers may retry the latter at a higher
// layer but must not retry the former.
package errs

import (
	"errors"
	"fmt"
)

// InvalidArgumentError reports a precondition violation: a nil or malformed
// input that the caller should never have passed.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string { return e.Msg }

// InvalidArgument builds an InvalidArgumentError with a formatted message.
func InvalidArgument(format string, args ...any) error {
	return &InvalidArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// IsInvalidArgument reports whether err is (or wraps) an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var t *InvalidArgumentError
	return errors.As(err, &t)
}

// UnsupportedOperationError marks a method or flow intentionally not
// implemented for this deployment.
type UnsupportedOperationError struct {
	Msg string
}

func (e *UnsupportedOperationError) Error() string { return e.Msg }

// UnsupportedOperation builds an UnsupportedOperationError with a formatted message.
func UnsupportedOperation(format string, args ...any) error {
	return &UnsupportedOperationError{Msg: fmt.Sprintf(format, args...)}
}

// IsUnsupportedOperation reports whether err is (or wraps) an UnsupportedOperationError.
func IsUnsupportedOperation(err error) bool {
	var t *UnsupportedOperationError
	return errors.As(err, &t)
}

// StrategyNotFoundError means a payment type has no registered strategy,
// which is a configuration mismatch.
type StrategyNotFoundError struct {
	PaymentType string
}

func (e *StrategyNotFoundError) Error() string {
	return fmt.Sprintf("no strategy registered for payment type %s", e.PaymentType)
}

// IsStrategyNotFound reports whether err is (or wraps) a StrategyNotFoundError.
func IsStrategyNotFound(err error) bool {
	var t *StrategyNotFoundError
	return errors.As(err, &t)
}

// UnsupportedPaymentInfoError means a PaymentInfo variant has no payment type
// mapping.
type UnsupportedPaymentInfoError struct {
	Variant string
}

func (e *UnsupportedPaymentInfoError) Error() string {
	return fmt.Sprintf("unsupported payment info variant %s", e.Variant)
}

// IsUnsupportedPaymentInfo reports whether err is (or wraps) an UnsupportedPaymentInfoError.
func IsUnsupportedPaymentInfo(err error) bool {
	var t *UnsupportedPaymentInfoError
	return errors.As(err, &t)
}

// InvalidPaymentMethodError means an inbound method name does not match any
// supported payment type.
type InvalidPaymentMethodError struct {
	Name string
}

func (e *InvalidPaymentMethodError) Error() string {
	return fmt.Sprintf("invalid payment method name %q", e.Name)
}

// IsInvalidPaymentMethod reports whether err is (or wraps) an InvalidPaymentMethodError.
func IsInvalidPaymentMethod(err error) bool {
	var t *InvalidPaymentMethodError
	return errors.As(err, &t)
}

// MissingFieldError reports a required field absent from an operation request.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %s is missing", e.Field)
}

// IsMissingField reports whether err is (or wraps) a MissingFieldError.
func IsMissingField(err error) bool {
	var t *MissingFieldError
	return errors.As(err, &t)
}

// MissingRedirectLinkError reports a pending gateway response without the
// redirect link the flow requires.
type MissingRedirectLinkError struct {
	LinkKey   string
	PaymentID string
}

func (e *MissingRedirectLinkError) Error() string {
	return fmt.Sprintf("pending response for payment %s has no %q link", e.PaymentID, e.LinkKey)
}

// IsMissingRedirectLink reports whether err is (or wraps) a MissingRedirectLinkError.
func IsMissingRedirectLink(err error) bool {
	var t *MissingRedirectLinkError
	return errors.As(err, &t)
}

// GatewayIntegrationError wraps a definitive gateway-side server failure
// (HTTP 5xx). Callers may retry at a higher layer.
type GatewayIntegrationError struct {
	Op  string
	Err error
}

func (e *GatewayIntegrationError) Error() string {
	return fmt.Sprintf("gateway integration failure during %s: %v", e.Op, e.Err)
}

func (e *GatewayIntegrationError) Unwrap() error { return e.Err }

// GatewayIntegration wraps err as a GatewayIntegrationError for operation op.
func GatewayIntegration(op string, err error) error {
	return &GatewayIntegrationError{Op: op, Err: err}
}

// IsGatewayIntegration reports whether err is (or wraps) a GatewayIntegrationError.
func IsGatewayIntegration(err error) bool {
	var t *GatewayIntegrationError
	return errors.As(err, &t)
}

// GatewayCommunicationError marks a transient failure talking to the gateway:
// timeout, cancellation or interruption before a definitive response.
type GatewayCommunicationError struct {
	Op  string
	Err error
}

func (e *GatewayCommunicationError) Error() string {
	return fmt.Sprintf("gateway communication failure during %s: %v", e.Op, e.Err)
}

func (e *GatewayCommunicationError) Unwrap() error { return e.Err }

// GatewayCommunication wraps err as a GatewayCommunicationError for operation op.
func GatewayCommunication(op string, err error) error {
	return &GatewayCommunicationError{Op: op, Err: err}
}

// IsGatewayCommunication reports whether err is (or wraps) a GatewayCommunicationError.
func IsGatewayCommunication(err error) bool {
	var t *GatewayCommunicationError
	return errors.As(err, &t)
}
