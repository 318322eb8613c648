package checkout

import (
	"errors"
	"fmt"
	"strings"

	"grocerystore/internal/domain/order"
)

type Step string

const (
	StepShipping  Step = "shipping"
	StepPayment   Step = "payment"
	StepSubmitted Step = "submitted"
)

var ErrWrongStep = errors.New("operation not valid in current step")

// FieldError marks a required checkout field that was missing or malformed,
// so the caller can surface it next to the field.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Flow is one checkout attempt: shipping -> payment -> submitted. Form data
// entered at each step is retained for the life of the flow, so going back
// from payment does not lose the shipping fields. The flow is discarded once
// submitted. Not safe for concurrent use; callers serialize per session.
type Flow struct {
	step       Step
	shipping   order.Shipping
	payment    order.Payment
	submitting bool
}

func NewFlow() *Flow {
	return &Flow{step: StepShipping}
}

func (f *Flow) Step() Step { return f.step }

func (f *Flow) Shipping() order.Shipping { return f.shipping }

func (f *Flow) Payment() order.Payment { return f.payment }

// Submitting reports whether an order submission is in flight. The
// empty-cart guard must not fire while this is set: the cart is cleared as
// part of submission and that clear alone must not bounce the shopper back
// to the cart view.
func (f *Flow) Submitting() bool { return f.submitting }

// ShouldRedirectToCart is the empty-cart guard.
func (f *Flow) ShouldRedirectToCart(cartEmpty bool) bool {
	return cartEmpty && !f.submitting
}

// PrefillShipping seeds the shipping form with defaults looked up from the
// shopper's account. Only meaningful before the form is first submitted.
func (f *Flow) PrefillShipping(in order.Shipping) {
	if f.step == StepShipping {
		f.shipping = in
	}
}

// SubmitShipping validates and stores the shipping form, advancing to the
// payment step. A validation failure leaves the step and any previously
// entered data unchanged.
func (f *Flow) SubmitShipping(in order.Shipping, requirePostalCode bool) error {
	if f.step != StepShipping {
		return ErrWrongStep
	}
	if strings.TrimSpace(in.FullName) == "" {
		return &FieldError{Field: "full_name"}
	}
	if strings.TrimSpace(in.Address) == "" {
		return &FieldError{Field: "address"}
	}
	if strings.TrimSpace(in.Area) == "" {
		return &FieldError{Field: "area"}
	}
	if strings.TrimSpace(in.PhoneNumber) == "" {
		return &FieldError{Field: "phone_number"}
	}
	if requirePostalCode && strings.TrimSpace(in.PostalCode) == "" {
		return &FieldError{Field: "postal_code"}
	}
	f.shipping = in
	f.step = StepPayment
	return nil
}

// Back returns from the payment step to shipping. Entered data is kept.
func (f *Flow) Back() error {
	if f.step != StepPayment {
		return ErrWrongStep
	}
	f.step = StepShipping
	return nil
}

// SubmitPayment validates the payment form and marks the submission as in
// flight. The caller then places the order and finishes with Complete or
// FailSubmit.
func (f *Flow) SubmitPayment(in order.Payment) error {
	if f.step != StepPayment {
		return ErrWrongStep
	}
	switch in.Method {
	case order.MethodCash:
	case order.MethodCard:
		if in.Card == nil {
			return &FieldError{Field: "card"}
		}
		if strings.TrimSpace(in.Card.Number) == "" {
			return &FieldError{Field: "card_number"}
		}
		if strings.TrimSpace(in.Card.Expiry) == "" {
			return &FieldError{Field: "expiry_date"}
		}
		if strings.TrimSpace(in.Card.CVV) == "" {
			return &FieldError{Field: "cvv"}
		}
	default:
		return &FieldError{Field: "method"}
	}
	f.payment = in
	f.submitting = true
	return nil
}

// Complete marks the flow submitted. Terminal: the flow instance is
// discarded by its owner afterwards.
func (f *Flow) Complete() {
	f.step = StepSubmitted
	f.submitting = false
}

// FailSubmit aborts an in-flight submission, leaving the flow on the
// payment step so the shopper can retry.
func (f *Flow) FailSubmit() {
	f.submitting = false
}
