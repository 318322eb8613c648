package checkout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"grocerystore/internal/domain/order"
)

func validShipping() order.Shipping {
	return order.Shipping{
		FullName:    "A",
		Address:     "B",
		Area:        "C",
		PhoneNumber: "03001234567",
		PostalCode:  "54000",
	}
}

func TestFlowStartsAtShipping(t *testing.T) {
	f := NewFlow()
	require.Equal(t, StepShipping, f.Step())
	require.False(t, f.Submitting())
}

func TestSubmitShippingAdvances(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SubmitShipping(validShipping(), true))
	require.Equal(t, StepPayment, f.Step())
}

func TestSubmitShippingMissingFieldDoesNotAdvance(t *testing.T) {
	cases := map[string]order.Shipping{
		"full_name":    {Address: "B", Area: "C", PhoneNumber: "0300"},
		"address":      {FullName: "A", Area: "C", PhoneNumber: "0300"},
		"area":         {FullName: "A", Address: "B", PhoneNumber: "0300"},
		"phone_number": {FullName: "A", Address: "B", Area: "C"},
	}
	for field, in := range cases {
		f := NewFlow()
		err := f.SubmitShipping(in, false)
		var fe *FieldError
		require.ErrorAs(t, err, &fe, field)
		require.Equal(t, field, fe.Field)
		require.Equal(t, StepShipping, f.Step(), "validation failure must not advance")
	}
}

func TestPostalCodeRequirementIsConfigurable(t *testing.T) {
	in := validShipping()
	in.PostalCode = ""

	f := NewFlow()
	err := f.SubmitShipping(in, true)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "postal_code", fe.Field)

	f = NewFlow()
	require.NoError(t, f.SubmitShipping(in, false))
	require.Equal(t, StepPayment, f.Step())
}

func TestBackKeepsShippingData(t *testing.T) {
	f := NewFlow()
	in := validShipping()
	require.NoError(t, f.SubmitShipping(in, true))
	require.NoError(t, f.Back())
	require.Equal(t, StepShipping, f.Step())
	require.Equal(t, in, f.Shipping())

	// and the retained data passes validation again untouched
	require.NoError(t, f.SubmitShipping(f.Shipping(), true))
	require.Equal(t, StepPayment, f.Step())
}

func TestBackOnlyFromPayment(t *testing.T) {
	f := NewFlow()
	require.ErrorIs(t, f.Back(), ErrWrongStep)
}

func TestSubmitPaymentCash(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SubmitShipping(validShipping(), true))
	require.NoError(t, f.SubmitPayment(order.Payment{Method: order.MethodCash}))
	require.True(t, f.Submitting())

	f.Complete()
	require.Equal(t, StepSubmitted, f.Step())
	require.False(t, f.Submitting())
}

func TestSubmitPaymentCardRequiresDetails(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SubmitShipping(validShipping(), true))

	err := f.SubmitPayment(order.Payment{Method: order.MethodCard})
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	require.False(t, f.Submitting())

	err = f.SubmitPayment(order.Payment{
		Method: order.MethodCard,
		Card:   &order.CardDetails{Number: "4111111111111111", Expiry: "12/27"},
	})
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "cvv", fe.Field)

	require.NoError(t, f.SubmitPayment(order.Payment{
		Method: order.MethodCard,
		Card:   &order.CardDetails{Number: "4111111111111111", Expiry: "12/27", CVV: "123"},
	}))
}

func TestSubmitPaymentUnknownMethod(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SubmitShipping(validShipping(), true))

	err := f.SubmitPayment(order.Payment{Method: "cheque"})
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "method", fe.Field)
}

func TestSubmitPaymentBeforeShipping(t *testing.T) {
	f := NewFlow()
	require.ErrorIs(t, f.SubmitPayment(order.Payment{Method: order.MethodCash}), ErrWrongStep)
}

func TestGuardSuppressedWhileSubmitting(t *testing.T) {
	f := NewFlow()
	require.True(t, f.ShouldRedirectToCart(true))
	require.False(t, f.ShouldRedirectToCart(false))

	require.NoError(t, f.SubmitShipping(validShipping(), true))
	require.NoError(t, f.SubmitPayment(order.Payment{Method: order.MethodCash}))

	// the cart empties during submission; the guard must not fire
	require.False(t, f.ShouldRedirectToCart(true))

	f.FailSubmit()
	require.True(t, f.ShouldRedirectToCart(true))
	require.Equal(t, StepPayment, f.Step(), "failed submission retries from payment")
}
