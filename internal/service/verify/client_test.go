package verify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yosoybienestar/chat-bienestar/backend/internal/service/verify"
)

func TestCustomerByPhoneFound(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"msisdn":"5512345678","altanService":"MOV","altanStatus":"Active"}]`))
	}))
	defer srv.Close()

	c := verify.NewClient(srv.URL, time.Second)
	customer, outcome := c.CustomerByPhone(context.Background(), "5512345678")

	require.Equal(t, verify.OutcomeFound, outcome)
	require.Equal(t, "/sim/5512345678/msisdn", gotPath)
	require.Equal(t, "5512345678", customer.MSISDN)
	require.Equal(t, "MOV", customer.Service)
	require.Equal(t, "Active", customer.Status)
}

func TestCustomerByPhoneToleratesObjectPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"msisdn":"5512345678","altanService":"MOV","altanStatus":"Active"}`))
	}))
	defer srv.Close()

	c := verify.NewClient(srv.URL, time.Second)
	customer, outcome := c.CustomerByPhone(context.Background(), "5512345678")

	require.Equal(t, verify.OutcomeFound, outcome)
	require.Equal(t, "5512345678", customer.MSISDN)
}

func TestCustomerByPhoneEmptyResults(t *testing.T) {
	tests := map[string]string{
		"empty array": `[]`,
		"null body":   `null`,
		"empty body":  ``,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			c := verify.NewClient(srv.URL, time.Second)
			_, outcome := c.CustomerByPhone(context.Background(), "5512345678")
			require.Equal(t, verify.OutcomeNotFound, outcome)
		})
	}
}

func TestCustomerByPhoneNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := verify.NewClient(srv.URL, time.Second)
	_, outcome := c.CustomerByPhone(context.Background(), "5512345678")
	require.Equal(t, verify.OutcomeNotFound, outcome)
}

func TestCustomerByPhoneTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := verify.NewClient(srv.URL, 50*time.Millisecond)
	_, outcome := c.CustomerByPhone(context.Background(), "5512345678")
	require.Equal(t, verify.OutcomeTimeout, outcome)
}

func TestCustomerByPhoneConnectionErrorDegradesToNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	c := verify.NewClient(srv.URL, time.Second)
	_, outcome := c.CustomerByPhone(context.Background(), "5512345678")
	require.Equal(t, verify.OutcomeNotFound, outcome)
}

func TestPaymentByReferenceFound(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{
			"code": 0,
			"message": "Recarga exitosa",
			"data": {
				"paymentMethod": {"reference": "ABC123"},
				"customer": {"name": "Juan", "lastName": "Pérez", "phoneNumber": "5512345678"},
				"amount": 100,
				"status": "completed",
				"authorization": "AUTH777",
				"creationDate": "2024-01-15T10:30:00Z"
			}
		}`))
	}))
	defer srv.Close()

	c := verify.NewClient(srv.URL, time.Second)
	tx, outcome := c.PaymentByReference(context.Background(), "ref999")

	require.Equal(t, verify.OutcomeFound, outcome)
	require.Equal(t, "/payment/ref999", gotPath)
	require.NotNil(t, tx.Code)
	require.Zero(t, *tx.Code)
	require.Equal(t, "ABC123", tx.Data.PaymentMethod.Reference)
	require.Equal(t, "Juan", tx.Data.Customer.Name)
	require.Equal(t, "100", tx.Data.Amount.String())
	require.Equal(t, "completed", tx.Data.Status)
}

func TestPaymentByReferenceMissingCodeStaysNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"message":"sin resultado","data":{}}`))
	}))
	defer srv.Close()

	c := verify.NewClient(srv.URL, time.Second)
	tx, outcome := c.PaymentByReference(context.Background(), "ref999")

	require.Equal(t, verify.OutcomeFound, outcome)
	require.Nil(t, tx.Code)
}

func TestPaymentByReferenceMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"code": "not-json`))
	}))
	defer srv.Close()

	c := verify.NewClient(srv.URL, time.Second)
	_, outcome := c.PaymentByReference(context.Background(), "ref999")
	require.Equal(t, verify.OutcomeNotFound, outcome)
}
