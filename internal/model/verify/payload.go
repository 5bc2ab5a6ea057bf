package verify

import "encoding/json"

// Customer is one element of the customer lookup response.
type Customer struct {
	MSISDN  string `json:"msisdn"`
	Service string `json:"altanService"`
	Status  string `json:"altanStatus"`
}

// Transaction is the payment lookup envelope. Code is a pointer so an absent
// field stays distinguishable from the zero success code.
type Transaction struct {
	Code    *int            `json:"code"`
	Message string          `json:"message"`
	Data    TransactionData `json:"data"`
}

// TransactionData carries the recharge details nested under "data". The
// upstream is loose about numeric typing, so the amount stays a json.Number.
type TransactionData struct {
	PaymentMethod PaymentMethod       `json:"paymentMethod"`
	Customer      TransactionCustomer `json:"customer"`
	Amount        json.Number         `json:"amount"`
	Status        string              `json:"status"`
	Authorization string              `json:"authorization"`
	CreationDate  string              `json:"creationDate"`
	OperationDate string              `json:"operationDate"`
	DueDate       string              `json:"dueDate"`
}

// PaymentMethod identifies the payment by its reference.
type PaymentMethod struct {
	Reference string `json:"reference"`
}

// TransactionCustomer is the customer block inside a transaction payload.
type TransactionCustomer struct {
	Name        string `json:"name"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}
