package transaction

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string `json:"id" doc:"Transaction UUID"`
	AccountID       string `json:"accountID" doc:"Account UUID"`
	Category        string `json:"category" doc:"Spending category"`
	Merchant        string `json:"merchant,omitempty" doc:"Merchant, absent when unknown"`
	Amount          string `json:"amount" doc:"Decimal amount, negative for expenses"`
	TransactionName string `json:"transactionName" doc:"Name of the transaction"`
	TransactionDate string `json:"transactionDate" doc:"RFC3339 transaction date"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}
