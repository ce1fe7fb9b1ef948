package budget

// Budget is the API response model for a budget.
type Budget struct {
	ID        string `json:"id" doc:"Budget UUID"`
	Category  string `json:"category" doc:"Category the limit applies to"`
	Amount    string `json:"amount" doc:"Spending limit per period"`
	Period    int    `json:"period" doc:"Budget period: 0=Monthly, 1=Quarterly, 2=Yearly"`
	CreatedAt string `json:"createdAt" doc:"When the budget was set (RFC3339)"`
}
