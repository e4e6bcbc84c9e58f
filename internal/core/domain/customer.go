package domain

// BankingProduct is reference data: a product category a customer can hold
// (e.g. CJAHRR = savings account). Seeded once at startup, read-mostly, with
// a lifecycle independent of any customer.
type BankingProduct struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Customer is the core aggregate of the client directory. NationalID is the
// unique business key; it is required and immutable once set. ProductCodes
// holds the resolved association to banking products and is never empty for a
// persisted customer.
type Customer struct {
	ID           string   `json:"id"`
	NationalID   string   `json:"nationalId"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Street       string   `json:"street,omitempty"`
	Number       *int     `json:"number,omitempty"`
	PostalCode   string   `json:"postalCode,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Mobile       string   `json:"mobile,omitempty"`
	ProductCodes []string `json:"productCodes"`
}

// HasProduct reports whether the customer is associated with the given product code.
func (c *Customer) HasProduct(code string) bool {
	for _, pc := range c.ProductCodes {
		if pc == code {
			return true
		}
	}
	return false
}
