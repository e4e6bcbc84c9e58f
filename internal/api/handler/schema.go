package handler

// errorResponse documents the error envelope rendered by the central error
// handler; referenced by the swagger annotations.
type errorResponse struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

// --- Auth request / response types ---

type signupRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=20"`
	Password string   `json:"password" validate:"required,min=6,max=40"`
	Role     []string `json:"role,omitempty"`
}

type signinRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type jwtResponse struct {
	Token    string   `json:"token"`
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// --- Customer request / response types ---

type customerRequest struct {
	NationalID   string   `json:"nationalId" validate:"required,min=7,max=8,numeric"`
	FirstName    string   `json:"firstName"  validate:"required,max=100"`
	LastName     string   `json:"lastName"   validate:"required,max=100"`
	Street       string   `json:"street"`
	Number       *int     `json:"number"`
	PostalCode   string   `json:"postalCode"`
	Phone        string   `json:"phone"`
	Mobile       string   `json:"mobile" validate:"omitempty,phoneformat"`
	ProductCodes []string `json:"productCodes" validate:"required,min=1,dive,required"`
}

type phoneUpdateRequest struct {
	NationalID string `json:"nationalId" validate:"required"`
	Phone      string `json:"phone"      validate:"required"`
}

type deleteResponse struct {
	Message    string `json:"message"`
	NationalID string `json:"nationalId"`
}
