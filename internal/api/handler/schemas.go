package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. Redeclared here so the swag annotations can reference it.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type signupRequest struct {
	Firstname string `json:"firstname" form:"firstname" validate:"required"`
	Lastname  string `json:"lastname"  form:"lastname"  validate:"required"`
	Email     string `json:"email"     form:"email"     validate:"required,email"`
	Password  string `json:"password"  form:"password"  validate:"required,min=6"`
}

type signinRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type signinResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// anonymousResponse marks an unauthenticated caller on optional-auth routes.
type anonymousResponse struct {
	Anonymous bool `json:"anonymous"`
}

// --- Catalog / cart / purchase ---

// bookIDRequest is the shared body for operations addressing one book.
type bookIDRequest struct {
	ID string `json:"id" form:"id" validate:"required"`
}

type purchaseResponse struct {
	Message string `json:"message"`
	Added   int    `json:"added"`
}
