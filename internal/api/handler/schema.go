package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required"`
	Password        string `json:"password"          validate:"required"`
}

type loginResponse struct {
	Token      string `json:"token"`
	Expiration string `json:"expiration"`
}

// --- Intake ---

// intakeEntryRequest uses a pointer so a missing calories field is rejected
// while an explicit 0 is accepted. The max tag mirrors domain.MaxCalories.
type intakeEntryRequest struct {
	Calories *int   `json:"calories" validate:"required,min=0,max=1000000"`
	Date     string `json:"date"     validate:"required"`
}

type intakeRecordResponse struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
}

// --- Reports ---

type pdfLinkResponse struct {
	PDFURL  string `json:"pdf_url"`
	Message string `json:"message"`
}

type csvLinkResponse struct {
	CSVURL  string `json:"csv_url"`
	Message string `json:"message"`
}

// --- Profile ---

type profileResponse struct {
	UserID         int64  `json:"user_id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	TokenExpiresIn string `json:"token_expires_in"`
}
