package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,min=1"`
	PIN        string `json:"pin"         validate:"required,numeric,min=4,max=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"` // seconds
	User        SessionUser `json:"user"`
}

type RefreshRequest struct {
	Token string `json:"token" validate:"required"`
}
