package payload

type SignupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateAdminRequest struct {
	Email       string   `json:"email"       validate:"required,email"`
	Name        string   `json:"name"        validate:"required"`
	Password    string   `json:"password"    validate:"required,min=12"`
	Role        string   `json:"role"        validate:"required"`
	Permissions []string `json:"permissions"`
}

// AdminInfo is the admin principal shape returned by the verify endpoint.
type AdminInfo struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	LastLogin   string   `json:"lastLogin"`
}

type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
