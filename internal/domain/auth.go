package domain

// AdminClaims are the claims of a verified Supabase session token
type AdminClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Exp   int64  `json:"exp"`
}
