package auth

// Claims representa la información extraída del token.
type Claims struct {
	OperarioID string
	Nombre     string
	Email      string
}
