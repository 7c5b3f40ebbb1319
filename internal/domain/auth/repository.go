package auth

import "context"

type Repository interface {
	CreateOperario(ctx context.Context, o Operario) error
	GetOperarioByUsuario(ctx context.Context, usuario string) (Operario, error)
	GetOperarioByID(ctx context.Context, id string) (Operario, error)

	CreateToken(ctx context.Context, t Token) error
	GetToken(ctx context.Context, value string) (Token, error)
	RevokeToken(ctx context.Context, value string) error
}
