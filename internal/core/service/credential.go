package service

import (
	"github.com/google/uuid"

	"todos/internal/core/domain"
	"todos/internal/core/util"
	"todos/pkg/auth"
)

type CredentialService struct {
	jwt  *auth.JWT
	cost int
}

func NewCredentialService(jwt *auth.JWT, cost int) *CredentialService {
	return &CredentialService{jwt: jwt, cost: cost}
}

func (cs *CredentialService) HashPassword(plain string) (string, error) {
	return util.GenerateEncrypt(plain, cs.cost)
}

// VerifyPassword never fails loudly: any mismatch or malformed hash is false.
func (cs *CredentialService) VerifyPassword(plain, hash string) bool {
	return util.ComparePassword(plain, hash) == nil
}

func (cs *CredentialService) IssueToken(userID uuid.UUID) (string, error) {
	return cs.jwt.CreateToken(userID)
}

func (cs *CredentialService) VerifyToken(token string) (uuid.UUID, error) {
	userID, err := cs.jwt.VerifyToken(token)

	if err != nil {
		return uuid.Nil, domain.Unauthenticated(err.Error())
	}

	return userID, nil
}
