package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	characters            = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	temporaryPasswordSize = 10
)

// NewID gera o identificador de novos registros
func NewID() string {
	return uuid.NewString()
}

// GenerateTemporaryPassword gera uma senha provisória legível (sem 0/O, 1/l/I)
func GenerateTemporaryPassword() (string, error) {
	return gonanoid.Generate(characters, temporaryPasswordSize)
}
