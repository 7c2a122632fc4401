package service

import (
	"github.com/getcovered/userapi-go/internal/crypto"
	"github.com/getcovered/userapi-go/internal/model"
)

// GeneratorService suggests passwords that pass the registration policy.
type GeneratorService struct{}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService() *GeneratorService {
	return &GeneratorService{}
}

// Suggest produces a password of the requested length, or the default length.
func (s *GeneratorService) Suggest(req model.SuggestRequest) (model.SuggestResponse, error) {
	length := req.Length
	if length == 0 {
		length = crypto.DefaultLength
	}

	password, err := crypto.GeneratePassword(length)
	if err != nil {
		return model.SuggestResponse{}, err
	}

	return model.SuggestResponse{
		Password: password,
		Length:   len(password),
	}, nil
}
