package service

import (
	"testing"

	"github.com/getcovered/userapi-go/internal/crypto"
	"github.com/getcovered/userapi-go/internal/model"
	"github.com/getcovered/userapi-go/internal/validation"
)

func TestSuggest_Defaults(t *testing.T) {
	svc := NewGeneratorService()
	resp, err := svc.Suggest(model.SuggestRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != crypto.DefaultLength {
		t.Errorf("expected length %d, got %d", crypto.DefaultLength, resp.Length)
	}
	if len(resp.Password) != crypto.DefaultLength {
		t.Errorf("expected password length %d, got %d", crypto.DefaultLength, len(resp.Password))
	}
	if _, err := validation.Password(resp.Password); err != nil {
		t.Errorf("suggested password fails policy: %v", err)
	}
}

func TestSuggest_CustomLength(t *testing.T) {
	svc := NewGeneratorService()
	resp, err := svc.Suggest(model.SuggestRequest{Length: 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 40 || len(resp.Password) != 40 {
		t.Errorf("expected length 40, got %d (%d)", resp.Length, len(resp.Password))
	}
}

func TestSuggest_LengthTooShort(t *testing.T) {
	svc := NewGeneratorService()
	if _, err := svc.Suggest(model.SuggestRequest{Length: 8}); err != crypto.ErrLengthTooShort {
		t.Fatalf("expected ErrLengthTooShort, got %v", err)
	}
}

func TestSuggest_LengthTooLong(t *testing.T) {
	svc := NewGeneratorService()
	if _, err := svc.Suggest(model.SuggestRequest{Length: 200}); err != crypto.ErrLengthTooLong {
		t.Fatalf("expected ErrLengthTooLong, got %v", err)
	}
}
