package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewAnswer(t *testing.T) {
	t.Parallel()

	enRu, err := NewAnswer(7, EnRu, "кот")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if enRu.RuWord == nil || *enRu.RuWord != "кот" || enRu.EnWord != nil {
		t.Errorf("Expected only ru_word to be set, got %+v", enRu)
	}
	if enRu.Direction() != EnRu {
		t.Errorf("Expected direction %s, got %s", EnRu, enRu.Direction())
	}

	ruEn, err := NewAnswer(7, RuEn, "cat")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ruEn.EnWord == nil || *ruEn.EnWord != "cat" || ruEn.RuWord != nil {
		t.Errorf("Expected only en_word to be set, got %+v", ruEn)
	}
	if ruEn.Value() != "cat" {
		t.Errorf("Expected value cat, got %q", ruEn.Value())
	}

	if _, err := NewAnswer(7, Direction("de_en"), "Katze"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("Expected ErrInvalidDirection, got %v", err)
	}
}

func TestAnswerJSON(t *testing.T) {
	t.Parallel()

	skipped, _ := NewAnswer(3, EnRu, "")
	data, err := json.Marshal(skipped)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// A skipped prompt still reports its field, with an empty value.
	if string(data) != `{"id":3,"ru_word":""}` {
		t.Errorf("Unexpected JSON %s", data)
	}

	answered, _ := NewAnswer(3, RuEn, "cat")
	data, _ = json.Marshal(answered)
	if string(data) != `{"id":3,"en_word":"cat"}` {
		t.Errorf("Unexpected JSON %s", data)
	}
}

func TestAnswerValidate(t *testing.T) {
	t.Parallel()

	value := "x"
	if err := (Answer{ID: 1}).Validate(); !errors.Is(err, ErrInvalidAnswer) {
		t.Errorf("Expected ErrInvalidAnswer for empty answer, got %v", err)
	}
	if err := (Answer{ID: 1, RuWord: &value, EnWord: &value}).Validate(); !errors.Is(err, ErrInvalidAnswer) {
		t.Errorf("Expected ErrInvalidAnswer for double answer, got %v", err)
	}
	if err := (Answer{ID: 1, EnWord: &value}).Validate(); err != nil {
		t.Errorf("Expected valid answer, got %v", err)
	}
}
