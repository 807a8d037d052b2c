package prefs

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeCard(t *testing.T) {
	tests := []struct {
		raw  string
		want CardType
	}{
		{`{"id":"c1","card_type":"mcq","question":"2+2?","options":["3","4"],"correct_index":1}`, CardMCQ},
		{`{"id":"c2","card_type":"flashcard","front":"Mitochondria","back":"Powerhouse"}`, CardFlashcard},
		{`{"id":"c3","card_type":"info_card","title":"Cells","body":"..."}`, CardInfo},
		{`{"id":"c4","card_type":"resource_card","title":"Docs","url":"https://example.com"}`, CardResource},
	}
	for _, tt := range tests {
		card, err := DecodeCard(json.RawMessage(tt.raw))
		if err != nil {
			t.Fatalf("DecodeCard(%s): %v", tt.raw, err)
		}
		if card.Type() != tt.want {
			t.Errorf("Type() = %s, want %s", card.Type(), tt.want)
		}
	}
}

func TestDecodeCardFields(t *testing.T) {
	card, err := DecodeCard(json.RawMessage(`{"id":"q9","card_type":"mcq","question":"Pick one","options":["a","b","c"],"correct_index":2}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	mcq, ok := card.(MCQCard)
	if !ok {
		t.Fatalf("expected MCQCard, got %T", card)
	}
	if mcq.CardID() != "q9" || mcq.CorrectIndex != 2 || len(mcq.Options) != 3 {
		t.Errorf("unexpected card %+v", mcq)
	}
}

func TestDecodeCardUnknownType(t *testing.T) {
	_, err := DecodeCard(json.RawMessage(`{"id":"x","card_type":"video"}`))
	if !errors.Is(err, ErrUnknownCardType) {
		t.Errorf("expected ErrUnknownCardType, got %v", err)
	}
}

func TestCountByType(t *testing.T) {
	cards := []Card{MCQCard{}, MCQCard{}, InfoCard{}, ResourceCard{}}
	counts := CountByType(cards)
	if counts[CardMCQ] != 2 || counts[CardInfo] != 1 || counts[CardResource] != 1 || counts[CardFlashcard] != 0 {
		t.Errorf("counts = %v", counts)
	}
}
