package prefs

import (
	"encoding/json"
	"fmt"
)

// Card is one item in the scroll feed. The set of implementations is closed:
// MCQCard, FlashcardCard, InfoCard and ResourceCard. Consumers type-switch
// over those four.
type Card interface {
	Type() CardType
	CardID() string
	isCard()
}

// CardHeader holds the fields every card carries on the wire.
type CardHeader struct {
	ID       string   `json:"id"`
	CardType CardType `json:"card_type"`
	Concept  string   `json:"concept,omitempty"`
}

func (h CardHeader) CardID() string { return h.ID }

// MCQCard is a multiple choice question.
type MCQCard struct {
	CardHeader
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
	Difficulty   float64  `json:"difficulty,omitempty"`
}

// FlashcardCard is a front/back recall card.
type FlashcardCard struct {
	CardHeader
	Front string `json:"front"`
	Back  string `json:"back"`
}

// InfoCard is a short explanatory card with no answer.
type InfoCard struct {
	CardHeader
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ResourceCard points at external study material.
type ResourceCard struct {
	CardHeader
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary,omitempty"`
}

func (MCQCard) Type() CardType       { return CardMCQ }
func (FlashcardCard) Type() CardType { return CardFlashcard }
func (InfoCard) Type() CardType      { return CardInfo }
func (ResourceCard) Type() CardType  { return CardResource }

func (MCQCard) isCard()       {}
func (FlashcardCard) isCard() {}
func (InfoCard) isCard()      {}
func (ResourceCard) isCard()  {}

// DecodeCard decodes a single card, dispatching on card_type.
func DecodeCard(raw json.RawMessage) (Card, error) {
	var head CardHeader
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("decode card header: %w", err)
	}

	var (
		card Card
		err  error
	)
	switch head.CardType {
	case CardMCQ:
		var c MCQCard
		err = json.Unmarshal(raw, &c)
		card = c
	case CardFlashcard:
		var c FlashcardCard
		err = json.Unmarshal(raw, &c)
		card = c
	case CardInfo:
		var c InfoCard
		err = json.Unmarshal(raw, &c)
		card = c
	case CardResource:
		var c ResourceCard
		err = json.Unmarshal(raw, &c)
		card = c
	default:
		return nil, fmt.Errorf("%w: %q (card %s)", ErrUnknownCardType, head.CardType, head.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s card %s: %w", head.CardType, head.ID, err)
	}
	return card, nil
}

// CountByType tallies cards per type.
func CountByType(cards []Card) map[CardType]int {
	counts := make(map[CardType]int, 4)
	for _, c := range cards {
		counts[c.Type()]++
	}
	return counts
}
