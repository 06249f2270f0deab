package domain

import (
	"fmt"
)

// AnswerKind identifica o formato da resposta de uma pergunta do formulário
type AnswerKind string

const (
	AnswerKindText        AnswerKind = "text"
	AnswerKindChoice      AnswerKind = "choice"
	AnswerKindMultiChoice AnswerKind = "multi_choice"
)

// TextAnswer é uma resposta de texto livre
type TextAnswer struct {
	Value string `json:"value"`
}

// ChoiceAnswer é uma resposta de escolha única
type ChoiceAnswer struct {
	OptionID    string   `json:"option_id"`
	Label       string   `json:"label"`
	LinkedValue *float64 `json:"linked_value,omitempty"` // Valor monetário vinculado à opção, quando houver
}

// MultiChoiceAnswer é uma resposta de múltipla escolha
type MultiChoiceAnswer struct {
	OptionIDs []string `json:"option_ids"`
}

// Answer é a união etiquetada dos formatos de resposta. Apenas o campo
// correspondente ao Kind é preenchido.
type Answer struct {
	QuestionID  string             `json:"question_id"`
	Question    string             `json:"question"`
	Kind        AnswerKind         `json:"kind"`
	Text        *TextAnswer        `json:"text,omitempty"`
	Choice      *ChoiceAnswer      `json:"choice,omitempty"`
	MultiChoice *MultiChoiceAnswer `json:"multi_choice,omitempty"`
}

// NormalizeAnswer converte o payload dinâmico recebido na ingestão para a
// união etiquetada. A normalização acontece uma única vez, na borda: o motor
// de agregação nunca inspeciona formatos brutos.
func NormalizeAnswer(raw map[string]any) (*Answer, error) {
	questionID, _ := raw["question_id"].(string)
	question, _ := raw["question"].(string)

	answer := &Answer{
		QuestionID: questionID,
		Question:   question,
	}

	value, hasValue := raw["value"]
	if !hasValue {
		return nil, fmt.Errorf("resposta sem campo value para a pergunta %q", questionID)
	}

	switch v := value.(type) {
	case string:
		answer.Kind = AnswerKindText
		answer.Text = &TextAnswer{Value: v}

	case map[string]any:
		optionID, _ := v["option_id"].(string)
		if optionID == "" {
			return nil, fmt.Errorf("resposta de escolha sem option_id para a pergunta %q", questionID)
		}
		label, _ := v["label"].(string)

		choice := &ChoiceAnswer{
			OptionID: optionID,
			Label:    label,
		}
		if linked, ok := v["linked_value"].(float64); ok {
			choice.LinkedValue = &linked
		}

		answer.Kind = AnswerKindChoice
		answer.Choice = choice

	case []any:
		optionIDs := make([]string, 0, len(v))
		for _, item := range v {
			optionID, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("resposta de múltipla escolha com opção inválida para a pergunta %q", questionID)
			}
			optionIDs = append(optionIDs, optionID)
		}

		answer.Kind = AnswerKindMultiChoice
		answer.MultiChoice = &MultiChoiceAnswer{OptionIDs: optionIDs}

	default:
		return nil, fmt.Errorf("formato de resposta não suportado para a pergunta %q", questionID)
	}

	return answer, nil
}
