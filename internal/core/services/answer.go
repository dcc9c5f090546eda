package services

import "fmt"

// NoAnalyticsMessage is shown when the AI service returns nothing.
const NoAnalyticsMessage = "The AI service returned no analytics for this request."

// unparsableAnswerMessage is shown when a payload cannot be rendered as JSON.
const unparsableAnswerMessage = "The AI response could not be parsed."

// inlineAnswerKeys are searched in order for the answer text.
var inlineAnswerKeys = []string{"response", "answer", "analytics", "result", "data", "message"}

// ExtractInlineAnswer turns a free-form query response into display text.
// The first non-null known key wins: strings as-is, objects and arrays as
// indented JSON, other scalars stringified. Without a known key the whole
// payload is rendered as indented JSON.
func ExtractInlineAnswer(payload any) string {
	switch p := payload.(type) {
	case nil:
		return NoAnalyticsMessage
	case string:
		return p
	case map[string]any:
		for _, key := range inlineAnswerKeys {
			value, ok := p[key]
			if !ok || value == nil {
				continue
			}
			switch v := value.(type) {
			case string:
				return v
			case map[string]any, []any:
				if text, err := prettyJSON(v); err == nil {
					return text
				}
				return fmt.Sprint(v)
			default:
				return stringify(v)
			}
		}
		text, err := prettyJSON(p)
		if err != nil {
			return unparsableAnswerMessage
		}
		return text
	case []any:
		text, err := prettyJSON(p)
		if err != nil {
			return unparsableAnswerMessage
		}
		return text
	default:
		return stringify(p)
	}
}
