package chat

import (
	"strings"

	"github.com/malisevdinoglu/GenAI-Chatbot/core"
)

const promptPreamble = "You are a helpful recipe assistant. " +
	"Answer the question using the recipes below and the conversation so far. " +
	"If the recipes do not cover the question, say so instead of inventing one."

// buildPrompt assembles the generation prompt: retrieved documents first,
// then the full conversation history in occurrence order, then the question.
func buildPrompt(docs []core.RecipeDoc, history []core.ConversationTurn, question string) string {
	var b strings.Builder

	b.WriteString(promptPreamble)
	b.WriteString("\n\n")

	if len(docs) > 0 {
		b.WriteString("Recipes:\n\n")
		for i, doc := range docs {
			if i > 0 {
				b.WriteString("\n\n---\n\n")
			}
			b.WriteString(doc.Content)
		}
		b.WriteString("\n\n")
	} else {
		b.WriteString("Recipes: none found for this question.\n\n")
	}

	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, turn := range history {
			switch turn.Role {
			case core.RoleUser:
				b.WriteString("User: ")
			case core.RoleAssistant:
				b.WriteString("Assistant: ")
			default:
				b.WriteString(turn.Role.String())
				b.WriteString(": ")
			}
			b.WriteString(turn.Text)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\nAnswer:")

	return b.String()
}
