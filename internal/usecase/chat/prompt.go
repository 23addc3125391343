package chat

import (
	"fmt"
	"strings"

	"github.com/futig/faq-backend/internal/entity"
)

// RefusalNoInformation is the fixed phrase the model is instructed to use
// when the answer is not derivable from the supplied context.
const RefusalNoInformation = "I don't have that information."

// RefusalOffTopic is the refusal template for questions outside the
// assistant's domain.
const RefusalOffTopic = "I can only help with %s related questions."

const rephraseInstruction = "Given the above conversation, generate a search query to look up " +
	"in order to get information relevant to the conversation"

const systemPromptTemplate = `You are a %s FAQs assistant. Your knowledge is limited to the information provided in the context.
You will answer the question based solely on this information:
%s
Do not make up your own answer.
If the answer is not present in the information, you will respond: %s
If a question is outside the context of %s, you will respond: %s`

// rephraseMessages builds the prompt that turns a conversational follow-up
// into a standalone search query: the full history, the new input, then the
// instruction as a final user turn.
func rephraseMessages(history []entity.ConversationMessage, input string) []entity.ChatCompletionMessage {
	messages := historyMessages(history)
	messages = append(messages,
		entity.ChatCompletionMessage{Role: entity.RoleUser, Content: input},
		entity.ChatCompletionMessage{Role: entity.RoleUser, Content: rephraseInstruction},
	)
	return messages
}

// composeMessages stuffs the retrieved chunks into the system prompt and
// appends the conversation with the new input as the final user turn.
func composeMessages(domain string, hits []entity.ScoredChunk, history []entity.ConversationMessage, input string) []entity.ChatCompletionMessage {
	contexts := make([]string, len(hits))
	for i, hit := range hits {
		contexts[i] = hit.Chunk.Text
	}

	system := fmt.Sprintf(systemPromptTemplate,
		domain,
		strings.Join(contexts, "\n\n"),
		RefusalNoInformation,
		domain,
		fmt.Sprintf(RefusalOffTopic, domain),
	)

	messages := make([]entity.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, entity.ChatCompletionMessage{Role: "system", Content: system})
	messages = append(messages, historyMessages(history)...)
	messages = append(messages, entity.ChatCompletionMessage{Role: entity.RoleUser, Content: input})
	return messages
}

func historyMessages(history []entity.ConversationMessage) []entity.ChatCompletionMessage {
	messages := make([]entity.ChatCompletionMessage, 0, len(history)+2)
	for _, msg := range history {
		messages = append(messages, entity.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return messages
}
