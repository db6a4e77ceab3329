package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const chatUseCase = "chat"

const chatInstructions = `You are a helpful admin assistant for ` + OrgName + `, a charity platform.
Help the user with questions about the platform, donations, projects or any issue they face.
Be friendly, helpful and concise.

The input holds the conversation so far ("history", oldest first, roles "user" and "model") and the
user's new "message". Reply as the model.

Respond with a single JSON object and nothing else:
{"response": string}`

// ChatRole is the author of a chat message.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one turn of the conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatInput is the history plus the user's latest message.
type ChatInput struct {
	History []ChatMessage `json:"history"`
	Message string        `json:"message"`
}

// ChatReply is the assistant's answer.
type ChatReply struct {
	Response string `json:"response"`
}

func (r ChatReply) Validate() error {
	if strings.TrimSpace(r.Response) == "" {
		return errors.New("response is required")
	}
	return nil
}

// Chat answers the user's latest message given the conversation so far.
func (a *Assistant) Chat(ctx context.Context, in ChatInput) (ChatReply, error) {
	if strings.TrimSpace(in.Message) == "" {
		return ChatReply{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	history := make([]any, 0, len(in.History))
	for i, m := range in.History {
		if m.Role != RoleUser && m.Role != RoleModel {
			return ChatReply{}, fmt.Errorf("%w: history[%d] has unknown role %q", ErrInvalidInput, i, m.Role)
		}
		history = append(history, map[string]any{"role": string(m.Role), "content": m.Content})
	}
	return generate[ChatReply](ctx, a.provider, chatUseCase, chatInstructions, map[string]any{
		"history": history,
		"message": in.Message,
	}, 0.7)
}
