package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/bairooha/donordesk/internal/assist"
)

type ChatRequest = assist.ChatInput

type ChatResponse = assist.ChatReply

// AssistantService serves the admin chat widget.
type AssistantService struct {
	assistant *assist.Assistant
}

// NewAssistantService creates an AssistantService.
func NewAssistantService(a *assist.Assistant) *AssistantService {
	return &AssistantService{assistant: a}
}

// NewAssistantServiceHandler returns the mount path and handler for s.
func NewAssistantServiceHandler(s *AssistantService, opts ...connect.HandlerOption) (string, http.Handler) {
	return serviceHandler(AssistantServiceName, map[string]http.Handler{
		ChatProcedure: unaryHandler(ChatProcedure, s.Chat, opts),
	})
}

// Chat answers the latest message. The client keeps the history.
func (s *AssistantService) Chat(ctx context.Context, req *connect.Request[ChatRequest]) (*connect.Response[ChatResponse], error) {
	reply, err := s.assistant.Chat(ctx, *req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&reply), nil
}
