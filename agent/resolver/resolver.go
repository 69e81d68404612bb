// Package resolver implements the LLM-backed intent resolver: it plans tool
// calls with a tool-bound chat model, executes them through the gateway with
// the authenticated identity enforced, and synthesizes the final reply.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/bankbot/bankbot/agent/contract"
	toolx "github.com/bankbot/bankbot/agent/tool"
)

const maxToolRounds = 3

type Resolver struct {
	planRunner   compose.Runnable[map[string]any, *schema.Message]
	toolModel    einomodel.ToolCallingChatModel
	gateway      contractx.ToolGateway
	allowedTools map[string]struct{}
	systemPrompt string
}

var _ contractx.IntentResolver = (*Resolver)(nil)

func New(
	ctx context.Context,
	chatModel einomodel.ToolCallingChatModel,
	gateway contractx.ToolGateway,
	systemPrompt string,
) (*Resolver, error) {
	if gateway == nil {
		return nil, fmt.Errorf("%w: tool gateway is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: system prompt is required", contractx.ErrValidation)
	}

	toolModel, err := chatModel.WithTools(toolx.Infos())
	if err != nil {
		return nil, fmt.Errorf("%w: bind tools: %v", contractx.ErrModelInvoke, err)
	}

	planRunner, err := compileToolPlanningGraph(ctx, toolModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: compile tool planning graph: %v", contractx.ErrModelInvoke, err)
	}

	return &Resolver{
		planRunner:   planRunner,
		toolModel:    toolModel,
		gateway:      gateway,
		allowedTools: toolx.AllowedTools(),
		systemPrompt: systemPrompt,
	}, nil
}

func (r *Resolver) Resolve(ctx context.Context, req contractx.ResolverRequest) (contractx.ResolverResponse, error) {
	identity := strings.TrimSpace(req.Identity)
	if identity == "" {
		return contractx.ResolverResponse{}, fmt.Errorf("%w: identity is required", contractx.ErrValidation)
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return contractx.ResolverResponse{}, fmt.Errorf("%w: text is required", contractx.ErrValidation)
	}

	msg, err := r.planRunner.Invoke(ctx, map[string]any{
		"identity":     identity,
		"input":        text,
		"chat_history": toMessages(req.History),
	})
	if err != nil {
		return contractx.ResolverResponse{}, fmt.Errorf("%w: plan invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return contractx.ResolverResponse{}, fmt.Errorf("%w: empty planning response", contractx.ErrSchemaViolation)
	}

	// Conversation so far, rendered the same way the planning graph saw it.
	msgs := append(
		[]*schema.Message{schema.SystemMessage(r.renderSystem(identity))},
		toMessages(req.History)...,
	)
	msgs = append(msgs, schema.UserMessage(text))

	var invocations []contractx.ToolResult
	for round := 0; len(msg.ToolCalls) > 0; round++ {
		if round >= maxToolRounds {
			return contractx.ResolverResponse{}, fmt.Errorf("%w: tool rounds exceeded", contractx.ErrSchemaViolation)
		}

		reqs, err := r.toToolRequests(msg.ToolCalls)
		if err != nil {
			return contractx.ResolverResponse{}, err
		}

		results := r.gateway.Execute(ctx, identity, reqs)
		invocations = append(invocations, results...)

		msgs = append(msgs, msg)
		for i, call := range msg.ToolCalls {
			msgs = append(msgs, schema.ToolMessage(renderResult(results[i]), call.ID))
		}

		msg, err = r.toolModel.Generate(ctx, msgs)
		if err != nil {
			return contractx.ResolverResponse{}, fmt.Errorf("%w: synthesis invoke: %v", contractx.ErrModelInvoke, err)
		}
		if msg == nil {
			return contractx.ResolverResponse{}, fmt.Errorf("%w: empty synthesis response", contractx.ErrSchemaViolation)
		}
	}

	reply := strings.TrimSpace(msg.Content)
	if reply == "" {
		return contractx.ResolverResponse{}, fmt.Errorf("%w: resolver reply is empty", contractx.ErrSchemaViolation)
	}

	return contractx.ResolverResponse{
		Reply:           reply,
		ToolInvocations: invocations,
	}, nil
}

func (r *Resolver) renderSystem(identity string) string {
	return strings.ReplaceAll(r.systemPrompt, "{identity}", identity)
}

func (r *Resolver) toToolRequests(calls []schema.ToolCall) ([]contractx.ToolRequest, error) {
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		name := strings.TrimSpace(call.Function.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}
		if _, ok := r.allowedTools[name]; !ok {
			return nil, fmt.Errorf("%w: tool=%s is not in the catalog", contractx.ErrSchemaViolation, name)
		}

		args := map[string]any{}
		if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid args for tool=%s: %v", contractx.ErrSchemaViolation, name, err)
			}
		}

		reqs = append(reqs, contractx.ToolRequest{Tool: name, Args: args})
	}
	return reqs, nil
}

func toMessages(history []contractx.Turn) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(history))
	for _, turn := range history {
		switch turn.Speaker {
		case contractx.SpeakerAssistant:
			msgs = append(msgs, schema.AssistantMessage(turn.Text, nil))
		default:
			msgs = append(msgs, schema.UserMessage(turn.Text))
		}
	}
	return msgs
}

func renderResult(res contractx.ToolResult) string {
	if res.Error != "" {
		return res.Error
	}
	return res.Output
}
