// Package tool declares the fixed set of read-only banking tools exposed to
// the intent resolver and executes them against the ledger and knowledge
// base. Tools never mutate state and never fail with a Go error: domain
// conditions come back as conversational text.
package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/bankbot/bankbot/agent/contract"
	knowledgex "github.com/bankbot/bankbot/agent/knowledge"
	ledgerx "github.com/bankbot/bankbot/agent/ledger"
)

const (
	ToolGetBalance       = "get_balance"
	ToolGetStatement     = "get_statement"
	ToolGetProductInfo   = "get_product_info"
	ToolFAQAnswer        = "faq_answer"
	ToolTransferGuidance = "transfer_guidance"
	ToolPaymentGuidance  = "payment_guidance"
)

const defaultAccountKind = "checking"

// Infos declares the tool set for the chat model. The authenticated identity
// is deliberately absent from every parameter list: the gateway injects it,
// so the model cannot point a tool at someone else's data.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolGetBalance,
			Desc: "Get the balance of one of the customer's accounts. Use when the customer asks about their balance.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"account_kind": {Type: schema.String, Desc: "Account kind, e.g. 'checking' or 'savings'. Defaults to 'checking'."},
			}),
		},
		{
			Name: ToolGetStatement,
			Desc: "Get the last 5 transactions and the current balance of one of the customer's accounts. Use for questions about statements or recent transactions.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"account_kind": {Type: schema.String, Desc: "Account kind, e.g. 'checking' or 'savings'. Defaults to 'checking'."},
			}),
		},
		{
			Name: ToolGetProductInfo,
			Desc: "Describe a banking product such as cards, loans or investments.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"category": {Type: schema.String, Desc: "Product category: 'card', 'loan' or 'investment'.", Required: true},
			}),
		},
		{
			Name: ToolFAQAnswer,
			Desc: "Answer frequently asked questions about hours, fees, security, pix and similar topics.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {Type: schema.String, Desc: "The customer's question or topic keyword.", Required: true},
			}),
		},
		{
			Name: ToolTransferGuidance,
			Desc: "Explain how to make a bank transfer. Never performs one.",
		},
		{
			Name: ToolPaymentGuidance,
			Desc: "Explain how to pay a bill. Never performs a payment.",
		},
	}
}

// AllowedTools returns the declared tool names as a membership set.
func AllowedTools() map[string]struct{} {
	infos := Infos()
	allowed := make(map[string]struct{}, len(infos))
	for _, info := range infos {
		allowed[info.Name] = struct{}{}
	}
	return allowed
}

// Gateway dispatches tool requests over the read-only stores. It satisfies
// contract.ToolGateway.
type Gateway struct {
	ledger *ledgerx.Store
	kb     *knowledgex.Base
}

func NewGateway(ledger *ledgerx.Store, kb *knowledgex.Base) *Gateway {
	return &Gateway{ledger: ledger, kb: kb}
}

// Execute runs each request in order against the caller-bound identity.
// Any identity-like argument planned by the model is ignored.
func (g *Gateway) Execute(_ context.Context, identity string, reqs []contractx.ToolRequest) []contractx.ToolResult {
	results := make([]contractx.ToolResult, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, g.execute(identity, req))
	}
	return results
}

func (g *Gateway) execute(identity string, req contractx.ToolRequest) contractx.ToolResult {
	switch req.Tool {
	case ToolGetBalance:
		return contractx.ToolResult{
			Tool:   req.Tool,
			Output: g.balance(identity, stringArg(req.Args, "account_kind", defaultAccountKind)),
		}
	case ToolGetStatement:
		return contractx.ToolResult{
			Tool:   req.Tool,
			Output: g.statement(identity, stringArg(req.Args, "account_kind", defaultAccountKind)),
		}
	case ToolGetProductInfo:
		return contractx.ToolResult{
			Tool:   req.Tool,
			Output: g.kb.ProductInfo(stringArg(req.Args, "category", "")),
		}
	case ToolFAQAnswer:
		return contractx.ToolResult{
			Tool:   req.Tool,
			Output: g.faq(stringArg(req.Args, "query", "")),
		}
	case ToolTransferGuidance:
		return contractx.ToolResult{Tool: req.Tool, Output: transferGuidance}
	case ToolPaymentGuidance:
		return contractx.ToolResult{Tool: req.Tool, Output: paymentGuidance}
	default:
		return contractx.ToolResult{
			Tool:  req.Tool,
			Error: fmt.Sprintf("tool=%s is not available", req.Tool),
		}
	}
}

func stringArg(args map[string]any, key, fallback string) string {
	raw, ok := args[key]
	if !ok {
		return fallback
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}
