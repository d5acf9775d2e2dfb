package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/defibasket/basket"
	"github.com/defibasket/basket/docs"
	"github.com/defibasket/basket/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	tools := newToolbox(experts)
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: tools.declarations()},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to inspect his baskets, understand what they hold,
			and explore what a rebalancing script would do before committing to it.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
		`}}},
		},
		Tools: tools,
	}
}

// NewOperator builds the expert that reads and simulates against the given
// basket manager.
func NewOperator(m *basket.Manager) *Expert {
	tools := newToolbox([]Function{
		newBasketsFunc(m),
		newBalancesFunc(m),
		newBridgesFunc(m),
		newSimulateFunc(m),
	})

	return &Expert{
		Name: "Operator",
		Description: `This is the Operator. He has read access to every basket: its owner,
		its balances, the registered bridges, and he can simulate a script against a basket
		without changing anything. Ask the Operator whenever you need facts about the baskets.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: tools.declarations()},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the operator of the user's baskets.
				You know how to use the Tools to extract relevant information:
				  - the list of baskets and their owners
				  - the balances of one basket
				  - the registered bridges a script can use
				  - the outcome of a script, simulated without side effects

				Scripts resolve amounts as percentages of live balances. Below is the doc:

				` + must(docs.GetTopic("percentages"))}}},
		},
		Tools: tools,
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func outputResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

// basketArg reads the "basket" argument, tolerating the number or string the
// model happens to produce.
func basketArg(args map[string]any) (basket.BasketID, error) {
	raw, ok := args["basket"]
	if !ok {
		return 0, fmt.Errorf("argument 'basket' is required")
	}
	switch v := raw.(type) {
	case float64:
		return basket.BasketID(v), nil
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("argument 'basket' must be a basket id, got %q", v)
		}
		return basket.BasketID(id), nil
	default:
		return 0, fmt.Errorf("argument 'basket' is not a number but %T", raw)
	}
}

var basketParam = &genai.Schema{
	Type:        genai.TypeInteger,
	Description: "The basket id, as listed by Baskets.",
}

func newBasketsFunc(m *basket.Manager) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Baskets",
			Description: "Baskets lists every basket with its id, owner and number of held assets.",
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of all baskets.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			var reports []*basket.Report
			for b := range m.Baskets() {
				r, err := m.Report(b.ID())
				if err != nil {
					return errorResponse(id, "Baskets", err)
				}
				reports = append(reports, r)
			}
			return outputResponse(id, "Baskets", renderer.Baskets(reports))
		},
	}
}

func newBalancesFunc(m *basket.Manager) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Balances",
			Description: "Balances details what one basket holds, asset by asset, in smallest units.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"basket": basketParam,
				},
				Required: []string{"basket"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the basket's balances.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			bid, err := basketArg(args)
			if err != nil {
				return errorResponse(id, "Balances", err)
			}
			r, err := m.Report(bid)
			if err != nil {
				return errorResponse(id, "Balances", err)
			}
			return outputResponse(id, "Balances", renderer.Report(r))
		},
	}
}

func newBridgesFunc(m *basket.Manager) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Bridges",
			Description: "Bridges lists the bridge ids a script step can name.",
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown list of registered bridge ids.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			var ids []basket.BridgeID
			for b := range m.Engine().Registry().Bridges() {
				ids = append(ids, b)
			}
			return outputResponse(id, "Bridges", renderer.Bridges(ids))
		},
	}
}

func newSimulateFunc(m *basket.Manager) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Simulate",
			Description: `Simulate runs a script against a copy of a basket and reports the
			balances it would leave. Nothing is committed, so it is safe to explore.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"basket": basketParam,
					"script": {
						Type: genai.TypeString,
						Description: `The script as a JSON object with parallel "bridges" and "calls" arrays,
						e.g. {"bridges":["wrap"],"calls":[{"assetIn":"native","percentIn":100000}]}.`,
					},
				},
				Required: []string{"basket", "script"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the balances after the simulated script.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			bid, err := basketArg(args)
			if err != nil {
				return errorResponse(id, "Simulate", err)
			}
			raw, ok := args["script"].(string)
			if !ok {
				return errorResponse(id, "Simulate", fmt.Errorf("argument 'script' is not a string but %T", args["script"]))
			}
			var script basket.Script
			if err := json.Unmarshal([]byte(raw), &script); err != nil {
				return errorResponse(id, "Simulate", fmt.Errorf("argument 'script' is not a valid script: %w", err))
			}
			balances, err := m.Simulate(bid, script)
			if err != nil {
				return errorResponse(id, "Simulate", err)
			}
			r := &basket.Report{ID: bid}
			for _, asset := range slices.Sorted(maps.Keys(balances)) {
				r.Balances = append(r.Balances, basket.BalanceLine{Asset: asset, Balance: balances[asset]})
			}
			return outputResponse(id, "Simulate", renderer.Report(r))
		},
	}
}
