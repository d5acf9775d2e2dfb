package agent

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"google.golang.org/genai"
)

// Function is one tool a model can call: it declares itself to the model and
// answers calls. Experts are Functions too, which is how experts ask each
// other questions.
type Function interface {
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// toolbox indexes an expert's functions by declared name.
type toolbox map[string]Function

func newToolbox[T Function](functions []T) toolbox {
	tb := make(toolbox, len(functions))
	for _, f := range functions {
		tb[f.Declaration().Name] = f
	}
	return tb
}

// declarations lists the tools in name order, the shape genai wants.
func (tb toolbox) declarations() []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tb))
	for _, name := range slices.Sorted(maps.Keys(tb)) {
		decls = append(decls, tb[name].Declaration())
	}
	return decls
}

// dispatch routes a model's function call to the named tool. Unknown names
// are answered with an error response rather than failing the chat.
func (tb toolbox) dispatch(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	f, ok := tb[call.Name]
	if !ok {
		return &genai.FunctionResponse{
			ID:   call.ID,
			Name: call.Name,
			Response: map[string]any{
				"error": fmt.Sprintf("unknown function %s", call.Name),
			},
		}
	}
	return f.Call(ctx, call.ID, call.Args)
}
