package wizard

import "context"

// ModelGateway is the boundary to the hosted model backend. Both calls send
// one prompt and return raw text; failures surface as *entity.GatewayError.
type ModelGateway interface {
	CompleteQuestion(ctx context.Context, system, prompt string) (string, error)
	CompleteBlueprint(ctx context.Context, system, prompt string) (string, error)
}
