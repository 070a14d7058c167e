package core

import (
	"github.com/aretw0/introspection"
)

// EngineState exposes internal state for observability.
type EngineState struct {
	LastCompose ComposeStats `json:"last_compose"`
}

// State implements introspection.Introspectable.
func (e *Engine) State() any {
	return EngineState{LastCompose: e.LastStats()}
}

// ComponentType implements introspection.Component.
func (e *Engine) ComponentType() string {
	return "composition-engine"
}

var _ introspection.Introspectable = (*Engine)(nil)
var _ introspection.Component = (*Engine)(nil)
