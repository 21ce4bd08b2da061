package web

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Protocol groups every wire message so one schema documents them all.
type Protocol struct {
	Client ClientMessage `json:"client" jsonschema:"description=Messages sent by the browser"`
	State  StateMessage  `json:"state" jsonschema:"description=Session state pushed by the server"`
	Event  EventMessage  `json:"event" jsonschema:"description=Session events pushed by the server"`
}

// Schema builds the JSON schema of the WebSocket protocol.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(Protocol))
	schema.Title = "Crossy Arcade WebSocket protocol"
	schema.Description = "Messages exchanged on /ws"
	return schema
}

// SchemaJSON returns the indented schema document.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("web: marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
