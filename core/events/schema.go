package events

import "github.com/invopop/jsonschema"

// WireSchema reflects the JSON schema of the inbound wire envelope, for
// protocol documentation and contract tests against server payloads.
func WireSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	return reflector.Reflect(envelope{})
}
