package serena

import (
	"encoding/json"

	"github.com/quantmind-br/serenactl/internal/core"
)

const setupInstructions = `## Serena Setup

1. **Install Python 3.11 or 3.12** (required):

       brew install python@3.11
       python3.11 --version

2. **Install the Serena agent**:

       python3.11 -m pip install serena-agent

3. **Pin the interpreter** (optional; auto-detection covers common installs):

       {
         "python_executable": "/opt/homebrew/bin/python3.11"
       }

Set extra environment variables for the launched server under the
"environment" key.
`

const defaultSettings = `{
  "python_executable": null
}
`

// settingsSchema describes the two recognized settings. Unrecognized
// keys are ignored on input, so the schema is permissive about
// additional properties.
var settingsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"python_executable": map[string]any{
			"type":        []string{"string", "null"},
			"description": "Python executable to use (optional, defaults to auto-detection)",
		},
		"environment": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
			"description":          "Additional environment variables for the Serena server",
		},
	},
	"additionalProperties": true,
}

func describeConfiguration() core.ConfigurationSpec {
	schema, err := json.Marshal(settingsSchema)
	if err != nil {
		// The schema document is a fixed literal; marshaling cannot fail.
		panic(err)
	}

	return core.ConfigurationSpec{
		SetupInstructions: setupInstructions,
		DefaultSettings:   defaultSettings,
		SettingsSchema:    string(schema),
	}
}
