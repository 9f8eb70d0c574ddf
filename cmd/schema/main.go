// Command schema regenerates the JSON schema embedded by the config package.
// Run it whenever the Config struct changes and commit the resulting file:
//
//	go run ./cmd/schema pkg/config/schema.json
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/leadscout/leadscout/pkg/config"
)

func main() {
	out := "pkg/config/schema.json"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}
	if err := generate(out); err != nil {
		log.Fatalf("schema generation failed: %v", err)
	}
	fmt.Printf("wrote config schema to %s\n", out)
}

func generate(path string) error {
	schema, err := config.GenerateSchema()
	if err != nil {
		return fmt.Errorf("reflect config: %w", err)
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
