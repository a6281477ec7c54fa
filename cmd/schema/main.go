// Command schema writes the JSON schema of the signalist configuration file.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/signalist/pkg/config"
)

func main() {
	out := "schema.json"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	data, err := json.MarshalIndent(config.GenerateSchema(), "", "  ")
	if err != nil {
		lgr.Fatalf("[ERROR] can't marshal config schema: %v", err)
	}
	if err := os.WriteFile(out, append(data, '\n'), 0o600); err != nil {
		lgr.Fatalf("[ERROR] can't write %s: %v", out, err)
	}
	fmt.Printf("config schema written to %s\n", out)
}
