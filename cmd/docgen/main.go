package main

import (
	"context"
	_ "embed"

	"github.com/goaux/headline"

	"github.com/takumakei/docgen-go/trigger"
)

//go:embed usage.md
var usage string

func main() {
	trigger.Main(context.Background(), trigger.Config{
		Use:     "docgen",
		Short:   headline.Get(usage),
		Long:    usage,
		Version: "v0.1.0",

		DefaultManifest:  "rules.yaml",
		DefaultSite:      ".",
		DefaultChecker:   "lint",
		DefaultFormat:    false,
		DefaultFormatter: []string{"prettier", "--parser=markdown"},
	})
}
