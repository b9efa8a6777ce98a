package main

import (
	"go.uber.org/fx"

	"github.com/modelwire/mcpd/pkg/handlers"
	"github.com/modelwire/mcpd/pkg/serverfx"
)

func main() {
	fx.New(serverfx.Module(handlers.Catalog())).Run()
}
