package main

import (
	"github.com/storefront-labs/order/internal/app"
	"github.com/storefront-labs/order/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
