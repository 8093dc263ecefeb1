package main

import "foodorder/cmd/foodorder/commands"

// @title Food Ordering API
// @version 1.0
// @description Food ordering backend with users, restaurants, menus and orders behind JWT authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	commands.Execute()
}
