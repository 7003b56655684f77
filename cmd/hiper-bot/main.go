package main

// @title Hiper Bot API
// @version 1.0
// @description Assistente de procedimentos logísticos e fiscais por palavras-chave
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	Execute()
}
