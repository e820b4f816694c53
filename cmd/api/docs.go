package main

// @title           Luthier CRM API
// @version         1.0
// @description     Inventory, client relationship and invoicing API for a string instrument dealer

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description JWT authentication header using the Bearer scheme. Example: "Bearer {token}"
