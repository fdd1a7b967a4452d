package main

// General API documentation for swaggo. Generate with `swag init -g cmd/reactd/docs.go`.
//
// @title           reactd API
// @version         1.0
// @description     Activity events, page visibility and idle state for a single reactive event loop.
//
// @contact.name   reactd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
