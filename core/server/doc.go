// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application; this package only defines the
// settings it reads: the listen port, the optional API key and the request
// body limit.
//
// # Usage
//
//	app := fiber.New(fiber.Config{BodyLimit: cfg.Server.BodyLimit()})
//	log.Fatal(app.Listen(cfg.Server.Address()))
package server
