package handlers

import (
	"gonotes/utils"

	"github.com/redis/go-redis/v9"
)

// App bundles the shared resources every handler needs. It is built once in
// main and passed explicitly; there is no ambient global state.
type App struct {
	DB      utils.DB
	Redis   *redis.Client
	Secret  []byte
	BaseURL string
	// Mail delivers the verification email; main wires the SendGrid sender.
	Mail func(email string, link string) error
}
