package config

import (
	"log/slog"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/uibuilder/internal/logfields"
)

// loadEnvFiles loads environment variables from the first dotenv file found.
// Values already present in the environment win, matching godotenv's
// non-overriding Load semantics.
func loadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envPath); err == nil {
			slog.Debug("Loaded environment variables", logfields.Path(envPath))
			return
		}
	}
}
