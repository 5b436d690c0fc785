package config

import (
	"fmt"
	"os"
	"strconv"
)

// Env is the process configuration read from the environment (and .env).
type Env struct {
	HTTPAddr    string // PACKS_HTTP_ADDR
	GRPCAddr    string // PACKS_GRPC_ADDR; "" disables gRPC
	StoreURL    string // PACKS_STORE
	ConfigPath  string // PACKS_CONFIG; pack table overrides
	CatalogPath string // PACKS_CATALOG; "" uses the bundled cards
	NATSURL     string // NATS_URL; "" disables events
	Seed        *uint64
}

// FromEnv reads Env with defaults for unset variables.
func FromEnv() (Env, error) {
	e := Env{
		HTTPAddr:    getenv("PACKS_HTTP_ADDR", ":8080"),
		GRPCAddr:    getenv("PACKS_GRPC_ADDR", ":9090"),
		StoreURL:    getenv("PACKS_STORE", "file:data/state.json"),
		ConfigPath:  os.Getenv("PACKS_CONFIG"),
		CatalogPath: os.Getenv("PACKS_CATALOG"),
		NATSURL:     os.Getenv("NATS_URL"),
	}
	if s := os.Getenv("PACKS_SEED"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Env{}, fmt.Errorf("invalid PACKS_SEED %q: %w", s, err)
		}
		e.Seed = &v
	}
	return e, nil
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
