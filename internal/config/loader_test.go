package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"partyconnect/internal/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "./data")
				convey.So(cfg.MaxNearbyKm, convey.ShouldEqual, 500)
				convey.So(cfg.DefaultNearbyKm, convey.ShouldEqual, 10)
				convey.So(cfg.AuthLatencyMinMS, convey.ShouldEqual, 250)
				convey.So(cfg.AuthLatencyMaxMS, convey.ShouldEqual, 750)
				convey.So(cfg.SeedEvents, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PARTY_ADDR", ":9090")
			_ = os.Setenv("PARTY_DATA_DIR", "/tmp/party-data")
			_ = os.Setenv("PARTY_MAX_NEARBY_KM", "100")
			_ = os.Setenv("PARTY_AUTH_LATENCY_MIN_MS", "0")
			_ = os.Setenv("PARTY_AUTH_LATENCY_MAX_MS", "0")
			_ = os.Setenv("PARTY_SEED_EVENTS", "false")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/tmp/party-data")
				convey.So(cfg.MaxNearbyKm, convey.ShouldEqual, 100)
				convey.So(cfg.AuthLatencyMaxMS, convey.ShouldEqual, 0)
				convey.So(cfg.SeedEvents, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()

			dir := t.TempDir()
			path := filepath.Join(dir, "party.yaml")
			yaml := "addr: \":7070\"\ndata_dir: /var/lib/party\ntoken_ttl_min: 60\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("PARTY_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/var/lib/party")
				convey.So(cfg.TokenTTLMin, convey.ShouldEqual, 60)
			})

			convey.Convey("And env vars still win over the file", func() {
				_ = os.Setenv("PARTY_ADDR", ":6060")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the config is invalid", func() {
			clearConfigEnvVars()
			defer clearConfigEnvVars()

			dir := t.TempDir()
			path := filepath.Join(dir, "party.yaml")
			convey.So(os.WriteFile(path, []byte("addr: \"\"\n"), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("PARTY_CONFIG", path)

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"PARTY_CONFIG",
		"PARTY_ADDR",
		"PARTY_DATA_DIR",
		"PARTY_MAX_NEARBY_KM",
		"PARTY_DEFAULT_NEARBY_KM",
		"PARTY_AUTH_LATENCY_MIN_MS",
		"PARTY_AUTH_LATENCY_MAX_MS",
		"PARTY_TOKEN_SECRET",
		"PARTY_TOKEN_TTL_MIN",
		"PARTY_SEED_EVENTS",
		"PARTY_LOG_LEVEL",
	} {
		_ = os.Unsetenv(key)
	}
}
