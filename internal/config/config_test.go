// Package config provides configuration management for the race-edge scanner.
package config

import (
	"os"
	"testing"
	"time"
)

const (
	validConfigPath              = "testdata/valid_config.yaml"
	expansionConfigPath          = "testdata/expansion_config.yaml"
	nonexistentConfigPath        = "testdata/nonexistent_config.yaml"
	expectedNoErrorLoadingConfig = "expected no error loading config, got %v"
	expectedNoErrorMsg           = "expected no error, got %v"
	expectedNonNilConfig         = "expected non-nil config"
	raceEdgeName                 = "race-edge"
	developmentEnv               = "development"
	invalidEnv                   = "invalid"
	testAppName                  = "test-app"
	testBucketValue              = "reports-bucket"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg == nil {
		t.Fatal(expectedNonNilConfig)
	}

	if cfg.App.Name != raceEdgeName {
		t.Errorf("expected app name '%s', got '%s'", raceEdgeName, cfg.App.Name)
	}

	if cfg.App.Environment != developmentEnv {
		t.Errorf("expected environment '%s', got '%s'", developmentEnv, cfg.App.Environment)
	}

	if cfg.Forecast.Cycle != 2022 {
		t.Errorf("expected forecast cycle 2022, got %d", cfg.Forecast.Cycle)
	}

	if cfg.Scan.MinProfitPerShare != 0.05 {
		t.Errorf("expected min profit 0.05, got %v", cfg.Scan.MinProfitPerShare)
	}

	if len(cfg.Scan.Chambers) != 2 {
		t.Errorf("expected 2 chambers, got %d", len(cfg.Scan.Chambers))
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	os.Setenv("RACE_EDGE_APP_NAME", testAppName)
	defer os.Unsetenv("RACE_EDGE_APP_NAME")

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Name != testAppName {
		t.Errorf("expected app name '%s' from environment, got '%s'", testAppName, cfg.App.Name)
	}
}

// TestLoadConfigExpandsPlaceholders tests ${VAR} expansion in the YAML file
func TestLoadConfigExpandsPlaceholders(t *testing.T) {
	os.Setenv("TEST_PUBLISH_BUCKET", testBucketValue)
	defer os.Unsetenv("TEST_PUBLISH_BUCKET")

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Publish.Bucket != testBucketValue {
		t.Errorf("expected bucket '%s', got '%s'", testBucketValue, cfg.Publish.Bucket)
	}
}

// TestLoadWithDefaults tests that defaults cover a missing config file
func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Market.APIURL == "" {
		t.Error("expected default market api_url")
	}

	if cfg.Scan.Expression != "_classic" {
		t.Errorf("expected default expression '_classic', got '%s'", cfg.Scan.Expression)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

// TestValidateSuccess tests validation of a valid configuration
func TestValidateSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

// TestValidateInvalidEnvironment tests validation of invalid environment
func TestValidateInvalidEnvironment(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.App.Environment = invalidEnv
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid environment")
	}
}

// TestValidateInvalidChambers tests validation of unknown chamber names
func TestValidateInvalidChambers(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Scan.Chambers = []string{"senate", "house"}
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for unknown chamber")
	}
}

// TestValidateInvalidCycle tests validation of odd election years
func TestValidateInvalidCycle(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Forecast.Cycle = 2023
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for odd cycle year")
	}
}

// TestValidateExpressionPrefix tests the variant tag cross-field rule
func TestValidateExpressionPrefix(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Scan.Expression = "classic"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for variant tag without underscore")
	}
}

// TestValidatePublishRequirements tests publish cross-field rules
func TestValidatePublishRequirements(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Publish.Enabled = true
	cfg.Publish.Bucket = ""
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for enabled publish without bucket")
	}

	cfg.Publish.Bucket = testBucketValue
	cfg.Publish.Region = ""
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for enabled publish without region")
	}

	cfg.Publish.Region = "us-east-1"
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected complete publish config to validate, got %v", err)
	}
}

// TestValidateNotifyRequirements tests notify cross-field rules
func TestValidateNotifyRequirements(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Notify.Enabled = true
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for enabled notify without token")
	}

	cfg.Notify.BotToken = "123456:AAbbcc"
	cfg.Notify.ChatID = 42
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected complete notify config to validate, got %v", err)
	}
}

// TestValidateEnvironmentRules tests environment-specific requirements
func TestValidateEnvironmentRules(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.App.Environment = "production"
	cfg.Notify.Enabled = true
	cfg.Notify.BotToken = "YOUR_TOKEN_HERE"
	cfg.Notify.ChatID = 42
	if err := ValidateEnvironment(cfg); err == nil {
		t.Fatal("expected error for placeholder token in production")
	}

	cfg.App.Environment = developmentEnv
	cfg.Publish.Enabled = true
	if err := ValidateEnvironment(cfg); err == nil {
		t.Fatal("expected error for publishing in development")
	}
}

// TestConfigHelpers tests the duration and environment helpers
func TestConfigHelpers(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if !cfg.IsDevelopment() || cfg.IsProduction() || cfg.IsStaging() {
		t.Error("environment helpers disagree with config")
	}

	if cfg.Market.Timeout() != 30*time.Second {
		t.Errorf("market timeout = %v", cfg.Market.Timeout())
	}

	if cfg.Forecast.CacheTTL() != time.Hour {
		t.Errorf("forecast cache TTL = %v", cfg.Forecast.CacheTTL())
	}

	if cfg.Monitor.StaleAfter() != 45*time.Minute {
		t.Errorf("monitor stale after = %v", cfg.Monitor.StaleAfter())
	}
}
