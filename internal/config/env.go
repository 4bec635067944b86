package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	checkerrors "github.com/prco/check-status/pkg/errors"
)

// EnvKeys lists the variables the env file must define.
var EnvKeys = []string{
	"wis_credentials",
	"wis_test_url",
	"wis_prod_url",
	"wis_report_folder",
	"oneguard_credentials",
	"oneguard_test_url",
	"oneguard_prod_url",
	"oneguard_report_folder",
}

// ProviderEnv holds the settings of one provider as read from the env file.
type ProviderEnv struct {
	Username     string
	Password     string
	TestURL      string
	ProdURL      string
	ReportFolder string
}

// Env is the decoded env file.
type Env struct {
	Wis      ProviderEnv
	OneGuard ProviderEnv
}

// LookupFunc reads a variable from the surrounding environment.
type LookupFunc func(key string) (string, bool)

// LoadEnv reads the dotenv file at path. Variables already present through
// lookup take precedence over the file, as with a regular dotenv load, but the
// process environment itself is never modified. lookup may be nil.
func LoadEnv(path string, lookup LookupFunc) (*Env, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, checkerrors.NewValidationError("config_env_file", fmt.Sprintf("Missing env file: %s", path), err)
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, checkerrors.NewParseError(path, extractLine(err), err)
	}

	if lookup != nil {
		for _, key := range EnvKeys {
			if v, ok := lookup(key); ok {
				values[key] = v
			}
		}
	}

	return decodeEnv(values)
}

func decodeEnv(values map[string]string) (*Env, error) {
	var missing []string
	for _, key := range EnvKeys {
		if _, ok := values[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, checkerrors.NewValidationError("env", "Invalid env variable: "+strings.Join(missing, ", "), nil)
	}

	wis, err := providerEnv("wis", values)
	if err != nil {
		return nil, err
	}
	oneguard, err := providerEnv("oneguard", values)
	if err != nil {
		return nil, err
	}

	return &Env{Wis: wis, OneGuard: oneguard}, nil
}

func providerEnv(prefix string, values map[string]string) (ProviderEnv, error) {
	username, password, ok := splitCredentials(values[prefix+"_credentials"])
	if !ok {
		return ProviderEnv{}, checkerrors.NewValidationError(prefix+"_credentials", fmt.Sprintf("Invalid formatting of %s credentials", prefix), nil)
	}

	return ProviderEnv{
		Username:     username,
		Password:     password,
		TestURL:      values[prefix+"_test_url"],
		ProdURL:      values[prefix+"_prod_url"],
		ReportFolder: values[prefix+"_report_folder"],
	}, nil
}

// splitCredentials splits "username,password". Anything after a second comma
// is ignored.
func splitCredentials(raw string) (string, string, bool) {
	parts := strings.Split(raw, ",")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
