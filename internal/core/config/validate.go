package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/sprout/internal/core/styles"
)

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("remote", c.Remote, validRemoteURL),
		criterio.Run("backend.driver", c.Backend.Driver, validDriver),
		criterio.Run("server.listen", c.Server.Listen, validListenAddr),
		criterio.Run("theme", c.Theme, validTheme),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		c.validateSheets(),
	)
}

func validDriver(driver string) error {
	switch driver {
	case DriverMemory, DriverJSONFile, DriverSQLite, DriverSheets:
		return nil
	default:
		return fmt.Errorf("unknown driver %q (valid: memory, jsonfile, sqlite, sheets)", driver)
	}
}

func validRemoteURL(remote string) error {
	if remote == "" {
		return nil
	}

	u, err := url.Parse(remote)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

func validListenAddr(addr string) error {
	if addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}
	return nil
}

func validTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (valid: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return fmt.Errorf("cannot be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// validateSheets requires the spreadsheet id when the sheets driver is
// selected; the credential and token paths always have defaults.
func (c *Config) validateSheets() error {
	if c.Remote != "" || c.Backend.Driver != DriverSheets {
		return nil
	}

	var errs criterio.FieldErrorsBuilder
	if c.Sheets.SpreadsheetID == "" {
		errs = errs.Append("sheets.spreadsheet_id", fmt.Errorf("required when backend.driver is %q", DriverSheets))
	}
	if _, err := os.Stat(c.Sheets.CredentialsPath); err != nil {
		errs = errs.Append("sheets.credentials_path", fmt.Errorf("credentials file not found: %s", c.Sheets.CredentialsPath))
	}
	return errs.ToError()
}
