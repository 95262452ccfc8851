package integration

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/audit"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/config"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/logging"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/endpoints"
	storegorm "github.com/doodlesbykumbi/swapi-in-go/pkg/server/store/gorm"
)

// startInlineServer starts the server in-process on a free port
func (tc *TestContext) startInlineServer(db *gorm.DB) error {
	audit.SetEnabled(false)

	stores, err := storegorm.NewStores(db)
	if err != nil {
		return fmt.Errorf("failed to create stores: %w", err)
	}

	cfg := &config.Config{
		BindAddress:         "127.0.0.1",
		Port:                0,
		MaxRequestBodyBytes: 1 << 20,
		ReadTimeoutSeconds:  10,
		WriteTimeoutSeconds: 10,
	}
	s := server.NewServer(cfg, stores, logging.Nop)
	endpoints.RegisterAll(s)

	handle, err := s.Start()
	if err != nil {
		return fmt.Errorf("failed to start inline server: %w", err)
	}

	tc.InlineServer = handle
	tc.ServerURL = "http://" + handle.Addr().String()
	return nil
}

// startBinary starts the swapictl server binary
func (tc *TestContext) startBinary(binaryPath, dbURL, port string) error {
	ctx, cancel := context.WithCancel(context.Background())

	// Use --no-migrate since we already ran migrations in the test setup
	cmd := exec.CommandContext(ctx, binaryPath, "server", "--no-migrate", "-b", "127.0.0.1", "-p", port)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"SWAPI_AUDIT_ENABLED=false",
		"SWAPI_LOG_FORMAT=json",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("failed to start binary: %w", err)
	}

	tc.ServerProcess = cmd
	tc.Cancel = cancel
	tc.ServerURL = "http://127.0.0.1:" + port
	return nil
}

// waitForServer polls GET /status until it reports healthy or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/status")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}
