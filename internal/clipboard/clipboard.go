package clipboard

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/atotto/clipboard"
)

// DefaultTimeoutSeconds is how long a copied secret stays on the
// clipboard before the spawned clearer wipes it.
const DefaultTimeoutSeconds = 45

// ChecksumEnv carries the copied value's checksum to the spawned clearer,
// keeping the value itself out of the child's environment.
const ChecksumEnv = "MPASS_UNCLIP_CHECKSUM"

// Copy places value on the system clipboard and spawns a detached
// clearer that wipes it after timeoutSeconds. The clearer outlives this
// process, so the wipe happens even though the command exits immediately.
func Copy(value []byte, timeoutSeconds int) error {
	if err := clipboard.WriteAll(string(value)); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate own binary for clipboard clearing: %w", err)
	}

	cmd := clearCommand(self, timeoutSeconds, Checksum(value))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to spawn clipboard clearer: %w", err)
	}
	return cmd.Process.Release()
}

// clearCommand builds the detached re-invocation of this binary that
// performs the delayed clear.
func clearCommand(self string, timeoutSeconds int, checksum string) *exec.Cmd {
	cmd := exec.Command(self, "unclip", "--timeout", strconv.Itoa(timeoutSeconds))
	cmd.Env = append(os.Environ(), ChecksumEnv+"="+checksum)
	return cmd
}

// Checksum returns the hex SHA-256 of a clipboard value.
func Checksum(value []byte) string {
	sum := sha256.Sum256(value)
	return hex.EncodeToString(sum[:])
}

// ClearIfUnchanged wipes the clipboard only when it still holds the
// value matching checksum. Anything the user copied in the meantime is
// left alone.
func ClearIfUnchanged(checksum string) error {
	current, err := clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read clipboard: %w", err)
	}

	if Checksum([]byte(current)) != checksum {
		return nil
	}

	if err := clipboard.WriteAll(""); err != nil {
		return fmt.Errorf("failed to clear clipboard: %w", err)
	}
	return nil
}
