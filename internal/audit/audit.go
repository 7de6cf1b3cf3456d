package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/JustNevi/mpass/internal/configs"
)

// FileName is the audit log kept at the store root. The leading dot keeps
// it out of entry listings.
const FileName = ".audit.jsonl"

// Entry is one line of the audit log.
type Entry struct {
	Timestamp string `json:"ts"`   // UTC, RFC3339 with microseconds.
	User      string `json:"user"` // OS account name of the user performing the action.
	UserUUID  string `json:"uuid"` // UUID of the user performing the action.
	Operation string `json:"op"`   // init, insert, remove, or rotate.

	// Per-operation details, present when they apply.
	Path      string `json:"path,omitempty"`      // Logical entry path for insert/remove.
	Recipient string `json:"recipient,omitempty"` // Bound key id for init.
	Backend   string `json:"backend,omitempty"`   // Backend in use for init.
	Count     int    `json:"count,omitempty"`     // Re-encrypted entries for a key change.
}

// NewEntry starts an entry for op with the user fields populated from the
// local configuration.
func NewEntry(op string) Entry {
	entry := Entry{
		Operation: op,
		User:      configs.UserSettings.Username,
	}

	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return entry
	}
	entry.UserUUID = userConfig.User.UUID

	return entry
}

// Log appends an entry to the store's audit log.
// If logging fails, the operation proceeds anyway; the trail is
// bookkeeping, not a gate.
func Log(root string, entry Entry) {
	if root == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	f, err := os.OpenFile(LogPath(root), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the audit log location for a store root.
func LogPath(root string) string {
	return filepath.Join(root, FileName)
}

// ReadEntries reads all entries from a store's audit log. A store that
// never logged anything yields nil.
func ReadEntries(root string) ([]Entry, error) {
	data, err := os.ReadFile(LogPath(root))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries decodes JSON Lines data into entries, dropping any line
// that does not parse.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
