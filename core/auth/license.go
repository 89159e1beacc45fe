// Package auth implements the offline license key scheme: a key is the
// first 16 hex digits of sha256(deviceID|expiry|salt), uppercased. Keys are
// issued by the keygen command and checked locally, no license server.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

const expiryLayout = "2006-01-02"

// GenerateKey derives the license key for a device and expiry date
// (YYYY-MM-DD).
func GenerateKey(deviceID, expiry, salt string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", deviceID, expiry, salt)))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:16]
}

// Validate checks a key against a device and expiry. A key is valid when it
// matches the derivation and the expiry date has not passed.
func Validate(key, deviceID, expiry, salt string, now time.Time) error {
	if GenerateKey(deviceID, expiry, salt) != strings.ToUpper(strings.TrimSpace(key)) {
		return fmt.Errorf("license key does not match device %s", deviceID)
	}

	until, err := time.Parse(expiryLayout, expiry)
	if err != nil {
		return fmt.Errorf("invalid expiry date %q: %w", expiry, err)
	}
	// Valid through the whole expiry day.
	if now.After(until.AddDate(0, 0, 1)) {
		return fmt.Errorf("license expired on %s", expiry)
	}
	return nil
}

// MachineID derives a stable device identifier from the primary network
// interface's hardware address, falling back to the hostname.
func MachineID() string {
	seed := ""
	if ifaces, err := net.Interfaces(); err == nil {
		for _, iface := range ifaces {
			if iface.Flags&net.FlagLoopback != 0 || len(iface.HardwareAddr) == 0 {
				continue
			}
			seed = iface.HardwareAddr.String()
			break
		}
	}
	if seed == "" {
		host, _ := os.Hostname()
		seed = host
	}

	sum := sha256.Sum256([]byte(seed))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:12]
}

// AppendLog records an issued key in the license log file.
func AppendLog(path, deviceID, expiry, key string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open license log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s | device=%s expiry=%s key=%s\n",
		time.Now().Format(time.RFC3339), deviceID, expiry, key)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to write license log: %w", err)
	}
	return nil
}

// SearchLog returns log lines mentioning the device ID.
func SearchLog(path, deviceID string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" && strings.Contains(line, deviceID) {
			matches = append(matches, line)
		}
	}
	return matches, nil
}
