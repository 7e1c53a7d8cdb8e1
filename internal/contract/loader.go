package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// LoadFromArtifact loads an ABI from a local file that is either:
//   - a raw ABI JSON array: [{"type":"function",...}, ...]
//   - a Hardhat/Foundry artifact: {"abi":[...],"bytecode":"0x...",...}
//
// Both formats are detected automatically.
func LoadFromArtifact(path string) ([]ABIEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read ABI file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("ABI file is empty: %s", path)
	}

	var artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
	if json.Unmarshal(data, &artifact) == nil && len(artifact.ABI) > 1 && artifact.ABI[0] == '[' {
		data = artifact.ABI
	}

	entries, err := parseEntries(data)
	if err != nil {
		return nil, err
	}
	if err := validateEntries(entries, path); err != nil {
		return nil, err
	}
	return entries, nil
}

func parseEntries(data []byte) ([]ABIEntry, error) {
	var entries []ABIEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		data = bytes.TrimSpace(data)
		if len(data) > 0 && data[0] == '{' {
			return nil, fmt.Errorf("file is a JSON object, not an ABI array; a Hardhat/Foundry artifact must have an \"abi\" key")
		}
		return nil, fmt.Errorf("invalid ABI JSON: expected an array of function/event definitions: %w", err)
	}
	return entries, nil
}

// validateEntries checks that the parsed ABI has at least one function or event.
func validateEntries(entries []ABIEntry, path string) error {
	if len(entries) == 0 {
		return fmt.Errorf("ABI is empty (no functions or events found): %s", path)
	}
	for _, e := range entries {
		if e.Type == "function" || e.Type == "event" || e.Type == "constructor" {
			return nil
		}
	}
	return fmt.Errorf("ABI has %d entries but none are functions or events: %s", len(entries), path)
}
