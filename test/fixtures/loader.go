package fixtures

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/stakeforms/internal/contract"
)

// Artifact mirrors the parts of a Hardhat build artifact the loader reads.
type Artifact struct {
	Format       string              `json:"_format"`
	ContractName string              `json:"contractName"`
	ABI          []contract.ABIEntry `json:"abi"`
	Bytecode     string              `json:"bytecode"`
}

// WriteArtifact writes a Hardhat-style artifact for entries into a temp dir
// and returns its path.
func WriteArtifact(t *testing.T, name string, entries []contract.ABIEntry) string {
	t.Helper()
	data, err := json.MarshalIndent(Artifact{
		Format:       "hh-sol-artifact-1",
		ContractName: name,
		ABI:          entries,
		Bytecode:     "0x",
	}, "", "  ")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), name+".json")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

// StakingArtifact writes the built-in staking ABI as a Hardhat artifact.
func StakingArtifact(t *testing.T) string {
	t.Helper()
	entries := contract.GetBuiltinABI(contract.BuiltinStaking)
	require.NotEmpty(t, entries)
	return WriteArtifact(t, "Staking", entries)
}

// RawABI writes entries as a bare ABI array and returns its path.
func RawABI(t *testing.T, name string, entries []contract.ABIEntry) string {
	t.Helper()
	data, err := json.Marshal(entries)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), name+".abi.json")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}
