package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"kraban/pkg/config"
	"kraban/pkg/utils"
)

const (
	// LegacyVersion is the basilk format: a bare array of projects.
	LegacyVersion = 0
	// CurrentVersion must be bumped whenever the document changes incompatibly.
	CurrentVersion = 1

	FileName = "tasks.json"
)

type document struct {
	Version int       `json:"version"`
	State   stateJSON `json:"state"`
}

type stateJSON struct {
	Projects SortedList[Project] `json:"projects"`
}

// DefaultPath returns the location of the state file in the OS state dir.
func DefaultPath() (string, error) {
	dir, err := utils.GetDir(utils.StateDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the state file at path. A missing file gives an empty state.
func Load(path string, cfg *config.Config) (*State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		utils.Logger().Info("no state file, starting empty", "path", path)
		return &State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	s, err := Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	s.digest = digest(data)
	return s, nil
}

// Decode parses a state document of any known version. A JSON null gives an
// empty state; a document without a version is a basilk document.
// Versions newer than CurrentVersion panic.
func Decode(data []byte, cfg *config.Config) (*State, error) {
	var head any
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	version := LegacyVersion
	var envelope map[string]json.RawMessage
	switch doc := head.(type) {
	case nil:
		return &State{}, nil
	case []any:
	case map[string]any:
		if raw, ok := doc["version"]; ok {
			n, ok := raw.(float64)
			if !ok || n < 0 || n != math.Trunc(n) {
				return nil, fmt.Errorf("invalid state version %v", raw)
			}
			version = int(n)
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("parse state: %w", err)
		}
	default:
		return nil, fmt.Errorf("unexpected state document of type %T", head)
	}

	utils.Logger().Info("decoding state", "version", version, "latest", CurrentVersion)
	switch version {
	case LegacyVersion:
		if envelope != nil {
			return nil, errors.New("basilk document must be an array of projects")
		}
		return fromBasilk(data, cfg)
	case CurrentVersion:
		return decodeCurrent(envelope["state"])
	}
	panic(fmt.Sprintf("state version %d is newer than the supported version %d", version, CurrentVersion))
}

func decodeCurrent(raw json.RawMessage) (*State, error) {
	if len(raw) == 0 {
		return nil, errors.New("missing state")
	}
	if err := validateState(raw); err != nil {
		return nil, fmt.Errorf("invalid state: %w", err)
	}

	var st stateJSON
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return &State{projects: st.Projects}, nil
}

// Encode renders the state as a current version document.
func (s *State) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(document{
		Version: CurrentVersion,
		State:   stateJSON{Projects: s.projects},
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes the state to path, replacing the file atomically.
func (s *State) Save(path string) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+FileName+".*")
	if err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	s.digest = digest(data)
	s.needsSave = false
	utils.Logger().Debug("saved state", "path", path, "projects", s.projects.Len())
	return nil
}

// SaveIfNeeded saves the state only if it changed. It reports whether it wrote.
func (s *State) SaveIfNeeded(path string) (bool, error) {
	if !s.needsSave {
		return false, nil
	}
	if err := s.Save(path); err != nil {
		return false, err
	}
	return true, nil
}

// ChangedOnDisk reports whether the file at path differs from what this state
// last loaded or saved.
func (s *State) ChangedOnDisk(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.digest != "", nil
	}
	if err != nil {
		return false, fmt.Errorf("read state file: %w", err)
	}
	return digest(data) != s.digest, nil
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
