package claude

import (
	"fmt"
)

// UpdateResult describes what UpdateHooks did.
type UpdateResult struct {
	// Created is true when settings.json did not exist before.
	Created bool
	// Skipped is true when hooks were already configured and overwrite was off.
	Skipped    bool
	BackupPath string
}

// UpdateHooks merges fragment into <claudeDir>/settings.json.
//
// A missing settings file is created from NewInitialSettings. An existing
// file that already has hooks is left alone unless overwrite is set;
// otherwise it is backed up before the merged result replaces it.
// Malformed settings are never replaced.
func UpdateHooks(claudeDir string, fragment map[string]interface{}, overwrite bool) (UpdateResult, error) {
	var result UpdateResult

	s, err := Load(claudeDir)
	if err != nil {
		return result, err
	}

	if !s.Exists() {
		s = NewInitialSettings(s.filePath)
		result.Created = true
	} else {
		if !overwrite && s.HasHooks() {
			result.Skipped = true
			return result, nil
		}
		backup, err := s.Backup()
		if err != nil {
			return result, fmt.Errorf("backing up settings: %w", err)
		}
		result.BackupPath = backup
	}

	if err := s.MergeHooks(fragment); err != nil {
		return result, err
	}
	if err := s.Save(); err != nil {
		return result, fmt.Errorf("saving settings: %w", err)
	}
	return result, nil
}
