// Copyright 2025 xliffkit LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package qa loads and saves QA profiles: ordered collections of regex
// checks run as a batch against a translation file.
package qa

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// ✅ Check is a single QA check in a profile.
type Check struct {
	Order          int    `xml:"order,attr"`
	Enabled        bool   `xml:"enabled,attr"`
	Name           string `xml:"name"`
	Description    string `xml:"description"`
	Pattern        string `xml:"pattern"`
	Replacement    string `xml:"replacement"`
	Category       string `xml:"category"`
	CaseSensitive  bool   `xml:"case_sensitive"`
	ExcludePattern string `xml:"exclude_pattern"`
}

// 📋 Profile is a named, ordered set of QA checks with metadata.
type Profile struct {
	XMLName     xml.Name `xml:"qa_profile"`
	Name        string   `xml:"metadata>name"`
	Description string   `xml:"metadata>description"`
	Language    string   `xml:"metadata>language"`
	Created     string   `xml:"metadata>created"`
	Modified    string   `xml:"metadata>modified"`
	Checks      []Check  `xml:"checks>check"`
}

// ProfileInfo is the listing view of a profile on disk.
type ProfileInfo struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

// Load reads a QA profile from an XML file. Checks are returned sorted by
// their order attribute.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading profile: %w", err)
	}

	var profile Profile
	if err := xml.Unmarshal(data, &profile); err != nil {
		return nil, errors.Errorf("parsing profile: %w", err)
	}

	sort.SliceStable(profile.Checks, func(i, j int) bool {
		return profile.Checks[i].Order < profile.Checks[j].Order
	})

	for i := range profile.Checks {
		profile.Checks[i].ExcludePattern = strings.TrimSpace(profile.Checks[i].ExcludePattern)
		if profile.Checks[i].Category == "" {
			profile.Checks[i].Category = "Custom"
		}
	}

	return &profile, nil
}

// Save writes the profile to an XML file, refreshing the modified timestamp
// and setting created if it was never set.
func (p *Profile) Save(path string) error {
	now := time.Now().Format("2006-01-02")
	if p.Created == "" {
		p.Created = now
	}
	p.Modified = now

	data, err := xml.MarshalIndent(p, "", "    ")
	if err != nil {
		return errors.Errorf("encoding profile: %w", err)
	}

	out := []byte(xml.Header + string(data) + "\n")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.Errorf("writing profile: %w", err)
	}
	return nil
}

// EnabledChecks returns only the enabled checks, in order.
func (p *Profile) EnabledChecks() []Check {
	var out []Check
	for _, check := range p.Checks {
		if check.Enabled {
			out = append(out, check)
		}
	}
	return out
}

// ListProfiles finds QA profiles in dir (files named *_qa_profile.xml) and
// returns their metadata. Unparseable files are skipped.
func ListProfiles(dir string) ([]ProfileInfo, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*_qa_profile.xml"))
	if err != nil {
		return nil, errors.Errorf("listing profiles: %w", err)
	}

	var out []ProfileInfo
	for _, path := range paths {
		profile, err := Load(path)
		if err != nil {
			continue
		}
		name := profile.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		out = append(out, ProfileInfo{
			Path:        path,
			Name:        name,
			Description: profile.Description,
			Language:    profile.Language,
		})
	}
	return out, nil
}
