package aws

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/vietdv277/stratus/pkg/types"
)

var (
	credentialsSectionRe = regexp.MustCompile(`^\[([^\]]+)\]$`)
	configSectionRe      = regexp.MustCompile(`^\[profile\s+([^\]]+)\]$`)
	configDefaultRe      = regexp.MustCompile(`^\[default\]$`)
	regionRe             = regexp.MustCompile(`^\s*region\s*=\s*(.+)$`)
)

// ListProfiles reads AWS profiles from ~/.aws/credentials and ~/.aws/config.
// Profiles present in both files are merged, with the credentials file
// taking precedence for the source and the config file supplying the region.
func ListProfiles() ([]types.AWSProfile, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	profileMap := make(map[string]*types.AWSProfile)

	credProfiles, err := parseINIFile(filepath.Join(home, ".aws", "credentials"), "credentials", false)
	if err == nil {
		for _, p := range credProfiles {
			profileMap[p.Name] = &p
		}
	}

	configProfiles, err := parseINIFile(filepath.Join(home, ".aws", "config"), "config", true)
	if err == nil {
		for _, p := range configProfiles {
			if existing, ok := profileMap[p.Name]; ok {
				if existing.Region == "" && p.Region != "" {
					existing.Region = p.Region
				}
			} else {
				// Config-only profiles (SSO profiles, etc.)
				profileMap[p.Name] = &p
			}
		}
	}

	var profiles []types.AWSProfile
	for _, p := range profileMap {
		profiles = append(profiles, *p)
	}

	// "default" first, then alphabetical
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Name == "default" {
			return true
		}
		if profiles[j].Name == "default" {
			return false
		}
		return profiles[i].Name < profiles[j].Name
	})

	return profiles, nil
}

// ValidateProfile checks if a profile exists
func ValidateProfile(name string) bool {
	profiles, err := ListProfiles()
	if err != nil {
		return false
	}

	for _, p := range profiles {
		if p.Name == name {
			return true
		}
	}
	return false
}

// parseINIFile parses an AWS INI-style config file. Config files use
// [profile name] section headers, credentials files use [name].
func parseINIFile(path, source string, isConfigFile bool) ([]types.AWSProfile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var profiles []types.AWSProfile
	var current *types.AWSProfile

	flush := func() {
		if current != nil {
			profiles = append(profiles, *current)
		}
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if isConfigFile {
			if configDefaultRe.MatchString(line) {
				flush()
				current = &types.AWSProfile{Name: "default", Source: source}
				continue
			}
			if matches := configSectionRe.FindStringSubmatch(line); len(matches) == 2 {
				flush()
				current = &types.AWSProfile{Name: strings.TrimSpace(matches[1]), Source: source}
				continue
			}
		} else {
			if matches := credentialsSectionRe.FindStringSubmatch(line); len(matches) == 2 {
				flush()
				current = &types.AWSProfile{Name: strings.TrimSpace(matches[1]), Source: source}
				continue
			}
		}

		if current != nil {
			if matches := regionRe.FindStringSubmatch(line); len(matches) == 2 {
				current.Region = strings.TrimSpace(matches[1])
			}
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}
