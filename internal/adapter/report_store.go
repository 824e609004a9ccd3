package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "filegrab.dev/pkg/filegrab/internal/model"
)

const (
	reportFilePrefix = "run-"
	reportFileExt    = ".yaml"
	reportTimeLayout = "20060102-150405"

	reportDirPerm  = 0o750
	reportFilePerm = 0o600
)

// ReportStore persists run reports and loads them back for viewing.
type ReportStore interface {
	SaveReport(dir m.Path, report m.RunReport) (m.Path, error)
	LoadLatestReport(dir m.Path) (m.RunReport, error)
}

// YAMLReportStore stores one YAML file per run under a reports directory.
type YAMLReportStore struct{}

// NewYAMLReportStore constructs a YAMLReportStore.
func NewYAMLReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReport writes the report to dir as run-<timestamp>.yaml, creating dir
// if needed, and returns the written path.
func (s *YAMLReportStore) SaveReport(dir m.Path, report m.RunReport) (m.Path, error) {
	if err := os.MkdirAll(string(dir), reportDirPerm); err != nil {
		return "", fmt.Errorf("create reports dir %s: %w", dir, err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	name := reportFilePrefix + report.FinishedAt.Format(reportTimeLayout) + reportFileExt
	path := filepath.Join(string(dir), name)

	if err := os.WriteFile(path, data, reportFilePerm); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}

	return m.Path(path), nil
}

// LoadLatestReport reads the most recent run-*.yaml report from dir. The
// timestamped file names sort lexically in chronological order.
func (s *YAMLReportStore) LoadLatestReport(dir m.Path) (m.RunReport, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return m.RunReport{}, fmt.Errorf("read reports dir %s: %w", dir, err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, reportFilePrefix) && strings.HasSuffix(name, reportFileExt) {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return m.RunReport{}, fmt.Errorf("no run reports found in %s", dir)
	}

	sort.Strings(names)
	latest := filepath.Join(string(dir), names[len(names)-1])

	// #nosec G304 - path is assembled from the reports dir listing
	data, err := os.ReadFile(latest)
	if err != nil {
		return m.RunReport{}, fmt.Errorf("read report %s: %w", latest, err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("decode report %s: %w", latest, err)
	}

	return report, nil
}
