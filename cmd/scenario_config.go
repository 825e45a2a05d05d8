package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/beam-sim/beam-sim/sim"
)

// GetScenarioConfig loads a highway scenario from a YAML file.
func GetScenarioConfig(scenarioFilePath string) (*sim.Scenario, error) {
	// Read YAML file
	data, err := os.ReadFile(scenarioFilePath)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	// Parse YAML
	var scenario sim.Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario file: %w", err)
	}

	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	logrus.Infof("Using scenario %q from %s", scenario.Name, scenarioFilePath)
	return &scenario, nil
}
