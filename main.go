package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/cmd"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/model"
)

var site model.SiteData

// loadSiteConfig reads the site metadata block of config.yaml. A missing
// file leaves the defaults in place.
func loadSiteConfig(filename string) error {
	yamlFile, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading config file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(yamlFile, &site); err != nil {
		return fmt.Errorf("error unmarshalling config file %s: %w", filename, err)
	}
	return nil
}

func main() {
	if err := loadSiteConfig("config.yaml"); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading site configuration: %v\n", err)
		os.Exit(1)
	}
	cmd.Execute(&site)
}
