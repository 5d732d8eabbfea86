package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"news-analyzer/topic"
)

// relevanceFile is the YAML shape of a relevance keyword override.
type relevanceFile struct {
	Keywords []string `yaml:"keywords"`
}

// topicFile is the YAML shape of a topic table override. Weights are
// optional; categories replace the built-in table wholesale.
type topicFile struct {
	Weights    *topic.Weights            `yaml:"weights"`
	Categories map[string]topic.Keywords `yaml:"categories"`
}

// LoadRelevanceKeywords reads a keyword list override from a YAML file.
func LoadRelevanceKeywords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read relevance keywords file: %w", err)
	}

	var file relevanceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse relevance keywords file %s: %w", path, err)
	}

	if len(file.Keywords) == 0 {
		return nil, fmt.Errorf("relevance keywords file %s defines no keywords", path)
	}

	return file.Keywords, nil
}

// LoadTopicTable reads a topic keyword table override from a YAML file.
// The returned weights are nil when the file does not set them.
func LoadTopicTable(path string) (map[string]topic.Keywords, *topic.Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read topic table file: %w", err)
	}

	var file topicFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse topic table file %s: %w", path, err)
	}

	if len(file.Categories) == 0 {
		return nil, nil, fmt.Errorf("topic table file %s defines no categories", path)
	}

	return file.Categories, file.Weights, nil
}
