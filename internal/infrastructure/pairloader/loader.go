package pairloader

import (
	"fmt"
	"os"

	"momentum/internal/app/port"
	"momentum/internal/domain/entity"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const defaultPairsFilePath = "pairs.yaml"

// pairsFile is the layout of pairs.yaml.
type pairsFile struct {
	Pairs []entity.TrackedPair `yaml:"pairs"`
}

// PairFileLoader implements port.TrackedPairProvider by reading a YAML file.
// The file is read on every call so edits apply to the next run without a restart.
type PairFileLoader struct {
	filePath   string
	validate   *validator.Validate
	loggerInfo func(msg string, args ...any)
	loggerWarn func(msg string, args ...any)
}

// NewPairFileLoader creates a new PairFileLoader. An empty path selects pairs.yaml.
func NewPairFileLoader(filePath string, loggerInfo, loggerWarn func(msg string, args ...any)) port.TrackedPairProvider {
	if filePath == "" {
		filePath = defaultPairsFilePath
	}
	return &PairFileLoader{
		filePath:   filePath,
		validate:   validator.New(),
		loggerInfo: loggerInfo,
		loggerWarn: loggerWarn,
	}
}

// GetTrackedPairs reads and validates the tracked pairs in file order.
func (l *PairFileLoader) GetTrackedPairs() ([]entity.TrackedPair, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pairs file %s: %w", l.filePath, err)
	}

	var file pairsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse pairs file %s: %w", l.filePath, err)
	}

	for i, p := range file.Pairs {
		if err := l.validate.Struct(p); err != nil {
			return nil, fmt.Errorf("invalid entry %d in %s: %w", i, l.filePath, err)
		}
	}

	if len(file.Pairs) == 0 && l.loggerWarn != nil {
		l.loggerWarn("Pairs file contains no tracked pairs", "path", l.filePath)
	}
	if l.loggerInfo != nil {
		l.loggerInfo("Tracked pairs loaded successfully from file", "count", len(file.Pairs), "path", l.filePath)
	}
	return file.Pairs, nil
}
