// Command validate checks the rules presets (*.toml) in a directory, ../configs
// by default. For each file it checks:
//   - TOML syntax and unknown keys
//   - Required fields (name, description)
//   - four_probability within [0, 1]
//   - initial_tiles within [1, 16]
//   - That a seeded preset really replays the same opening
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single preset file, collecting every
// problem instead of stopping at the first.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	var rules engine.Rules
	md, err := toml.DecodeFile(filePath, &rules)
	if err != nil {
		if os.IsNotExist(err) {
			result.fail("Failed to read file: %v", err)
		} else {
			result.fail("Invalid TOML: %v", err)
		}
		return result
	}

	for _, key := range md.Undecoded() {
		result.fail("Unknown key: %s", key)
	}

	// Validate required fields
	if strings.TrimSpace(rules.Name) == "" {
		result.fail("name is required")
	}
	if strings.TrimSpace(rules.Description) == "" {
		result.fail("description is required")
	}

	// Validate spawn settings
	if !md.IsDefined("four_probability") {
		result.fail("four_probability is required")
	} else if math.IsNaN(rules.FourProbability) || rules.FourProbability < 0 || rules.FourProbability > 1 {
		result.fail("four_probability must be between 0 and 1, got %v", rules.FourProbability)
	}
	if rules.InitialTiles < engine.MinInitialTiles || rules.InitialTiles > engine.MaxInitialTiles {
		result.fail("initial_tiles must be between %d and %d, got %d", engine.MinInitialTiles, engine.MaxInitialTiles, rules.InitialTiles)
	}

	if !result.Valid {
		return result
	}

	// Anything the game itself would refuse must show up here too.
	if err := engine.ValidateRules(&rules); err != nil {
		result.fail("%v", err)
		return result
	}

	if rules.Seed != 0 {
		a := engine.NewGrid(&rules, engine.NewRand(rules.Seed))
		b := engine.NewGrid(&rules, engine.NewRand(rules.Seed))
		if a != b {
			result.fail("seed %d does not reproduce the opening", rules.Seed)
			return result
		}
	}

	// Add informational data
	if id := strings.TrimSuffix(result.File, ".toml"); rules.Name != id {
		result.Errors = append(result.Errors, fmt.Sprintf("⚠ Name %q differs from file id %q; sessions report the file id", rules.Name, id))
	}
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", rules.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Chance of a 4: %.0f%%", rules.FourProbability*100))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Starting tiles: %d", rules.InitialTiles))
	if rules.Seed != 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Seed: %d (every game opens the same way)", rules.Seed))
	} else {
		result.Errors = append(result.Errors, "✓ Seed: random")
	}

	return result
}

// validateDir validates every *.toml file in dir. It reports false when any
// file is invalid or the directory holds no presets.
func validateDir(dir string) ([]ValidationResult, bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, false, err
	}
	if len(files) == 0 {
		return nil, false, fmt.Errorf("no presets found in %s", dir)
	}

	allValid := true
	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		result := validateConfig(file)
		if !result.Valid {
			allValid = false
		}
		results = append(results, result)
	}
	return results, allValid, nil
}

// main validates ../configs (or the directory given as the first argument),
// printing a concise report and exiting with non-zero status if any preset
// is invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	results, allValid, err := validateDir(configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	for _, result := range results {
		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All presets are valid!")
	} else {
		fmt.Println("❌ Some presets have errors")
		os.Exit(1)
	}
}
