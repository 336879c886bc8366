package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ezypc-storefront/internal/models"
	"ezypc-storefront/pkg/registry"
)

var registryPath string

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "export":
		err = runExport(os.Args[2:])
	case "add":
		err = runAdd(os.Args[2:])
	case "update":
		err = runUpdate(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "help", "-h", "--help":
		help()
		return
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		help()
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) error {
	cmd := flag.NewFlagSet("export", flag.ExitOnError)
	cmd.StringVar(&registryPath, "path", "configs/question-registry.json", "Path to write the registry file")
	force := cmd.Bool("force", false, "Overwrite an existing file")
	cmd.Parse(args)

	if _, err := os.Stat(registryPath); err == nil && !*force {
		return fmt.Errorf("%s already exists, pass -force to overwrite", registryPath)
	}

	reg := registry.Default()
	reg.LastUpdated = time.Now().Format(time.RFC3339)
	if err := saveRegistry(reg, registryPath); err != nil {
		return err
	}
	fmt.Printf("Wrote built-in question bank to %s\n", registryPath)
	return nil
}

func runAdd(args []string) error {
	cmd := flag.NewFlagSet("add", flag.ExitOnError)
	cmd.StringVar(&registryPath, "path", "configs/question-registry.json", "Path to registry file")
	useCase := cmd.String("useCase", "", "Use case the question belongs to (required)")
	id := cmd.String("id", "", "Question ID (required)")
	text := cmd.String("text", "", "Question text shown to the customer (required)")
	options := cmd.String("options", "", "Comma separated answer options (required)")
	category := cmd.String("category", "", "Question category")
	cmd.Parse(args)

	if *useCase == "" || *id == "" || *text == "" || *options == "" {
		cmd.Usage()
		return fmt.Errorf("useCase, id, text and options are required")
	}

	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	entry, err := findUseCase(reg, models.UseCase(*useCase))
	if err != nil {
		return err
	}
	for _, q := range entry.Questions {
		if q.ID == *id {
			return fmt.Errorf("question with ID %s already exists", *id)
		}
		if q.Text == *text {
			return fmt.Errorf("question text already used by %s", q.ID)
		}
	}

	entry.Questions = append(entry.Questions, models.Question{
		ID:       *id,
		Text:     *text,
		Options:  splitOptions(*options),
		Category: *category,
	})

	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return saveRegistry(reg, registryPath)
}

func runUpdate(args []string) error {
	cmd := flag.NewFlagSet("update", flag.ExitOnError)
	cmd.StringVar(&registryPath, "path", "configs/question-registry.json", "Path to registry file")
	useCase := cmd.String("useCase", "", "Use case the question belongs to (required)")
	id := cmd.String("id", "", "Question ID (required)")
	field := cmd.String("field", "", "Field to update: text, options or category (required)")
	value := cmd.String("value", "", "New value (required)")
	cmd.Parse(args)

	if *useCase == "" || *id == "" || *field == "" || *value == "" {
		cmd.Usage()
		return fmt.Errorf("useCase, id, field and value are required")
	}

	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	entry, err := findUseCase(reg, models.UseCase(*useCase))
	if err != nil {
		return err
	}

	found := false
	for i := range entry.Questions {
		if entry.Questions[i].ID != *id {
			continue
		}
		found = true
		switch *field {
		case "text":
			entry.Questions[i].Text = *value
		case "options":
			entry.Questions[i].Options = splitOptions(*value)
		case "category":
			entry.Questions[i].Category = *value
		default:
			return fmt.Errorf("unknown field: %s", *field)
		}
		break
	}

	if !found {
		return fmt.Errorf("question with ID %s not found in %s", *id, *useCase)
	}

	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return saveRegistry(reg, registryPath)
}

func runList(args []string) error {
	cmd := flag.NewFlagSet("list", flag.ExitOnError)
	cmd.StringVar(&registryPath, "path", "", "Path to registry file (built-in bank when empty)")
	cmd.Parse(args)

	reg, err := registry.Load(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	for _, uc := range reg.UseCaseEntries() {
		fmt.Printf("%s (%s)\n", uc.DisplayName, uc.UseCase)
		for _, q := range uc.Questions {
			fmt.Printf("  [%s] %s\n", q.ID, q.Text)
			for _, opt := range q.Options {
				fmt.Printf("      - %s\n", opt)
			}
		}
	}
	return nil
}

func runValidate(args []string) error {
	cmd := flag.NewFlagSet("validate", flag.ExitOnError)
	cmd.StringVar(&registryPath, "path", "configs/question-registry.json", "Path to registry file")
	cmd.Parse(args)

	// LoadRegistry rejects unknown use cases and empty questions.
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	seen := make(map[models.UseCase]bool)
	total := 0
	for _, uc := range reg.UseCases {
		if seen[uc.UseCase] {
			return fmt.Errorf("duplicate use case: %s", uc.UseCase)
		}
		seen[uc.UseCase] = true

		ids := make(map[string]bool)
		texts := make(map[string]bool)
		for _, q := range uc.Questions {
			if q.ID == "" {
				return fmt.Errorf("use case %s has a question without an ID", uc.UseCase)
			}
			if ids[q.ID] {
				return fmt.Errorf("use case %s: duplicate question ID %s", uc.UseCase, q.ID)
			}
			if texts[q.Text] {
				return fmt.Errorf("use case %s: duplicate question text %q", uc.UseCase, q.Text)
			}
			ids[q.ID] = true
			texts[q.Text] = true
			total++
		}
	}

	for _, uc := range []models.UseCase{models.UseCaseGaming, models.UseCaseStudent, models.UseCaseGeneral} {
		if !seen[uc] {
			fmt.Printf("Warning: use case %s has no questions\n", uc)
		}
	}

	fmt.Printf("Registry validation passed. Found %d use cases and %d questions.\n", len(reg.UseCases), total)
	return nil
}

func findUseCase(reg *registry.QuestionRegistry, useCase models.UseCase) (*registry.UseCaseEntry, error) {
	for i := range reg.UseCases {
		if reg.UseCases[i].UseCase == useCase {
			return &reg.UseCases[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", registry.ErrUnknownUseCase, useCase)
}

func splitOptions(raw string) []string {
	var out []string
	for _, opt := range strings.Split(raw, ",") {
		if opt = strings.TrimSpace(opt); opt != "" {
			out = append(out, opt)
		}
	}
	return out
}

// saveRegistry handles saving the registry to file
func saveRegistry(reg *registry.QuestionRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}

	return nil
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  export    Write the built-in question bank to a JSON file
  add       Add a question to a use case
  update    Update a field of an existing question
  list      Print every use case and its questions
  validate  Validate the registry file
  help      Show this help message

Examples:
  registry-updater export -path configs/question-registry.json
  registry-updater add -useCase Gaming -id gaming-monitor -text "Which monitor do you own?" -options "1080p 60Hz,1440p 144Hz,4K"
  registry-updater update -useCase Gaming -id gaming-monitor -field category -value secondary
  registry-updater validate -path configs/question-registry.json

Use 'registry-updater <command> -h' for more information about a command.
` + "\n")
}
