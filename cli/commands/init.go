package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ormkit/ormkit/cli/internal/config"
	"github.com/ormkit/ormkit/cli/internal/ui"
)

const starterSchema = `// ormkit entity definitions
model User {
    fillable name, email, age, password
    hidden password
    has_many posts Post
}

model Post {
    fillable title, body, user_id
    belongs_to author User
}
`

// NewInitCommand scaffolds a new ormkit project interactively.
func NewInitCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new ormkit project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept defaults without prompting")

	return cmd
}

func runInit(yes bool) error {
	ui.PrintHeader("ormkit", "project setup")

	cfg := &config.Config{
		SchemaPath: "schema.okd",
		OutputPath: "./db",
		OutputPkg:  "db",
		Provider:   "sqlite",
	}
	databaseURL := "ormkit.db"

	if !yes {
		questions := []*survey.Question{
			{
				Name: "provider",
				Prompt: &survey.Select{
					Message: "Database provider:",
					Options: []string{"sqlite", "postgresql", "mysql"},
					Default: "sqlite",
				},
			},
			{
				Name: "databaseURL",
				Prompt: &survey.Input{
					Message: "Database URL:",
					Default: databaseURL,
				},
			},
			{
				Name: "schemaPath",
				Prompt: &survey.Input{
					Message: "Definition file path:",
					Default: cfg.SchemaPath,
				},
			},
		}

		answers := struct {
			Provider    string
			DatabaseURL string
			SchemaPath  string
		}{}

		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}

		cfg.Provider = answers.Provider
		cfg.SchemaPath = answers.SchemaPath
		databaseURL = answers.DatabaseURL
	}

	ui.PrintStep(1, 3, "writing "+cfg.SchemaPath)
	exists, err := afero.Exists(config.AppFs, cfg.SchemaPath)
	if err != nil {
		return err
	}
	if exists {
		ui.PrintWarning("%s already exists, keeping it", cfg.SchemaPath)
	} else if err := afero.WriteFile(config.AppFs, cfg.SchemaPath, []byte(starterSchema), 0644); err != nil {
		return err
	}

	ui.PrintStep(2, 3, "writing ormkit.yaml")
	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	ui.PrintStep(3, 3, "writing .env")
	envContent := fmt.Sprintf("DATABASE_URL=%s\n", databaseURL)
	if err := afero.WriteFile(config.AppFs, ".env", []byte(envContent), 0600); err != nil {
		return err
	}

	ui.PrintSuccess("project initialized")
	return ui.PrintMarkdown("## Next steps\n\n1. Edit `" + cfg.SchemaPath + "`\n2. Run `ormkit generate`\n3. Import the generated package and start querying\n")
}
