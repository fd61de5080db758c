package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rosterhq/roster/internal/config"
	"github.com/rosterhq/roster/internal/tracker"
	"github.com/spf13/cobra"
)

var initDescription string

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Initialize a roster project in the current directory",
	Long:  "Creates a .roster/ directory with project metadata, default config, and an empty task store.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initDescription, "desc", "d", "", "Project description")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	name := filepath.Base(cwd)
	if len(args) > 0 {
		name = args[0]
	}

	proj, err := tracker.InitProject(cwd, name, initDescription)
	if err != nil {
		return err
	}

	cfgPath := filepath.Join(tracker.StateDir(cwd), config.FileName)
	if err := config.Save(cfgPath, config.DefaultConfig()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Initialized roster project %q in %s/\n", proj.Name, tracker.DirName)
	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Println("  1. Run: roster add \"your first task\"")
	fmt.Println("  2. Run: roster ls")
	fmt.Printf("  3. Agents set %s to identify themselves\n", "ROSTER_ACTOR")

	return nil
}
