package commands

import (
	"errors"
	"fmt"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/folio/pkg/commands/options"
	"tableflip.dev/folio/pkg/config"
	"tableflip.dev/folio/pkg/project"
	"tableflip.dev/folio/pkg/runner/projects"
)

func addProjects(topLevel *cobra.Command) {
	po := &options.ProjectOptions{}

	cmd := &cobra.Command{
		Use:   "projects [id]",
		Short: "List projects, or show one.",
		Example: `
folio projects
folio projects --tag ROS
folio projects --search python --json
folio projects --all
folio projects --random
folio projects autonomous-nav
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return projectCompletions(), cobra.ShellCompDirectiveNoFileComp
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			modes := 0
			for _, set := range []bool{len(args) > 0, po.All, po.Random, po.Pick} {
				if set {
					modes++
				}
			}
			if modes > 1 {
				return errors.New("an id, --all, --random and --interactive are mutually exclusive")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			p := projects.Projects{
				Catalog: e.catalog,
				Sizer:   e.sizer(po.Base),
				Tag:     po.Tag,
				Search:  po.Search,
				All:     po.All,
				Random:  po.Random,
				Pick:    po.Pick,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			if len(args) > 0 {
				p.ID = args[0]
			}
			err = p.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}
	options.AddProjectArgs(cmd, po)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func projectCompletions() []string {
	cfg, err := config.Load()
	if err != nil {
		return nil
	}
	cat, err := project.Load(cfg.Catalog)
	if err != nil {
		return nil
	}
	var ids []string
	for _, p := range cat.All() {
		ids = append(ids, fmt.Sprintf("%s\t%s", p.ID, p.Title))
	}
	return ids
}
